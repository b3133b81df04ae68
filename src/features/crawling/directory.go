package crawling

import "context"

// Directory is the playlist catalog service the crawler walks.
// Implemented by src/infra/spotify; pagination of a playlist's tracks is
// handled inside the implementation.
type Directory interface {
	// Playlist returns a playlist with its full track list.
	Playlist(ctx context.Context, playlistID string) (*Playlist, error)
	// ArtistGenres returns the catalog's genre tags for an artist.
	ArtistGenres(ctx context.Context, artistID string) ([]string, error)
	// UserPlaylists returns one page of a user's playlists.
	UserPlaylists(ctx context.Context, userID string, limit, offset int) (*PlaylistPage, error)
}

// Playlist is a playlist with its owner and resolved track list.
type Playlist struct {
	ID        string
	Name      string
	OwnerName string
	Tracks    []Track
}

// Track is one playlist entry with its credited artists and primary art.
type Track struct {
	Name     string
	ImageURL string
	Artists  []TrackArtist
}

// TrackArtist is an artist credit on a track.
type TrackArtist struct {
	SpotifyID string
	Name      string
	URI       string
}

// PlaylistPage is one page of a user's playlists.
type PlaylistPage struct {
	Total int
	Items []PlaylistRef
}

// PlaylistRef identifies a playlist without its tracks.
type PlaylistRef struct {
	ID   string
	Name string
}
