package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"soundatlas/src/features/crawling"
	"soundatlas/src/infra/pacer"
)

const (
	apiBase   = "https://api.spotify.com/v1"
	tokenURL  = "https://accounts.spotify.com/api/token"
	trackPage = 100
)

// Client talks to the Spotify Web API with client-credentials auth and
// implements crawling.Directory. Requests are paced through the shared
// limiter; a 429 pushes the next slot out by the server's Retry-After.
type Client struct {
	clientID     string
	clientSecret string
	http         *http.Client
	limiter      *pacer.Limiter

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// NewClient creates a new Spotify client.
func NewClient(clientID, clientSecret string, limiter *pacer.Limiter) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         &http.Client{Timeout: 30 * time.Second},
		limiter:      limiter,
	}
}

// Playlist returns a playlist with its full track list, following the
// track pagination internally.
func (c *Client) Playlist(ctx context.Context, playlistID string) (*crawling.Playlist, error) {
	var payload playlistPayload
	endpoint := fmt.Sprintf("%s/playlists/%s", apiBase, url.PathEscape(playlistID))
	if err := c.getJSON(ctx, endpoint, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch playlist %s: %w", playlistID, err)
	}

	playlist := &crawling.Playlist{
		ID:        payload.ID,
		Name:      payload.Name,
		OwnerName: payload.Owner.DisplayName,
	}
	appendTracks(playlist, payload.Tracks.Items)

	for offset := len(payload.Tracks.Items); offset < payload.Tracks.Total; offset += trackPage {
		var page trackPagePayload
		query := url.Values{}
		query.Set("limit", strconv.Itoa(trackPage))
		query.Set("offset", strconv.Itoa(offset))
		endpoint := fmt.Sprintf("%s/playlists/%s/tracks", apiBase, url.PathEscape(playlistID))
		if err := c.getJSON(ctx, endpoint, query, &page); err != nil {
			return nil, fmt.Errorf("fetch playlist %s tracks at %d: %w", playlistID, offset, err)
		}
		if len(page.Items) == 0 {
			break
		}
		appendTracks(playlist, page.Items)
	}

	return playlist, nil
}

// ArtistGenres returns Spotify's genre tags for an artist.
func (c *Client) ArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	var payload struct {
		Genres []string `json:"genres"`
	}
	endpoint := fmt.Sprintf("%s/artists/%s", apiBase, url.PathEscape(artistID))
	if err := c.getJSON(ctx, endpoint, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch artist %s: %w", artistID, err)
	}
	return payload.Genres, nil
}

// UserPlaylists returns one page of a user's public playlists.
func (c *Client) UserPlaylists(ctx context.Context, userID string, limit, offset int) (*crawling.PlaylistPage, error) {
	var payload struct {
		Total int `json:"total"`
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	endpoint := fmt.Sprintf("%s/users/%s/playlists", apiBase, url.PathEscape(userID))
	if err := c.getJSON(ctx, endpoint, query, &payload); err != nil {
		return nil, fmt.Errorf("fetch playlists of %s: %w", userID, err)
	}

	page := &crawling.PlaylistPage{Total: payload.Total}
	for _, item := range payload.Items {
		page.Items = append(page.Items, crawling.PlaylistRef{ID: item.ID, Name: item.Name})
	}
	return page, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		token, err := c.token(ctx)
		if err != nil {
			return err
		}

		u := endpoint
		if len(query) > 0 {
			u = endpoint + "?" + query.Encode()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := retryAfter(resp)
			resp.Body.Close()
			slog.Warn("Rate limited, backing off", "wait", wait, "endpoint", endpoint)
			c.limiter.Backoff(wait)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("spotify returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}

func retryAfter(resp *http.Response) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.ParseInt(header, 10, 64); err == nil {
			return time.Duration(seconds)*time.Second + time.Second
		}
	}
	return time.Minute
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Add(time.Minute).Before(c.expiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	creds := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+creds)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}

	c.accessToken = payload.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	slog.Debug("Refreshed access token", "expires_in", payload.ExpiresIn)
	return c.accessToken, nil
}

type playlistPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner struct {
		DisplayName string `json:"display_name"`
	} `json:"owner"`
	Tracks struct {
		Total int                `json:"total"`
		Items []trackItemPayload `json:"items"`
	} `json:"tracks"`
}

type trackPagePayload struct {
	Total int                `json:"total"`
	Items []trackItemPayload `json:"items"`
}

type trackItemPayload struct {
	Track struct {
		Name  string `json:"name"`
		Album struct {
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"album"`
		Artists []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			URI  string `json:"uri"`
		} `json:"artists"`
	} `json:"track"`
}

func appendTracks(playlist *crawling.Playlist, items []trackItemPayload) {
	for _, item := range items {
		track := crawling.Track{Name: item.Track.Name}
		if len(item.Track.Album.Images) > 0 {
			track.ImageURL = item.Track.Album.Images[0].URL
		}
		for _, artist := range item.Track.Artists {
			track.Artists = append(track.Artists, crawling.TrackArtist{
				SpotifyID: artist.ID,
				Name:      artist.Name,
				URI:       artist.URI,
			})
		}
		playlist.Tracks = append(playlist.Tracks, track)
	}
}
