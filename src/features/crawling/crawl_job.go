package crawling

import (
	"context"
	"fmt"

	"soundatlas/src/features/jobs"
)

// PlaylistCrawlTask runs a single-playlist crawl as a background job.
type PlaylistCrawlTask struct {
	service *Service
}

// NewPlaylistCrawlTask creates a new playlist crawl task.
func NewPlaylistCrawlTask(service *Service) *PlaylistCrawlTask {
	return &PlaylistCrawlTask{service: service}
}

func (t *PlaylistCrawlTask) MetadataKeys() []string {
	return []string{"playlist_id"}
}

func (t *PlaylistCrawlTask) Execute(ctx context.Context, job *jobs.Job, progressUpdater func(int, string)) (map[string]any, error) {
	playlistID, ok := job.Metadata["playlist_id"].(string)
	if !ok || playlistID == "" {
		return nil, fmt.Errorf("playlist_id must be a non-empty string")
	}

	progressUpdater(0, "Fetching playlist "+playlistID)
	ingested, err := t.service.IngestFromPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	progressUpdater(100, fmt.Sprintf("Ingested %d new artists", len(ingested)))
	return map[string]any{
		"ingested": len(ingested),
	}, nil
}

// UserCrawlTask crawls every playlist of a user as a background job.
type UserCrawlTask struct {
	service *Service
}

// NewUserCrawlTask creates a new user crawl task.
func NewUserCrawlTask(service *Service) *UserCrawlTask {
	return &UserCrawlTask{service: service}
}

func (t *UserCrawlTask) MetadataKeys() []string {
	return []string{"user_id"}
}

func (t *UserCrawlTask) Execute(ctx context.Context, job *jobs.Job, progressUpdater func(int, string)) (map[string]any, error) {
	userID, ok := job.Metadata["user_id"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("user_id must be a non-empty string")
	}

	progressUpdater(0, "Enumerating playlists of "+userID)
	processed, err := t.service.IngestFromUserPlaylists(ctx, userID)
	if err != nil {
		return nil, err
	}

	progressUpdater(100, fmt.Sprintf("Crawled %d playlists", len(processed)))
	return map[string]any{
		"playlists": len(processed),
	}, nil
}
