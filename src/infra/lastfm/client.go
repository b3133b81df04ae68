package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"soundatlas/src/features/enrichment"
)

// DefaultBaseURL is the public audioscrobbler endpoint.
const DefaultBaseURL = "https://ws.audioscrobbler.com/2.0"

// Client fetches artist biographies from the last.fm API and implements
// enrichment.BiographyProvider.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new last.fm client. An empty baseURL falls back to the
// public endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ArtistSummary returns the biography summary for the named artist.
// Unknown artists and empty biographies map to enrichment.ErrNoBiography.
func (c *Client) ArtistSummary(ctx context.Context, name string) (string, error) {
	query := url.Values{}
	query.Set("method", "artist.getinfo")
	query.Set("artist", name)
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("artist.getinfo %q: %w", name, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Error   int    `json:"error"`
		Message string `json:"message"`
		Artist  struct {
			Bio struct {
				Summary string `json:"summary"`
			} `json:"bio"`
		} `json:"artist"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode artist.getinfo %q: %w", name, err)
	}

	// The API reports "artist not found" as error code 6 with HTTP 200.
	if payload.Error == 6 {
		return "", enrichment.ErrNoBiography
	}
	if payload.Error != 0 {
		return "", fmt.Errorf("lastfm error %d: %s", payload.Error, payload.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lastfm returned %d", resp.StatusCode)
	}

	summary := strings.TrimSpace(payload.Artist.Bio.Summary)
	if summary == "" {
		return "", enrichment.ErrNoBiography
	}
	return summary, nil
}
