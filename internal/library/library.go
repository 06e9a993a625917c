// Package library fetches the video catalog and persists client state to the
// media server's REST API.
//
// The catalog load never leaves the view empty: any failure, transport or
// HTTP, falls back to a fixed demo catalog. That is a resilience and demo
// feature, not an error path to be fixed. Writes made while offline are
// deferred to the pending-action queue instead of being lost.
package library

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/playsv/playsv/internal/cache"
	"github.com/playsv/playsv/internal/models"
)

// Client talks to the media server's REST API, normally through the cache
// worker's transport so the offline policy applies to every request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	queue      *cache.Queue
	logger     *log.Logger
}

// NewClient creates a library client. The queue is optional; without it,
// offline writes fail instead of deferring.
func NewClient(baseURL string, httpClient *http.Client, queue *cache.Queue, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		queue:      queue,
		logger:     logger,
	}
}

// Videos loads the catalog from GET /api/videos. On any failure it returns
// the demo catalog instead of an empty view.
func (c *Client) Videos(ctx context.Context) []models.Video {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/videos", nil)
	if err != nil {
		c.logger.Warnf("catalog request failed, using demo catalog: %v", err)
		return DemoCatalog()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("catalog fetch failed, using demo catalog: %v", err)
		return DemoCatalog()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warnf("catalog fetch returned %d, using demo catalog", resp.StatusCode)
		return DemoCatalog()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warnf("catalog read failed, using demo catalog: %v", err)
		return DemoCatalog()
	}

	var videos []models.Video
	if err := json.Unmarshal(body, &videos); err != nil {
		c.logger.Warnf("catalog decode failed, using demo catalog: %v", err)
		return DemoCatalog()
	}

	return videos
}

// Playlist loads the server-side playlist from GET /api/playlist.
func (c *Client) Playlist(ctx context.Context) ([]models.Video, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/playlist", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("playlist fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("playlist fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("playlist read failed: %w", err)
	}

	var videos []models.Video
	if err := json.Unmarshal(body, &videos); err != nil {
		return nil, fmt.Errorf("playlist decode failed: %w", err)
	}

	return videos, nil
}

// Post sends a JSON body to an API path and reports the response status.
// Satisfies [cache.Poster] for the sync engine.
func (c *Client) Post(ctx context.Context, path string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// Scan triggers an out-of-band library rescan. When the server is
// unreachable the request is queued for the next sync drain.
func (c *Client) Scan(ctx context.Context) error {
	status, err := c.Post(ctx, "/api/scan", nil)
	if err == nil && status >= 200 && status < 300 {
		return nil
	}

	return c.deferAction(cache.ActionScanRequest, nil, status, err)
}

// SavePlaylist persists the playlist server-side as a wholesale snapshot.
// When the server is unreachable the snapshot is queued for the next sync
// drain.
func (c *Client) SavePlaylist(ctx context.Context, videos []models.Video) error {
	snapshot, err := json.Marshal(videos)
	if err != nil {
		return fmt.Errorf("failed to encode playlist: %w", err)
	}

	status, err := c.Post(ctx, "/api/playlist", snapshot)
	if err == nil && status >= 200 && status < 300 {
		return nil
	}

	return c.deferAction(cache.ActionPlaylistSave, snapshot, status, err)
}

// deferAction queues an action that could not be delivered. Without a queue the
// original failure is surfaced.
func (c *Client) deferAction(kind cache.ActionKind, payload []byte, status int, cause error) error {
	if c.queue == nil {
		if cause != nil {
			return fmt.Errorf("request failed: %w", cause)
		}
		return fmt.Errorf("request failed with status %d", status)
	}

	if err := c.queue.Enqueue(kind, payload); err != nil {
		return fmt.Errorf("failed to queue %s: %w", kind, err)
	}

	c.logger.Warnf("server unreachable, queued %s for later sync", kind)
	return nil
}
