// Package player owns the client-side playback state: the loaded catalog,
// the session playlist, and the playback cursor.
//
// Playlist order is significant and id-unique; reordering happens only via
// remove and re-add. Commands go out over the channel as fire-and-forget
// envelopes: when the channel is down they are dropped with a logged error,
// never queued.
package player

import (
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/playsv/playsv/internal/models"
)

// Sender delivers a player command over the live channel.
type Sender interface {
	Send(command string, args map[string]any) error
}

// Controller holds the application's playback state.
type Controller struct {
	mu       sync.Mutex
	catalog  []models.Video
	playlist []models.Video
	cursor   int
	channel  Sender
	logger   *log.Logger
}

// NewController creates a Controller with an empty catalog and playlist and
// no current selection.
func NewController(channel Sender, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		channel: channel,
		cursor:  -1,
		logger:  logger,
	}
}

// SetCatalog replaces the catalog wholesale. Loads never merge.
func (c *Controller) SetCatalog(videos []models.Video) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = append([]models.Video(nil), videos...)
}

// Catalog returns a copy of the loaded catalog.
func (c *Controller) Catalog() []models.Video {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Video(nil), c.catalog...)
}

// Search filters the catalog by case-insensitive substring match on title.
// The underlying catalog is never mutated; an empty query returns everything.
func (c *Controller) Search(query string) []models.Video {
	c.mu.Lock()
	defer c.mu.Unlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]models.Video(nil), c.catalog...)
	}

	var matches []models.Video
	for _, video := range c.catalog {
		if strings.Contains(strings.ToLower(video.Title), query) {
			matches = append(matches, video)
		}
	}
	return matches
}

// Playlist returns a copy of the current playlist.
func (c *Controller) Playlist() []models.Video {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Video(nil), c.playlist...)
}

// Cursor returns the current playback position, -1 when nothing is selected.
func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Add appends a video to the playlist. Adding an id that is already present
// is a logged no-op, not an error.
func (c *Controller) Add(video models.Video) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.playlist {
		if existing.ID == video.ID {
			c.logger.Infof("video %d already in playlist, skipping", video.ID)
			return false
		}
	}

	c.playlist = append(c.playlist, video)
	return true
}

// RemoveAt removes the playlist entry at the given position, shifting
// subsequent entries down. Out-of-range positions are ignored.
func (c *Controller) RemoveAt(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.playlist) {
		return false
	}

	c.playlist = append(c.playlist[:i], c.playlist[i+1:]...)

	// Keep the cursor on a valid entry: removal before the cursor shifts it
	// back, removal past the end clamps, emptying resets to no selection.
	if i < c.cursor {
		c.cursor--
	}
	if c.cursor >= len(c.playlist) {
		c.cursor = len(c.playlist) - 1
	}

	return true
}

// Clear empties the playlist. The confirmation gate lives with the caller;
// an unconfirmed clear is a no-op.
func (c *Controller) Clear(confirmed bool) bool {
	if !confirmed {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.playlist = nil
	c.cursor = -1
	return true
}
