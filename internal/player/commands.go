package player

import "github.com/playsv/playsv/internal/models"

// Play sends a play command for a specific video.
func (c *Controller) Play(video models.Video) error {
	return c.channel.Send("play", map[string]any{"video": video})
}

// PlayIndex plays the playlist entry at the given position and moves the
// cursor to it. Out-of-range positions are ignored.
func (c *Controller) PlayIndex(i int) error {
	c.mu.Lock()
	if i < 0 || i >= len(c.playlist) {
		c.mu.Unlock()
		return nil
	}
	c.cursor = i
	video := c.playlist[i]
	c.mu.Unlock()

	return c.Play(video)
}

// Next advances the cursor by one and plays the selected video. At the last
// entry it is a silent no-op with no command sent; there is no wraparound.
func (c *Controller) Next() error {
	c.mu.Lock()
	if c.cursor+1 >= len(c.playlist) {
		c.mu.Unlock()
		return nil
	}
	c.cursor++
	video := c.playlist[c.cursor]
	c.mu.Unlock()

	return c.Play(video)
}

// Previous moves the cursor back by one and plays the selected video. At
// position 0 (or with no selection) it is a silent no-op with no command
// sent.
func (c *Controller) Previous() error {
	c.mu.Lock()
	if c.cursor <= 0 {
		c.mu.Unlock()
		return nil
	}
	c.cursor--
	video := c.playlist[c.cursor]
	c.mu.Unlock()

	return c.Play(video)
}

// Pause pauses playback.
func (c *Controller) Pause() error {
	return c.channel.Send("pause", nil)
}

// Resume resumes paused playback.
func (c *Controller) Resume() error {
	return c.channel.Send("resume", nil)
}

// Stop stops playback.
func (c *Controller) Stop() error {
	return c.channel.Send("stop", nil)
}

// Seek seeks forward or backward by the given number of seconds.
func (c *Controller) Seek(seconds int) error {
	return c.channel.Send("seek", map[string]any{"seconds": seconds})
}

// SetVolume sets the player volume (0-100).
func (c *Controller) SetVolume(volume int) error {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	return c.channel.Send("volume", map[string]any{"value": volume})
}
