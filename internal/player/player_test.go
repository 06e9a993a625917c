package player

import (
	"testing"

	"github.com/playsv/playsv/internal/models"
	tu "github.com/playsv/playsv/internal/testing"
)

func demoVideos() []models.Video {
	return []models.Video{
		{ID: 1, Title: "Big Buck Bunny"},
		{ID: 2, Title: "Elephants Dream"},
		{ID: 3, Title: "Sintel"},
	}
}

func playlistOf(t *testing.T, c *Controller, videos ...models.Video) {
	t.Helper()
	for _, video := range videos {
		if !c.Add(video) {
			t.Fatalf("failed to seed playlist with video %d", video.ID)
		}
	}
}

func TestController(t *testing.T) {
	t.Run("NewController starts with no selection", func(t *testing.T) {
		c := NewController(&tu.MockSender{}, nil)

		if c.Cursor() != -1 {
			t.Errorf("expected cursor -1, got %d", c.Cursor())
		}
		if len(c.Playlist()) != 0 {
			t.Errorf("expected empty playlist, got %d entries", len(c.Playlist()))
		}
	})

	t.Run("SetCatalog replaces wholesale", func(t *testing.T) {
		c := NewController(&tu.MockSender{}, nil)

		c.SetCatalog(demoVideos())
		c.SetCatalog(demoVideos()[:1])

		if len(c.Catalog()) != 1 {
			t.Errorf("expected replacement, got %d entries", len(c.Catalog()))
		}
	})

	t.Run("Search", func(t *testing.T) {
		c := NewController(&tu.MockSender{}, nil)
		c.SetCatalog(demoVideos())

		t.Run("matches case-insensitive substrings", func(t *testing.T) {
			got := c.Search("SIN")
			if len(got) != 1 || got[0].Title != "Sintel" {
				t.Errorf("expected Sintel, got %v", got)
			}
		})

		t.Run("empty query returns everything", func(t *testing.T) {
			if got := c.Search("  "); len(got) != 3 {
				t.Errorf("expected full catalog, got %d", len(got))
			}
		})

		t.Run("no match returns empty", func(t *testing.T) {
			if got := c.Search("zebra"); len(got) != 0 {
				t.Errorf("expected no matches, got %v", got)
			}
		})
	})

	t.Run("Add", func(t *testing.T) {
		t.Run("appends in order", func(t *testing.T) {
			c := NewController(&tu.MockSender{}, nil)
			playlistOf(t, c, demoVideos()...)

			playlist := c.Playlist()
			if len(playlist) != 3 {
				t.Fatalf("expected 3 entries, got %d", len(playlist))
			}
			if playlist[0].ID != 1 || playlist[2].ID != 3 {
				t.Errorf("expected insertion order, got %v", playlist)
			}
		})

		t.Run("duplicate ids are a no-op", func(t *testing.T) {
			c := NewController(&tu.MockSender{}, nil)
			playlistOf(t, c, demoVideos()[0])

			if c.Add(demoVideos()[0]) {
				t.Error("expected duplicate add to report false")
			}
			if len(c.Playlist()) != 1 {
				t.Errorf("expected playlist unchanged, got %d entries", len(c.Playlist()))
			}
		})
	})

	t.Run("RemoveAt", func(t *testing.T) {
		t.Run("shifts later entries down", func(t *testing.T) {
			c := NewController(&tu.MockSender{}, nil)
			playlistOf(t, c, demoVideos()...)

			if !c.RemoveAt(1) {
				t.Fatal("expected removal to succeed")
			}
			playlist := c.Playlist()
			if len(playlist) != 2 || playlist[1].ID != 3 {
				t.Errorf("expected shifted playlist, got %v", playlist)
			}
		})

		t.Run("ignores out-of-range positions", func(t *testing.T) {
			c := NewController(&tu.MockSender{}, nil)
			playlistOf(t, c, demoVideos()[0])

			if c.RemoveAt(5) || c.RemoveAt(-1) {
				t.Error("expected out-of-range removal to report false")
			}
		})

		t.Run("removal before the cursor shifts it back", func(t *testing.T) {
			sender := &tu.MockSender{}
			c := NewController(sender, nil)
			playlistOf(t, c, demoVideos()...)
			if err := c.PlayIndex(2); err != nil {
				t.Fatalf("play failed: %v", err)
			}

			c.RemoveAt(0)
			if c.Cursor() != 1 {
				t.Errorf("expected cursor 1, got %d", c.Cursor())
			}
		})

		t.Run("removing the tail clamps the cursor", func(t *testing.T) {
			sender := &tu.MockSender{}
			c := NewController(sender, nil)
			playlistOf(t, c, demoVideos()...)
			if err := c.PlayIndex(2); err != nil {
				t.Fatalf("play failed: %v", err)
			}

			c.RemoveAt(2)
			if c.Cursor() != 1 {
				t.Errorf("expected cursor clamped to 1, got %d", c.Cursor())
			}
		})

		t.Run("emptying the playlist resets the selection", func(t *testing.T) {
			c := NewController(&tu.MockSender{}, nil)
			playlistOf(t, c, demoVideos()[0])
			if err := c.PlayIndex(0); err != nil {
				t.Fatalf("play failed: %v", err)
			}

			c.RemoveAt(0)
			if c.Cursor() != -1 {
				t.Errorf("expected no selection, got %d", c.Cursor())
			}
		})
	})

	t.Run("Clear", func(t *testing.T) {
		t.Run("unconfirmed clear is a no-op", func(t *testing.T) {
			c := NewController(&tu.MockSender{}, nil)
			playlistOf(t, c, demoVideos()...)

			if c.Clear(false) {
				t.Error("expected unconfirmed clear to report false")
			}
			if len(c.Playlist()) != 3 {
				t.Errorf("expected playlist intact, got %d entries", len(c.Playlist()))
			}
		})

		t.Run("confirmed clear empties and deselects", func(t *testing.T) {
			c := NewController(&tu.MockSender{}, nil)
			playlistOf(t, c, demoVideos()...)
			if err := c.PlayIndex(1); err != nil {
				t.Fatalf("play failed: %v", err)
			}

			if !c.Clear(true) {
				t.Fatal("expected confirmed clear to succeed")
			}
			if len(c.Playlist()) != 0 || c.Cursor() != -1 {
				t.Errorf("expected empty playlist with no selection, got %d entries, cursor %d",
					len(c.Playlist()), c.Cursor())
			}
		})
	})
}

func TestCommands(t *testing.T) {
	t.Run("Play wraps the video in a play command", func(t *testing.T) {
		sender := &tu.MockSender{}
		c := NewController(sender, nil)

		if err := c.Play(demoVideos()[0]); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		sent := sender.Sent()
		if len(sent) != 1 || sent[0].Command != "play" {
			t.Fatalf("expected one play command, got %v", sent)
		}
		if _, ok := sent[0].Args["video"]; !ok {
			t.Error("expected the video in the args")
		}
	})

	t.Run("PlayIndex moves the cursor", func(t *testing.T) {
		sender := &tu.MockSender{}
		c := NewController(sender, nil)
		playlistOf(t, c, demoVideos()...)

		if err := c.PlayIndex(1); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c.Cursor() != 1 {
			t.Errorf("expected cursor 1, got %d", c.Cursor())
		}
		if len(sender.Sent()) != 1 {
			t.Errorf("expected one command, got %d", len(sender.Sent()))
		}
	})

	t.Run("PlayIndex ignores out-of-range positions", func(t *testing.T) {
		sender := &tu.MockSender{}
		c := NewController(sender, nil)
		playlistOf(t, c, demoVideos()[0])

		if err := c.PlayIndex(7); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(sender.Sent()) != 0 {
			t.Errorf("expected no command, got %v", sender.Sent())
		}
	})

	t.Run("Next", func(t *testing.T) {
		t.Run("advances and plays", func(t *testing.T) {
			sender := &tu.MockSender{}
			c := NewController(sender, nil)
			playlistOf(t, c, demoVideos()...)
			if err := c.PlayIndex(0); err != nil {
				t.Fatalf("play failed: %v", err)
			}

			if err := c.Next(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if c.Cursor() != 1 {
				t.Errorf("expected cursor 1, got %d", c.Cursor())
			}
			if len(sender.Sent()) != 2 {
				t.Errorf("expected two commands, got %d", len(sender.Sent()))
			}
		})

		t.Run("at the last entry nothing happens", func(t *testing.T) {
			sender := &tu.MockSender{}
			c := NewController(sender, nil)
			playlistOf(t, c, demoVideos()...)
			if err := c.PlayIndex(2); err != nil {
				t.Fatalf("play failed: %v", err)
			}

			if err := c.Next(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if c.Cursor() != 2 {
				t.Errorf("expected cursor unchanged, got %d", c.Cursor())
			}
			if len(sender.Sent()) != 1 {
				t.Errorf("expected no extra command, got %d", len(sender.Sent()))
			}
		})
	})

	t.Run("Previous", func(t *testing.T) {
		t.Run("moves back and plays", func(t *testing.T) {
			sender := &tu.MockSender{}
			c := NewController(sender, nil)
			playlistOf(t, c, demoVideos()...)
			if err := c.PlayIndex(2); err != nil {
				t.Fatalf("play failed: %v", err)
			}

			if err := c.Previous(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if c.Cursor() != 1 {
				t.Errorf("expected cursor 1, got %d", c.Cursor())
			}
		})

		t.Run("at the first entry nothing happens", func(t *testing.T) {
			sender := &tu.MockSender{}
			c := NewController(sender, nil)
			playlistOf(t, c, demoVideos()...)
			if err := c.PlayIndex(0); err != nil {
				t.Fatalf("play failed: %v", err)
			}

			if err := c.Previous(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if c.Cursor() != 0 {
				t.Errorf("expected cursor unchanged, got %d", c.Cursor())
			}
			if len(sender.Sent()) != 1 {
				t.Errorf("expected no extra command, got %d", len(sender.Sent()))
			}
		})
	})

	t.Run("transport controls map to their commands", func(t *testing.T) {
		sender := &tu.MockSender{}
		c := NewController(sender, nil)

		if err := c.Pause(); err != nil {
			t.Fatalf("pause failed: %v", err)
		}
		if err := c.Resume(); err != nil {
			t.Fatalf("resume failed: %v", err)
		}
		if err := c.Stop(); err != nil {
			t.Fatalf("stop failed: %v", err)
		}
		if err := c.Seek(-30); err != nil {
			t.Fatalf("seek failed: %v", err)
		}

		sent := sender.Sent()
		want := []string{"pause", "resume", "stop", "seek"}
		if len(sent) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(sent))
		}
		for i, command := range want {
			if sent[i].Command != command {
				t.Errorf("expected %q at %d, got %q", command, i, sent[i].Command)
			}
		}
		if sent[3].Args["seconds"] != -30 {
			t.Errorf("expected seek args, got %v", sent[3].Args)
		}
	})

	t.Run("SetVolume clamps to 0-100", func(t *testing.T) {
		sender := &tu.MockSender{}
		c := NewController(sender, nil)

		if err := c.SetVolume(150); err != nil {
			t.Fatalf("volume failed: %v", err)
		}
		if err := c.SetVolume(-20); err != nil {
			t.Fatalf("volume failed: %v", err)
		}

		sent := sender.Sent()
		if sent[0].Args["value"] != 100 {
			t.Errorf("expected clamp to 100, got %v", sent[0].Args)
		}
		if sent[1].Args["value"] != 0 {
			t.Errorf("expected clamp to 0, got %v", sent[1].Args)
		}
	})
}
