package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/playsv/playsv/internal/models"
)

var (
	_ list.Item = videoItem{}
	_ list.Item = playlistEntryItem{}
)

// videoItem wraps [models.Video] to implement [list.Item].
type videoItem struct {
	video models.Video
}

func (i videoItem) FilterValue() string { return i.video.Title }
func (i videoItem) Title() string       { return i.video.Title }
func (i videoItem) Description() string {
	desc := i.video.Duration
	if i.video.Filename != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.video.Filename)
	}
	return desc
}

// playlistEntryItem wraps a playlist position to implement [list.Item].
type playlistEntryItem struct {
	position int
	current  bool
	video    models.Video
}

func (i playlistEntryItem) FilterValue() string { return i.video.Title }
func (i playlistEntryItem) Title() string {
	marker := "  "
	if i.current {
		marker = "▶ "
	}
	return fmt.Sprintf("%s%d. %s", marker, i.position+1, i.video.Title)
}
func (i playlistEntryItem) Description() string { return i.video.Duration }

// substringFilter matches the catalog search contract: case-insensitive
// substring on the title, no ranking.
func substringFilter(term string, targets []string) []list.Rank {
	term = strings.ToLower(term)
	var ranks []list.Rank
	for i, target := range targets {
		if strings.Contains(strings.ToLower(target), term) {
			ranks = append(ranks, list.Rank{Index: i})
		}
	}
	return ranks
}
