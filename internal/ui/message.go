package ui

import (
	"github.com/playsv/playsv/internal/channel"
	"github.com/playsv/playsv/internal/models"
)

// catalogLoadedMsg delivers the (possibly demo) catalog after a load.
type catalogLoadedMsg struct {
	videos []models.Video
}

// ConnStateMsg reports a connection state change on the command channel.
type ConnStateMsg struct {
	State channel.ConnState
}

// NowPlayingMsg carries now-playing metadata from a video_info message.
type NowPlayingMsg struct {
	Title string
}

// NotificationMsg surfaces a displayed push notification in the status bar.
type NotificationMsg struct {
	Notification models.Notification
}

// VideosUpdatedMsg signals that a server-side rescan finished and the catalog
// should be reloaded.
type VideosUpdatedMsg struct{}

// statusNoteMsg is a transient status-bar note (dropped commands, saves).
type statusNoteMsg struct {
	note string
}
