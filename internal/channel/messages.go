package channel

// Inbound message types recognized by the client. Anything else is logged
// and dropped.
const (
	MsgStatus         = "status"          // server/player status update
	MsgPlaylistUpdate = "playlist_update" // server-side playlist changed
	MsgVideoInfo      = "video_info"      // now-playing metadata
	MsgNotification   = "notification"    // push payload relayed over the channel
	MsgVideosUpdated  = "videos_updated"  // library rescan finished
)
