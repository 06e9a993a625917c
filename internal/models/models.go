package models

import "time"

// Video represents a single library entry as served by GET /api/videos.
//
// Duration is a display string ("12:34"), not a numeric value; the server
// formats it and the client never parses it.
type Video struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Filename  string `json:"filename,omitempty"`
	Path      string `json:"path,omitempty"`
	Size      int64  `json:"size,omitempty"`
	Modified  string `json:"modified,omitempty"`
	Duration  string `json:"duration"`
	Thumbnail string `json:"thumbnail"`
}

// Notification is the displayable form of a push message.
type Notification struct {
	Title     string
	Body      string
	Icon      string
	Badge     string
	Vibration []int
	Data      NotificationData
}

// NotificationData is the payload attached to every notification.
type NotificationData struct {
	ArrivedAt  time.Time
	PrimaryKey int
}
