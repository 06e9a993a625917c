// Package models defines domain entities shared across the PlaySV remote client.
//
// The package contains two categories of types:
//
// 1. Catalog types mirroring the media server's JSON:
//   - [Video] : Library entry metadata (id, title, duration, thumbnail, file details)
//
// 2. Client-side value types:
//   - [Notification] : Push notification content with fixed presentation defaults
//   - [NotificationData] : Payload attached to every displayed notification
//
// Catalog data is immutable for a session: loads replace the whole slice,
// they never merge.
package models
