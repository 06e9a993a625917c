// Package cache implements the offline layer of the PlaySV remote client.
//
// The central type is [Worker], an [net/http.RoundTripper] that applies the
// offline policy to every request the client makes against the media server:
//
//   - realtime (ws/wss) and cross-origin requests pass through untouched
//   - API-namespaced requests go network-first; a transport failure yields a
//     synthesized 503 JSON response instead of an error
//   - everything else is cache-first with an opportunistic runtime-cache fill
//     and an offline fallback document as the last resort
//
// Responses are persisted by [Store] in two named SQLite partitions: a
// versioned precache installed all-or-nothing from a fixed manifest, and a
// runtime partition that grows from successful live fetches. [Queue] and
// [SyncEngine] hold and drain actions deferred while offline, and
// [PushHandler] turns push payloads into displayable notifications.
package cache
