package cache

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// maxSyncAttempts caps retries per pending action before it is dropped.
const maxSyncAttempts = 5

// Poster posts a JSON body to an API path and reports the response status.
type Poster interface {
	Post(ctx context.Context, path string, body []byte) (int, error)
}

// ProgressUpdate represents a progress event during a queue drain.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Step    int    // Current action number
	Total   int    // Total actions in this drain
	Message string // Human-readable message for display
}

// DrainResult summarizes a drain pass.
type DrainResult struct {
	Drained int // actions delivered and removed
	Retried int // actions left queued for the next drain
	Dropped int // actions discarded after too many attempts
}

// SyncEngine drains the pending-action queue once connectivity returns.
//
// Drain never escalates failures: there is no user-facing surface for sync
// errors, so everything is logged and retried on the next pass.
type SyncEngine struct {
	queue  *Queue
	api    Poster
	logger *log.Logger
}

// NewSyncEngine creates a SyncEngine over the given queue and API client.
func NewSyncEngine(queue *Queue, api Poster, logger *log.Logger) *SyncEngine {
	if logger == nil {
		logger = log.Default()
	}
	return &SyncEngine{queue: queue, api: api, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *SyncEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Drain posts every pending action to its endpoint in FIFO order.
//
// Delivered actions are removed; failed deliveries stay queued with a bumped
// attempt counter and are dropped with a warning once they exceed
// maxSyncAttempts.
func (e *SyncEngine) Drain(ctx context.Context, progress chan<- ProgressUpdate) DrainResult {
	var result DrainResult

	actions, err := e.queue.List()
	if err != nil {
		e.logger.Errorf("sync drain skipped: %v", err)
		return result
	}

	total := len(actions)
	for i, action := range actions {
		select {
		case <-ctx.Done():
			e.logger.Warnf("sync drain cancelled after %d/%d actions", i, total)
			return result
		default:
		}

		// Step/Total carry the position; the message stays prefix-free so
		// display layers can add their own counters.
		e.sendProgress(progress, ProgressUpdate{
			Step:    i + 1,
			Total:   total,
			Message: fmt.Sprintf("syncing %s...", action.Kind),
		})

		status, err := e.api.Post(ctx, action.Kind.apiPath(), action.Payload)
		if err == nil && status >= 200 && status < 300 {
			if err := e.queue.Remove(action.ID); err != nil {
				e.logger.Errorf("failed to remove synced action %s: %v", action.ID, err)
			}
			result.Drained++
			continue
		}

		if err != nil {
			e.logger.Warnf("sync failed for %s (%s): %v", action.Kind, action.ID, err)
		} else {
			e.logger.Warnf("sync failed for %s (%s): status %d", action.Kind, action.ID, status)
		}

		if action.Attempts+1 >= maxSyncAttempts {
			e.logger.Warnf("dropping action %s after %d attempts", action.ID, action.Attempts+1)
			if err := e.queue.Remove(action.ID); err != nil {
				e.logger.Errorf("failed to drop action %s: %v", action.ID, err)
			}
			result.Dropped++
			continue
		}

		if err := e.queue.Bump(action.ID); err != nil {
			e.logger.Errorf("failed to record attempt for %s: %v", action.ID, err)
		}
		result.Retried++
	}

	return result
}
