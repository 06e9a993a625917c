package cache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/playsv/playsv/internal/shared"
)

// ActionKind identifies a deferred offline action.
type ActionKind string

const (
	ActionPlaylistSave ActionKind = "playlist_save" // JSON snapshot of the playlist
	ActionScanRequest  ActionKind = "scan_request"  // library rescan trigger
)

// apiPath maps an action kind to the endpoint its payload is posted to.
func (k ActionKind) apiPath() string {
	switch k {
	case ActionPlaylistSave:
		return "/api/playlist"
	case ActionScanRequest:
		return "/api/scan"
	default:
		return ""
	}
}

// PendingAction is a deferred action persisted until connectivity returns.
type PendingAction struct {
	ID        string
	Kind      ActionKind
	Payload   []byte
	Attempts  int
	CreatedAt time.Time
}

// Queue persists pending actions in the cache database.
//
// Actions are drained FIFO by [SyncEngine]; payloads are wholesale snapshots
// so replaying them is idempotent.
type Queue struct {
	db *sql.DB
}

// NewQueue creates a Queue over the given database.
func NewQueue(db *sql.DB) *Queue {
	return &Queue{db: db}
}

// Enqueue stores an action for a later drain.
func (q *Queue) Enqueue(kind ActionKind, payload []byte) error {
	if kind.apiPath() == "" {
		return fmt.Errorf("%w: unknown action kind %q", shared.ErrInvalidArgument, kind)
	}

	_, err := q.db.Exec(
		"INSERT INTO pending_actions (id, kind, payload) VALUES (?, ?, ?)",
		shared.GenerateID(), string(kind), string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue action: %w", err)
	}

	return nil
}

// List returns all pending actions in FIFO order.
func (q *Queue) List() ([]PendingAction, error) {
	rows, err := q.db.Query(
		"SELECT id, kind, payload, attempts, created_at FROM pending_actions ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending actions: %w", err)
	}
	defer rows.Close()

	var actions []PendingAction
	for rows.Next() {
		var action PendingAction
		var kind, payload string
		if err := rows.Scan(&action.ID, &kind, &payload, &action.Attempts, &action.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending action: %w", err)
		}
		action.Kind = ActionKind(kind)
		action.Payload = []byte(payload)
		actions = append(actions, action)
	}

	return actions, rows.Err()
}

// Bump increments an action's attempt counter.
func (q *Queue) Bump(id string) error {
	_, err := q.db.Exec("UPDATE pending_actions SET attempts = attempts + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to bump attempts: %w", err)
	}
	return nil
}

// Remove deletes an action from the queue.
func (q *Queue) Remove(id string) error {
	_, err := q.db.Exec("DELETE FROM pending_actions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove action: %w", err)
	}
	return nil
}

// Len returns the number of pending actions.
func (q *Queue) Len() (int, error) {
	var count int
	if err := q.db.QueryRow("SELECT COUNT(*) FROM pending_actions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}
	return count, nil
}
