package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/playsv/playsv/internal/shared"
)

const (
	precachePrefix   = "playsv-precache-"
	runtimePartition = "playsv-runtime"
)

// Entry is a captured response keyed by request identity (method + URL).
type Entry struct {
	Method    string
	URL       string
	Partition string
	Status    int
	Header    http.Header
	Body      []byte
	FetchedAt time.Time
}

// Store persists cache entries in named partitions backed by SQLite.
//
// Two partitions are current at any time: the versioned precache and the
// runtime partition. Bumping the configured version is the only supported way
// to force full shell invalidation.
type Store struct {
	db       *sql.DB
	precache string
	runtime  string
}

// NewStore creates a Store for the given cache version.
func NewStore(db *sql.DB, version string) *Store {
	return &Store{
		db:       db,
		precache: precachePrefix + version,
		runtime:  runtimePartition,
	}
}

// PrecacheName returns the name of the current precache partition.
func (s *Store) PrecacheName() string { return s.precache }

// RuntimeName returns the name of the runtime partition.
func (s *Store) RuntimeName() string { return s.runtime }

// InstallPrecache replaces the precache partition with the given entries in a
// single transaction. Either every entry is stored or none are.
func (s *Store) InstallPrecache(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cache_entries WHERE partition = ?", s.precache); err != nil {
		return fmt.Errorf("failed to clear precache: %w", err)
	}

	if _, err := tx.Exec("INSERT OR IGNORE INTO cache_partitions (name) VALUES (?)", s.precache); err != nil {
		return fmt.Errorf("failed to create precache partition: %w", err)
	}

	for _, entry := range entries {
		headers, err := json.Marshal(entry.Header)
		if err != nil {
			return fmt.Errorf("failed to encode headers: %w", err)
		}

		_, err = tx.Exec(
			"INSERT OR REPLACE INTO cache_entries (method, url, partition, status, headers, body) VALUES (?, ?, ?, ?, ?, ?)",
			entry.Method, entry.URL, s.precache, entry.Status, string(headers), entry.Body,
		)
		if err != nil {
			return fmt.Errorf("failed to insert precache entry %s: %w", entry.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit precache: %w", err)
	}

	return nil
}

// Activate deletes every partition whose name is not one of the two current
// partitions, then ensures the runtime partition exists.
func (s *Store) Activate() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cache_entries WHERE partition NOT IN (?, ?)", s.precache, s.runtime); err != nil {
		return fmt.Errorf("failed to evict stale entries: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM cache_partitions WHERE name NOT IN (?, ?)", s.precache, s.runtime); err != nil {
		return fmt.Errorf("failed to evict stale partitions: %w", err)
	}

	if _, err := tx.Exec("INSERT OR IGNORE INTO cache_partitions (name) VALUES (?)", s.runtime); err != nil {
		return fmt.Errorf("failed to create runtime partition: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activation: %w", err)
	}

	return nil
}

// Put stores an entry in its partition, replacing any existing entry with the
// same request identity. Writes are idempotent so concurrent fills for the
// same resource are safe.
func (s *Store) Put(entry Entry) error {
	if entry.Partition == "" {
		entry.Partition = s.runtime
	}

	headers, err := json.Marshal(entry.Header)
	if err != nil {
		return fmt.Errorf("failed to encode headers: %w", err)
	}

	if _, err := s.db.Exec("INSERT OR IGNORE INTO cache_partitions (name) VALUES (?)", entry.Partition); err != nil {
		return fmt.Errorf("failed to ensure partition: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO cache_entries (method, url, partition, status, headers, body) VALUES (?, ?, ?, ?, ?, ?)",
		entry.Method, entry.URL, entry.Partition, entry.Status, string(headers), entry.Body,
	)
	if err != nil {
		return fmt.Errorf("failed to store entry: %w", err)
	}

	return nil
}

// Match looks a request identity up across all partitions, preferring the
// precache. Returns [shared.ErrCacheMiss] when nothing is stored.
func (s *Store) Match(method, url string) (*Entry, error) {
	query := `
		SELECT method, url, partition, status, headers, body, fetched_at
		FROM cache_entries
		WHERE method = ? AND url = ?
		ORDER BY CASE WHEN partition = ? THEN 0 ELSE 1 END
		LIMIT 1
	`

	var entry Entry
	var headers string
	err := s.db.QueryRow(query, method, url, s.precache).Scan(
		&entry.Method, &entry.URL, &entry.Partition, &entry.Status, &headers, &entry.Body, &entry.FetchedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	if err := json.Unmarshal([]byte(headers), &entry.Header); err != nil {
		return nil, fmt.Errorf("failed to decode headers: %w", err)
	}

	return &entry, nil
}

// Partitions returns the names of all existing partitions.
func (s *Store) Partitions() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM cache_partitions ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan partition: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Count returns the number of entries in the named partition.
func (s *Store) Count(partition string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM cache_entries WHERE partition = ?", partition).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}
