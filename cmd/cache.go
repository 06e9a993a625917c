package main

import (
	"context"
	"fmt"

	"github.com/playsv/playsv/internal/cache"
	"github.com/urfave/cli/v3"
)

// CacheInstall precaches the app shell manifest from the config. The install
// is all-or-nothing: a single failed fetch leaves the cache untouched.
func (r *Runner) CacheInstall(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	worker, err := r.cacheWorker()
	if err != nil {
		return fmt.Errorf("failed to build cache worker: %w", err)
	}

	manifest := r.config.Cache.Precache
	r.logger.Info("installing precache", "version", r.config.Cache.Version, "urls", len(manifest))

	if err := worker.Install(ctx, manifest); err != nil {
		return fmt.Errorf("install failed: %w", err)
	}

	r.writePlainln("✓ Installed %d precache entries for version %s", len(manifest), r.config.Cache.Version)
	return nil
}

// CacheActivate promotes the installed version and drops stale partitions.
func (r *Runner) CacheActivate(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	worker, err := r.cacheWorker()
	if err != nil {
		return fmt.Errorf("failed to build cache worker: %w", err)
	}

	if err := worker.Activate(); err != nil {
		return fmt.Errorf("activate failed: %w", err)
	}

	r.writePlainln("✓ Cache version %s active", r.config.Cache.Version)
	return nil
}

// CachePrefetch fetches the given URLs into the runtime partition.
// Individual failures are logged and skipped.
func (r *Runner) CachePrefetch(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	urls := cmd.Args().Slice()
	if len(urls) == 0 {
		return fmt.Errorf("at least one URL is required")
	}

	worker, err := r.cacheWorker()
	if err != nil {
		return fmt.Errorf("failed to build cache worker: %w", err)
	}

	worker.PrefetchURLs(ctx, urls)
	r.writePlainln("✓ Prefetch finished for %d URLs", len(urls))
	return nil
}

// cacheStatus is the cache status report shape.
type cacheStatus struct {
	Version    string         `json:"version"`
	Partitions map[string]int `json:"partitions"`
	Pending    int            `json:"pending_actions"`
}

// CacheStatus reports partition entry counts and the pending-action backlog.
func (r *Runner) CacheStatus(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, err := r.database()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	store := cache.NewStore(db, r.config.Cache.Version)
	partitions, err := store.Partitions()
	if err != nil {
		return fmt.Errorf("failed to list partitions: %w", err)
	}

	status := cacheStatus{
		Version:    r.config.Cache.Version,
		Partitions: map[string]int{},
	}
	for _, partition := range partitions {
		count, err := store.Count(partition)
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", partition, err)
		}
		status.Partitions[partition] = count
	}

	if status.Pending, err = cache.NewQueue(db).Len(); err != nil {
		return fmt.Errorf("failed to count pending actions: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, cmd.Bool("pretty"))
	}

	r.writePlainln("Cache version: %s", status.Version)
	for _, partition := range partitions {
		r.writePlain("  %-24s %d entries\n", partition, status.Partitions[partition])
	}
	r.writePlain("  pending actions: %d\n", status.Pending)
	return nil
}

// CacheSync replays queued actions against the server and prints progress.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	client, err := r.libraryClient()
	if err != nil {
		return fmt.Errorf("failed to build library client: %w", err)
	}

	db, err := r.database()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	engine := cache.NewSyncEngine(cache.NewQueue(db), client, r.logger)

	progress := make(chan cache.ProgressUpdate, 16)
	done := make(chan cache.DrainResult, 1)
	go func() {
		done <- engine.Drain(ctx, progress)
		close(progress)
	}()

	for update := range progress {
		r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
	}

	result := <-done
	r.writePlainln("✓ Sync finished: %d delivered, %d retried, %d dropped",
		result.Drained, result.Retried, result.Dropped)
	return nil
}
