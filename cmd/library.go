package main

import (
	"context"
	"fmt"

	"github.com/playsv/playsv/internal/player"
	"github.com/playsv/playsv/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryList prints the video catalog, falling back to the demo catalog when
// the server is unreachable.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	client, err := r.libraryClient()
	if err != nil {
		return fmt.Errorf("failed to build library client: %w", err)
	}

	videos := client.Videos(ctx)

	if query := cmd.String("query"); query != "" {
		controller := player.NewController(nil, r.logger)
		controller.SetCatalog(videos)
		videos = controller.Search(query)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	r.writePlainln("Catalog (%d videos)", len(videos))
	for _, video := range videos {
		r.writePlain("%4d  %-40s  %8s  %s\n", video.ID, video.Title, video.Duration, shared.FormatSize(video.Size))
	}
	return nil
}

// LibraryScan asks the server to rescan its media directory. Unreachable
// servers get the request queued for the next sync.
func (r *Runner) LibraryScan(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	client, err := r.libraryClient()
	if err != nil {
		return fmt.Errorf("failed to build library client: %w", err)
	}

	if err := client.Scan(ctx); err != nil {
		return fmt.Errorf("scan request failed: %w", err)
	}

	r.writePlainln("✓ Scan requested")
	return nil
}
