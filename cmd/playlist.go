package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/playsv/playsv/internal/formatter"
	"github.com/playsv/playsv/internal/models"
	"github.com/urfave/cli/v3"
)

// PlaylistShow prints the server-side playlist.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	client, err := r.libraryClient()
	if err != nil {
		return fmt.Errorf("failed to build library client: %w", err)
	}

	videos, err := client.Playlist(ctx)
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	return r.writePlain("%s", formatter.ExportToText(videos))
}

// PlaylistSave replaces the server-side playlist with the catalog videos named
// by --id, in flag order. Unreachable servers get the snapshot queued.
func (r *Runner) PlaylistSave(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	client, err := r.libraryClient()
	if err != nil {
		return fmt.Errorf("failed to build library client: %w", err)
	}

	catalog := client.Videos(ctx)
	byID := make(map[int]models.Video, len(catalog))
	for _, video := range catalog {
		byID[video.ID] = video
	}

	var playlist []models.Video
	for _, id := range cmd.IntSlice("id") {
		video, ok := byID[int(id)]
		if !ok {
			return fmt.Errorf("no catalog video with id %d", id)
		}
		playlist = append(playlist, video)
	}

	if err := client.SavePlaylist(ctx, playlist); err != nil {
		return fmt.Errorf("failed to save playlist: %w", err)
	}

	r.writePlainln("✓ Playlist saved (%d entries)", len(playlist))
	return nil
}

// PlaylistExport writes the server-side playlist as M3U, CSV or text.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	client, err := r.libraryClient()
	if err != nil {
		return fmt.Errorf("failed to build library client: %w", err)
	}

	videos, err := client.Playlist(ctx)
	if err != nil {
		return fmt.Errorf("failed to load playlist: %w", err)
	}

	var data []byte
	switch format := strings.ToLower(cmd.String("format")); format {
	case "m3u":
		data = formatter.ExportToM3U(videos)
	case "csv":
		if data, err = formatter.ExportToCSV(videos); err != nil {
			return fmt.Errorf("failed to build CSV: %w", err)
		}
	case "text":
		data = formatter.ExportToText(videos)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	if output := cmd.String("output"); output != "" {
		if err := formatter.WriteToFile(output, data); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		r.writePlainln("✓ Exported %d entries to %s", len(videos), output)
		return nil
	}

	return r.writePlain("%s", data)
}
