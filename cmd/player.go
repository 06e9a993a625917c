package main

import (
	"context"
	"fmt"

	"github.com/playsv/playsv/internal/channel"
	"github.com/playsv/playsv/internal/player"
	"github.com/playsv/playsv/internal/shared"
	"github.com/urfave/cli/v3"
)

// withController connects the command channel for a one-shot playback command
// and hands a controller to fn. The connection is closed before returning so
// no reconnect timer outlives the command.
func (r *Runner) withController(cmd *cli.Command, fn func(*player.Controller) error) error {
	r.reloadConfig(cmd)

	channelClient, err := r.channelClient(nil)
	if err != nil {
		return fmt.Errorf("failed to build channel client: %w", err)
	}
	defer channelClient.Close()

	channelClient.Connect()
	if channelClient.State() != channel.StateConnected {
		return fmt.Errorf("%w: %s", shared.ErrNotConnected, channelClient.URL())
	}

	return fn(player.NewController(channelClient, r.logger))
}

// PlayerPlay plays a catalog video by ID.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	client, err := r.libraryClient()
	if err != nil {
		return fmt.Errorf("failed to build library client: %w", err)
	}

	id := int(cmd.Int("id"))
	for _, video := range client.Videos(ctx) {
		if video.ID == id {
			return r.withController(cmd, func(controller *player.Controller) error {
				if err := controller.Play(video); err != nil {
					return err
				}
				r.writePlainln("▶ Playing %s", video.Title)
				return nil
			})
		}
	}

	return fmt.Errorf("%w: no catalog video with id %d", shared.ErrVideoNotFound, id)
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	return r.withController(cmd, func(controller *player.Controller) error {
		return controller.Pause()
	})
}

// PlayerResume resumes paused playback.
func (r *Runner) PlayerResume(ctx context.Context, cmd *cli.Command) error {
	return r.withController(cmd, func(controller *player.Controller) error {
		return controller.Resume()
	})
}

// PlayerStop stops playback.
func (r *Runner) PlayerStop(ctx context.Context, cmd *cli.Command) error {
	return r.withController(cmd, func(controller *player.Controller) error {
		return controller.Stop()
	})
}

// PlayerSeek seeks relative to the current position.
func (r *Runner) PlayerSeek(ctx context.Context, cmd *cli.Command) error {
	return r.withController(cmd, func(controller *player.Controller) error {
		return controller.Seek(int(cmd.Int("seconds")))
	})
}

// PlayerVolume sets the playback volume, clamped to 0-100.
func (r *Runner) PlayerVolume(ctx context.Context, cmd *cli.Command) error {
	return r.withController(cmd, func(controller *player.Controller) error {
		return controller.SetVolume(int(cmd.Int("value")))
	})
}
