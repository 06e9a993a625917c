package main

import (
	"context"
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/playsv/playsv/internal/cache"
	"github.com/playsv/playsv/internal/channel"
	"github.com/playsv/playsv/internal/player"
	"github.com/playsv/playsv/internal/shared"
	"github.com/playsv/playsv/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive remote control.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/playsv-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	client, err := r.libraryClient()
	if err != nil {
		return fmt.Errorf("failed to build library client: %w", err)
	}

	events := make(chan tea.Msg, 16)

	channelClient, err := r.channelClient(func(state channel.ConnState) {
		events <- ui.ConnStateMsg{State: state}
	})
	if err != nil {
		return fmt.Errorf("failed to build channel client: %w", err)
	}
	defer channelClient.Close()

	pushHandler := cache.NewPushHandler(&cache.LogNotifier{Logger: r.logger}, r.config.Server.BaseURL, r.logger)

	channelClient.Handle(channel.MsgStatus, func(msg channel.Message) {
		var status struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal(msg.Payload, &status); err != nil || status.Title == "" {
			return
		}
		events <- ui.NowPlayingMsg{Title: status.Title}
	})
	channelClient.Handle(channel.MsgPlaylistUpdate, func(msg channel.Message) {
		// The playlist lives client-side; server echoes are informational
	})
	channelClient.Handle(channel.MsgVideoInfo, func(msg channel.Message) {
		var info struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal(msg.Payload, &info); err != nil {
			r.logger.Warn("bad video_info payload", "error", err)
			return
		}
		events <- ui.NowPlayingMsg{Title: info.Title}
	})
	channelClient.Handle(channel.MsgNotification, func(msg channel.Message) {
		events <- ui.NotificationMsg{Notification: pushHandler.HandlePush(msg.Payload)}
	})
	channelClient.Handle(channel.MsgVideosUpdated, func(msg channel.Message) {
		events <- ui.VideosUpdatedMsg{}
	})

	channelClient.Connect()

	controller := player.NewController(channelClient, r.logger)
	model := ui.NewModel(ctx, controller, client, events, r.config.Player.Volume)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
