// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path to configuration file",
	Value:   "config.toml",
}

// setupCommand initializes the cache database and config file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize cache database and run migrations",
		Flags:  []cli.Flag{configFlag},
		Action: r.Setup,
	}
}

// libraryCommand handles catalog operations
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Video catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the video catalog",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Filter titles by substring",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LibraryList,
			},
			{
				Name:   "scan",
				Usage:  "Ask the server to rescan its media directory",
				Flags:  []cli.Flag{configFlag},
				Action: r.LibraryScan,
			},
		},
	}
}

// playlistCommand handles playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the server-side playlist",
				Flags: []cli.Flag{
					configFlag,
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:  "save",
				Usage: "Replace the server-side playlist with catalog entries",
				Flags: []cli.Flag{
					configFlag,
					&cli.IntSliceFlag{
						Name:     "id",
						Usage:    "Catalog video ID to include (repeatable, in order)",
						Required: true,
					},
				},
				Action: r.PlaylistSave,
			},
			{
				Name:  "export",
				Usage: "Export the playlist to M3U, CSV or text",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: m3u, csv or text",
						Value:   "m3u",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (stdout when omitted)",
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}

// playerCommand sends one-shot playback commands over the channel
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "player",
		Usage: "Send playback commands to the media server",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "Play a catalog video by ID",
				Flags: []cli.Flag{
					configFlag,
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Catalog video ID",
						Required: true,
					},
				},
				Action: r.PlayerPlay,
			},
			{
				Name:   "pause",
				Usage:  "Pause playback",
				Flags:  []cli.Flag{configFlag},
				Action: r.PlayerPause,
			},
			{
				Name:   "resume",
				Usage:  "Resume playback",
				Flags:  []cli.Flag{configFlag},
				Action: r.PlayerResume,
			},
			{
				Name:   "stop",
				Usage:  "Stop playback",
				Flags:  []cli.Flag{configFlag},
				Action: r.PlayerStop,
			},
			{
				Name:  "seek",
				Usage: "Seek relative to the current position",
				Flags: []cli.Flag{
					configFlag,
					&cli.IntFlag{
						Name:     "seconds",
						Aliases:  []string{"s"},
						Usage:    "Seconds to seek (negative seeks backwards)",
						Required: true,
					},
				},
				Action: r.PlayerSeek,
			},
			{
				Name:  "volume",
				Usage: "Set playback volume",
				Flags: []cli.Flag{
					configFlag,
					&cli.IntFlag{
						Name:     "value",
						Usage:    "Volume from 0 to 100",
						Required: true,
					},
				},
				Action: r.PlayerVolume,
			},
		},
	}
}

// cacheCommand handles the offline cache lifecycle
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the offline cache",
		Commands: []*cli.Command{
			{
				Name:   "install",
				Usage:  "Precache the app shell manifest",
				Flags:  []cli.Flag{configFlag},
				Action: r.CacheInstall,
			},
			{
				Name:   "activate",
				Usage:  "Activate the installed cache version and drop stale partitions",
				Flags:  []cli.Flag{configFlag},
				Action: r.CacheActivate,
			},
			{
				Name:      "prefetch",
				Usage:     "Fetch URLs into the runtime cache",
				ArgsUsage: "URL [URL ...]",
				Flags:     []cli.Flag{configFlag},
				Action:    r.CachePrefetch,
			},
			{
				Name:  "status",
				Usage: "Show cache partitions and pending sync actions",
				Flags: []cli.Flag{
					configFlag,
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CacheStatus,
			},
			{
				Name:   "sync",
				Usage:  "Replay queued actions against the server",
				Flags:  []cli.Flag{configFlag},
				Action: r.CacheSync,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive remote control",
		Flags:  []cli.Flag{configFlag},
		Action: r.TUI,
	}
}
