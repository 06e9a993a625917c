package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/playsv/playsv/internal/cache"
	"github.com/playsv/playsv/internal/channel"
	"github.com/playsv/playsv/internal/library"
	"github.com/playsv/playsv/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	base   http.RoundTripper

	db     *sql.DB
	worker *cache.Worker
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	Base   http.RoundTripper
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Base == nil {
		opts.Base = http.DefaultTransport
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		base:   opts.Base,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, libraryCommand, playlistCommand, playerCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger, e.g. to redirect logs to a file
// while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// reloadConfig swaps in the config named by the --config flag when the file
// loads; otherwise the runner keeps the config it was built with.
func (r *Runner) reloadConfig(cmd *cli.Command) {
	path := cmd.String("config")
	if path == "" {
		return
	}
	if config, err := shared.LoadConfig(path); err == nil {
		r.config = config
	}
}

// database lazily opens the cache database and applies migrations.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Cache.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Cache.MaxOpenConns, r.config.Cache.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	r.db = db
	return db, nil
}

// cacheWorker lazily builds the offline cache worker over the database.
func (r *Runner) cacheWorker() (*cache.Worker, error) {
	if r.worker != nil {
		return r.worker, nil
	}

	db, err := r.database()
	if err != nil {
		return nil, err
	}

	store := cache.NewStore(db, r.config.Cache.Version)
	worker, err := cache.NewWorker(store, cache.WorkerOpts{
		Base:        r.base,
		Origin:      r.config.Server.BaseURL,
		APIPrefix:   r.config.Server.APIPrefix,
		ChannelPath: r.config.Server.ChannelPath,
		OfflinePage: r.config.Server.OfflinePage,
		Logger:      r.logger,
	})
	if err != nil {
		return nil, err
	}

	r.worker = worker
	return worker, nil
}

// libraryClient builds the catalog client routed through the cache worker.
func (r *Runner) libraryClient() (*library.Client, error) {
	worker, err := r.cacheWorker()
	if err != nil {
		return nil, err
	}

	db, err := r.database()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Transport: worker}
	return library.NewClient(r.config.Server.BaseURL, httpClient, cache.NewQueue(db), r.logger), nil
}

// channelClient builds the websocket command channel for this invocation.
func (r *Runner) channelClient(onState func(channel.ConnState)) (*channel.Client, error) {
	delay := channel.DefaultReconnectDelay
	if r.config.Server.ReconnectSec > 0 {
		delay = time.Duration(r.config.Server.ReconnectSec) * time.Second
	}

	return channel.NewClient(channel.ClientOpts{
		BaseURL:        r.config.Server.BaseURL,
		Path:           r.config.Server.ChannelPath,
		ReconnectDelay: delay,
		Logger:         r.logger,
		OnState:        onState,
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
