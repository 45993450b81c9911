package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/herald/internal/core/config"
	"github.com/colonyops/herald/internal/core/engine"
	"github.com/colonyops/herald/internal/core/styles"
	"github.com/colonyops/herald/internal/profiler"
	"github.com/colonyops/herald/internal/tui"
	"github.com/colonyops/herald/pkg/logutils"
)

type TuiCmd struct {
	flags        *Flags
	profilerPort     int
	metricsNamespace string
	noWatch          bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "serve pprof and /metrics on 127.0.0.1 at the given port (e.g., 6060)",
			Sources:     cli.EnvVars("HERALD_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
		&cli.StringFlag{
			Name:        "metrics-namespace",
			Usage:       "namespace prefix for the engine's Prometheus metrics",
			Sources:     cli.EnvVars("HERALD_METRICS_NAMESPACE"),
			Value:       "herald",
			Destination: &cmd.metricsNamespace,
		},
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload the config file when it changes",
			Sources:     cli.EnvVars("HERALD_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Run the interactive notification demo",
		UsageText: "herald tui [options]",
		Description: `Opens a terminal UI driven by a live notification engine.

Keys 1-4 show toasts, c asks for a confirmation, and d opens a dialog.
Edits to the config file are applied while the demo runs.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg, err := cmd.flags.Config()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	styles.UseTheme(cfg.TUI.Theme)

	// Console logs would draw over the TUI; hold them until exit.
	if cmd.flags.LogFile == "" {
		deferred := logutils.NewDeferred(0)
		restore := log.Logger
		log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: deferred, TimeFormat: time.Kitchen})
		defer func() {
			log.Logger = restore
			_ = deferred.Flush(os.Stderr)
		}()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort, profiler.WithMetrics(registry))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/metrics", profServer.Addr())).
			Msg("metrics endpoint available")
	}

	opts := engineOptions(cfg)
	opts.Metrics = engine.NewMetrics(
		engine.WithRegistry(registry),
		engine.WithNamespace(cmd.metricsNamespace),
	)
	e := engine.New(opts)
	defer e.Close()

	var watcher *config.Watcher
	if !cmd.noWatch && cmd.flags.ConfigPath != "" {
		watcher, err = config.NewWatcher(cmd.flags.ConfigPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cmd.flags.ConfigPath).Msg("config hot reload disabled")
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	m := tui.New(tui.Options{
		Engine:     e,
		Watcher:    watcher,
		ResumeMode: cfg.TUI.ToastResumeMode(),
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
