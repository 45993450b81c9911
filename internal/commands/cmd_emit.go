package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/herald/internal/core/notify"
	"github.com/colonyops/herald/internal/core/notifylog"
	"github.com/colonyops/herald/internal/core/styles"
	"github.com/colonyops/herald/internal/printer"
	"github.com/colonyops/herald/pkg/iojson"
)

type EmitCmd struct {
	flags *Flags

	// flags
	typ     string
	message string
	title   string
	level   string
	echo    bool
	input   iojson.FileReader[emitInput]
}

// emitInput is the notification read from flags, JSON, or the form.
type emitInput struct {
	Type    notify.Type `json:"type"`
	Message string      `json:"message"`
	Title   string      `json:"title"`
}

// delivery is the outcome of one sink.
type delivery struct {
	sink string
	err  error
}

// NewEmitCmd creates a new emit command
func NewEmitCmd(flags *Flags) *EmitCmd {
	return &EmitCmd{flags: flags}
}

// Register adds the emit command to the application
func (cmd *EmitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "emit",
		Usage:     "Send a notification through the configured log sinks",
		UsageText: "herald emit [--type T] [--message M] [--title X] [-f file.json]",
		Description: `Builds a single notification and forwards it to the sinks configured under
logging: the HTTP endpoint, and with --echo a callback that prints the log
record to stdout.

The notification is read from --message, from a JSON file or piped stdin
({"type": "error", "message": "..."}), or interactively from a form.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "notification type (success, warning, error, info)",
				Value:       string(notify.TypeInfo),
				Destination: &cmd.typ,
			},
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "notification message",
				Destination: &cmd.message,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "notification title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "level",
				Usage:       "override logging.log_level (error, warning, info, all)",
				Destination: &cmd.level,
			},
			&cli.BoolFlag{
				Name:        "echo",
				Usage:       "enable logging and print the log record to stdout",
				Destination: &cmd.echo,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *EmitCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	cfg, err := cmd.flags.Config()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	in, err := cmd.readInput()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}
	if !in.Type.IsValid() {
		return fmt.Errorf("unknown notification type %q", in.Type)
	}
	if strings.TrimSpace(in.Message) == "" {
		return errors.New("message is required")
	}

	logCfg := cfg.Logging
	if cmd.level != "" {
		logCfg.Level = notifylog.Level(cmd.level)
		if !logCfg.Level.IsValid() {
			return fmt.Errorf("unknown log level %q", cmd.level)
		}
	}
	if cmd.echo {
		logCfg.Enabled = true
		logCfg.OnLog = echoRecord(c.Root().Writer, c.Root().ErrWriter)
	}

	if !logCfg.Enabled {
		p.Infof("Logging is disabled; set logging.enabled or pass --echo")
		return nil
	}

	results := emit(ctx, in, logCfg)
	if len(results) == 0 {
		p.Infof("%s notification filtered out at log level %s", in.Type, logCfg.Level)
		return nil
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			p.Errorf("%s: %v", r.sink, r.err)
			continue
		}
		p.Successf("Delivered to %s", r.sink)
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *EmitCmd) readInput() (emitInput, error) {
	in := emitInput{
		Type:    notify.Type(cmd.typ),
		Message: cmd.message,
		Title:   cmd.title,
	}

	switch {
	case in.Message != "":
		return in, nil
	case cmd.input.Provided():
		read, err := cmd.input.Read()
		if err != nil {
			return in, err
		}
		if read.Type == "" {
			read.Type = in.Type
		}
		return read, nil
	default:
		return in, runEmitForm(&in)
	}
}

func runEmitForm(in *emitInput) error {
	typ := string(in.Type)
	types := make([]string, len(notify.Types))
	for i, t := range notify.Types {
		types[i] = string(t)
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(huh.NewOptions(types...)...).
				Value(&typ),
			huh.NewInput().
				Title("Message").
				Validate(validateMessage).
				Value(&in.Message),
			huh.NewInput().
				Title("Title").
				Description("Optional").
				Value(&in.Title),
		),
	).WithTheme(styles.FormTheme()).Run()

	in.Type = notify.Type(typ)
	return err
}

func validateMessage(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("message is required")
	}
	return nil
}

// emit dispatches one notification and waits for every sink to report.
func emit(ctx context.Context, in emitInput, cfg notifylog.Config, opts ...notifylog.DispatcherOption) []delivery {
	var (
		mu      sync.Mutex
		results []delivery
	)
	opts = append(opts, notifylog.WithObserver(func(sink string, err error) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, delivery{sink: sink, err: err})
	}))
	d := notifylog.NewDispatcher(opts...)

	now := time.Now()
	d.Dispatch(ctx, notify.Notification{
		ID:        notify.NewID("notification", now),
		Type:      in.Type,
		Message:   in.Message,
		Title:     in.Title,
		CreatedAt: now,
	}, cfg)
	d.Wait()

	return results
}

func echoRecord(w, ew io.Writer) func(context.Context, notify.Notification) error {
	return func(_ context.Context, n notify.Notification) error {
		return iojson.WriteWith(w, ew, notifylog.Record{
			Type:      n.Type,
			Message:   n.Message,
			Title:     n.Title,
			Timestamp: n.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
}
