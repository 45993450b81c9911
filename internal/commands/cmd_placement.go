package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/herald/internal/core/placement"
	"github.com/colonyops/herald/pkg/iojson"
)

type PlacementCmd struct {
	flags *Flags
	width int
}

// placementResult is the JSON printed by herald placement.
type placementResult struct {
	Width     int                `json:"width,omitempty"`
	Unbounded bool               `json:"unbounded,omitempty"`
	Placement placement.Resolved `json:"placement"`
}

// NewPlacementCmd creates a new placement command
func NewPlacementCmd(flags *Flags) *PlacementCmd {
	return &PlacementCmd{flags: flags}
}

// Register adds the placement command to the application
func (cmd *PlacementCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "placement",
		Usage:     "Resolve the configured toast placement",
		UsageText: "herald placement [--width N]",
		Description: `Resolves toast_placement from the config file for a viewport width and
prints the result as JSON.

Without --width the current terminal width is used. When stdout is not a
terminal the viewport is treated as unbounded and the default target wins.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "width",
				Aliases:     []string{"w"},
				Usage:       "viewport width in cells (defaults to the terminal width)",
				Destination: &cmd.width,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PlacementCmd) run(_ context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.Config()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	width := cmd.width
	if width <= 0 {
		width = terminalWidth(int(os.Stdout.Fd()))
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, resolvePlacement(cfg.ToastPlacement, width))
}

func resolvePlacement(cfg placement.Config, width int) placementResult {
	res := placementResult{Placement: placement.Resolve(cfg, width)}
	if width == placement.Unbounded {
		res.Unbounded = true
	} else {
		res.Width = width
	}
	return res
}

// terminalWidth reports the width of the terminal on fd, or
// placement.Unbounded when fd is not a terminal.
func terminalWidth(fd int) int {
	if !term.IsTerminal(fd) {
		return placement.Unbounded
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return placement.Unbounded
	}
	return w
}
