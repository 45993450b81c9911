package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/herald/internal/core/config"
	"github.com/colonyops/herald/internal/printer"
	"github.com/colonyops/herald/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// validationResult is the JSON printed by config validate.
type validationResult struct {
	Path   string            `json:"path"`
	Valid  bool              `json:"valid"`
	Errors []validationError `json:"errors,omitempty"`
}

type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "herald config validate [options]",
				Description: "Validates the configuration file, checking durations, placement positions, log levels, and the logging endpoint.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	result, err := validateConfig(cmd.flags.ConfigPath)
	if err != nil {
		return err
	}

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, result); err != nil {
			return err
		}
		if !result.Valid {
			return cli.Exit("", 1)
		}
		return nil
	}

	return outputText(printer.Ctx(ctx), result)
}

// validateConfig parses the file without rejecting it so every field
// error can be reported. Unreadable or unparsable files are returned as
// errors.
func validateConfig(path string) (validationResult, error) {
	result := validationResult{Path: path, Valid: true}

	cfg, err := config.Parse(path)
	if err != nil {
		return result, fmt.Errorf("load config: %w", err)
	}

	err = cfg.ValidateDeep(path)
	if err == nil {
		return result, nil
	}

	result.Valid = false
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		result.Errors = []validationError{{Message: err.Error()}}
		return result, nil
	}
	for _, fe := range fieldErrs {
		result.Errors = append(result.Errors, validationError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return result, nil
}

func outputText(p *printer.Printer, result validationResult) error {
	p.Section(result.Path)

	for _, e := range result.Errors {
		if e.Field == "" {
			p.Errorf("%s", e.Message)
			continue
		}
		p.Errorf("%s: %s", e.Field, e.Message)
	}

	p.Printf("")
	if result.Valid {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(result.Errors))
	return cli.Exit("", 1)
}
