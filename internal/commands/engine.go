package commands

import (
	"github.com/colonyops/herald/internal/core/config"
	"github.com/colonyops/herald/internal/core/engine"
)

// engineOptions maps the loaded config onto engine options.
func engineOptions(cfg *config.Config) engine.Options {
	return engine.Options{
		Logging:         cfg.Logging,
		DefaultDuration: cfg.DefaultDuration,
		Placement:       cfg.ToastPlacement,
		MaxToasts:       cfg.MaxToasts,
	}
}
