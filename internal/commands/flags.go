package commands

import (
	"sync"

	"github.com/colonyops/herald/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	once   sync.Once
	config *config.Config
	err    error
}

// Config loads and validates the config file on first use. Commands that
// must inspect an invalid config, like config validate, call config.Parse
// directly instead.
func (f *Flags) Config() (*config.Config, error) {
	f.once.Do(func() {
		f.config, f.err = config.Load(f.ConfigPath)
	})
	return f.config, f.err
}
