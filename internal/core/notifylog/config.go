// Package notifylog forwards shown notifications to a user callback and/or
// a remote endpoint, filtered by a minimum level.
package notifylog

import (
	"context"
	"slices"
	"time"

	"github.com/colonyops/herald/internal/core/notify"
)

// Level selects which notification types are logged.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
	LevelAll     Level = "all"
)

// Levels lists every supported level.
var Levels = []Level{LevelError, LevelWarning, LevelInfo, LevelAll}

// IsValid reports whether l is a supported level.
func (l Level) IsValid() bool {
	return slices.Contains(Levels, l)
}

const (
	DefaultTimeout = 5 * time.Second
)

// Config controls whether and where notifications are logged.
type Config struct {
	Enabled  bool          `yaml:"enabled"`
	Endpoint string        `yaml:"endpoint"`
	Level    Level         `yaml:"log_level"`
	Timeout  time.Duration `yaml:"timeout"`
	Retries  int           `yaml:"retries"`

	// OnLog is invoked for every notification that passes the level gate.
	// Errors and panics are reported, never propagated.
	OnLog func(ctx context.Context, n notify.Notification) error `yaml:"-"`
}

// ShouldLog reports whether a notification of type t passes level l.
//
// success notifications are only logged at LevelAll.
func ShouldLog(l Level, t notify.Type) bool {
	switch l {
	case LevelAll:
		return true
	case LevelError:
		return t == notify.TypeError
	case LevelWarning:
		return t == notify.TypeError || t == notify.TypeWarning
	case LevelInfo:
		return t == notify.TypeError || t == notify.TypeWarning || t == notify.TypeInfo
	default:
		return false
	}
}
