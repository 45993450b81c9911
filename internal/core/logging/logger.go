// Package logging provides component-scoped zerolog loggers and a hook that
// lifts engine and notification ids out of the context.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with a component name under
// the "cmp" key. The context hook is attached so ctx-scoped ids appear on
// every event logged with .Ctx(ctx).
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger().Hook(ContextHook{})
}
