package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies engine_id and notification_id from the event context
// onto log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if id := EngineID(ctx); id != "" {
		e.Str(string(engineIDKey), id)
	}
	if id := NotificationID(ctx); id != "" {
		e.Str(string(notificationIDKey), id)
	}
}
