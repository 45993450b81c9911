package logging

import "context"

type contextKey string

const (
	engineIDKey       contextKey = "engine_id"
	notificationIDKey contextKey = "notification_id"
)

// WithEngineID tags the context with the id of the engine handling a call.
func WithEngineID(ctx context.Context, engineID string) context.Context {
	return context.WithValue(ctx, engineIDKey, engineID)
}

// WithNotificationID tags the context with a notification id.
func WithNotificationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, notificationIDKey, id)
}

// EngineID returns the engine id from ctx, or "" if absent.
func EngineID(ctx context.Context) string {
	if id, ok := ctx.Value(engineIDKey).(string); ok {
		return id
	}
	return ""
}

// NotificationID returns the notification id from ctx, or "" if absent.
func NotificationID(ctx context.Context) string {
	if id, ok := ctx.Value(notificationIDKey).(string); ok {
		return id
	}
	return ""
}
