package engine

import "context"

type contextKey string

const engineContextKey contextKey = "herald.engine"

// WithEngine returns a context carrying e.
func WithEngine(ctx context.Context, e *Engine) context.Context {
	return context.WithValue(ctx, engineContextKey, e)
}

// FromContext returns the engine carried by ctx.
func FromContext(ctx context.Context) (*Engine, bool) {
	e, ok := ctx.Value(engineContextKey).(*Engine)
	return e, ok && e != nil
}

// MustFromContext returns the engine carried by ctx or panics. Use it where
// a missing engine is a wiring bug.
func MustFromContext(ctx context.Context) *Engine {
	e, ok := FromContext(ctx)
	if !ok {
		panic("herald: notification engine not found in context")
	}
	return e
}
