// Package global gives code outside any scoped engine access to the most
// recently published notification engine.
package global

import (
	"sync/atomic"

	"github.com/colonyops/herald/internal/core/confirm"
	"github.com/colonyops/herald/internal/core/logging"
	"github.com/colonyops/herald/internal/core/notify"
)

// Engine is the subset of the orchestration engine reachable globally.
type Engine interface {
	ShowNotification(in notify.Input) string
	RemoveNotification(id string)
	Confirm(opts notify.ConfirmOptions) *confirm.Promise
	ShowDialog(opts notify.DialogOptions) string
	HideDialog(id string)
}

type holder struct {
	engine Engine
}

// Registry holds the current engine. Readers always see either a complete
// engine or none.
type Registry struct {
	current atomic.Pointer[holder]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Default is the process-wide registry engines publish to unless
// configured otherwise.
var Default = NewRegistry()

// Register makes e the current engine.
func (r *Registry) Register(e Engine) {
	if e == nil {
		r.current.Store(nil)
		return
	}
	r.current.Store(&holder{engine: e})
}

// Unregister clears the current engine.
func (r *Registry) Unregister() {
	r.current.Store(nil)
}

// Release clears the registry only if e is still the current engine. It
// reports whether it did.
func (r *Registry) Release(e Engine) bool {
	for {
		h := r.current.Load()
		if h == nil || h.engine != e {
			return false
		}
		if r.current.CompareAndSwap(h, nil) {
			return true
		}
	}
}

// Current returns the registered engine, or nil.
func (r *Registry) Current() Engine {
	if h := r.current.Load(); h != nil {
		return h.engine
	}
	return nil
}

func (r *Registry) engine(op string) Engine {
	e := r.Current()
	if e == nil {
		logger := logging.Component("global")
		logger.Warn().Str("op", op).Msg("no notification engine registered")
	}
	return e
}

// ShowNotification shows a toast on the current engine and returns its id,
// or "" when no engine is registered.
func (r *Registry) ShowNotification(in notify.Input) string {
	if e := r.engine("show_notification"); e != nil {
		return e.ShowNotification(in)
	}
	return ""
}

// RemoveNotification removes a toast from the current engine.
func (r *Registry) RemoveNotification(id string) {
	if e := r.engine("remove_notification"); e != nil {
		e.RemoveNotification(id)
	}
}

// Confirm asks the current engine for a confirmation. Without an engine the
// returned promise is already resolved to false.
func (r *Registry) Confirm(opts notify.ConfirmOptions) *confirm.Promise {
	if e := r.engine("confirm"); e != nil {
		return e.Confirm(opts)
	}
	return confirm.Resolved(false)
}

// ShowDialog opens a dialog on the current engine and returns its id, or ""
// when no engine is registered.
func (r *Registry) ShowDialog(opts notify.DialogOptions) string {
	if e := r.engine("show_dialog"); e != nil {
		return e.ShowDialog(opts)
	}
	return ""
}

// HideDialog closes a dialog on the current engine.
func (r *Registry) HideDialog(id string) {
	if e := r.engine("hide_dialog"); e != nil {
		e.HideDialog(id)
	}
}

func (r *Registry) notify(t notify.Type, message string, opts []notify.Option) string {
	return r.ShowNotification(notify.NewInput(t, message, opts...))
}

// Success shows a success toast.
func (r *Registry) Success(message string, opts ...notify.Option) string {
	return r.notify(notify.TypeSuccess, message, opts)
}

// Warning shows a warning toast.
func (r *Registry) Warning(message string, opts ...notify.Option) string {
	return r.notify(notify.TypeWarning, message, opts)
}

// Error shows an error toast.
func (r *Registry) Error(message string, opts ...notify.Option) string {
	return r.notify(notify.TypeError, message, opts)
}

// Info shows an info toast.
func (r *Registry) Info(message string, opts ...notify.Option) string {
	return r.notify(notify.TypeInfo, message, opts)
}
