// Package engine implements the notification orchestration engine: toasts,
// a single-slot confirmation gate, a dialog stack, toast placement, and
// notification logging behind one concurrency-safe API.
package engine

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/colonyops/herald/internal/core/confirm"
	"github.com/colonyops/herald/internal/core/dialog"
	"github.com/colonyops/herald/internal/core/global"
	"github.com/colonyops/herald/internal/core/logging"
	"github.com/colonyops/herald/internal/core/notify"
	"github.com/colonyops/herald/internal/core/notifylog"
	"github.com/colonyops/herald/internal/core/placement"
	"github.com/colonyops/herald/internal/core/toasts"
)

// Options configures an Engine. The zero value is usable.
type Options struct {
	Logging notifylog.Config
	// DefaultDuration is the toast duration used when a caller omits one.
	// Nil means notify.DefaultDuration.
	DefaultDuration *time.Duration
	Placement       placement.Config
	// ViewportWidth is the initial width used for responsive placement.
	// Values <= 0 mean placement.Unbounded.
	ViewportWidth int
	// MaxToasts evicts the oldest toast beyond this count. 0 = unlimited.
	MaxToasts int

	Clock   clockwork.Clock
	Logger  *zerolog.Logger
	Metrics *Metrics
	// Registry receives the engine on every change. Nil means
	// global.Default.
	Registry   *global.Registry
	HTTPClient *http.Client
}

// State is an immutable snapshot of everything a renderer needs.
type State struct {
	// Version increases with every published change.
	Version        uint64
	Notifications  []toasts.Toast
	Dialogs        []dialog.Entry
	Confirm        *confirm.Request
	QueuedConfirms int
	Placement      placement.Resolved
	Logging        notifylog.Config
}

// Engine orchestrates toasts, confirmations, and dialogs.
type Engine struct {
	id       string
	clock    clockwork.Clock
	logger   zerolog.Logger
	metrics  *Metrics
	registry *global.Registry

	store      *toasts.Store
	dialogs    *dialog.Stack
	gate       *confirm.Gate
	dispatcher *notifylog.Dispatcher

	mu           sync.Mutex
	closed       bool
	placementCfg placement.Config
	width        int
	resolved     placement.Resolved
	logging      notifylog.Config
	version      uint64
	state        State
	subs         map[int]func(State)
	nextSub      int
}

var _ global.Engine = (*Engine)(nil)

// New creates an Engine and publishes it to its registry.
func New(opts Options) *Engine {
	e := &Engine{
		clock:        opts.Clock,
		metrics:      opts.Metrics,
		registry:     opts.Registry,
		placementCfg: opts.Placement,
		width:        normalizeWidth(opts.ViewportWidth),
		logging:      opts.Logging,
		subs:         map[int]func(State){},
	}
	if e.clock == nil {
		e.clock = clockwork.NewRealClock()
	}
	if e.registry == nil {
		e.registry = global.Default
	}
	e.id = notify.NewID("engine", e.clock.Now())

	base := logging.Component("engine")
	if opts.Logger != nil {
		base = *opts.Logger
	}
	e.logger = base.With().Str("engine_id", e.id).Logger()

	e.resolved = placement.Resolve(e.placementCfg, e.width)

	e.dispatcher = notifylog.NewDispatcher(
		notifylog.WithHTTPClient(opts.HTTPClient),
		notifylog.WithNow(e.clock.Now),
		notifylog.WithObserver(e.metrics.delivered),
	)
	e.store = toasts.NewStore(toasts.Options{
		Clock:           e.clock,
		DefaultDuration: opts.DefaultDuration,
		MaxVisible:      opts.MaxToasts,
		OnShow:          e.onShow,
		OnRemove:        func(_ notify.Notification, r toasts.Reason) { e.metrics.notificationRemoved(r) },
		OnChange:        e.publish,
		Logger:          &e.logger,
	})
	e.dialogs = dialog.NewStack(
		dialog.WithClock(e.clock),
		dialog.WithOnChange(e.publish),
		dialog.WithOnHide(func(dialog.Entry) { e.metrics.dialogClosed() }),
	)
	e.gate = confirm.NewGate(e.publish)

	e.publish()
	return e
}

// ID identifies the engine in logs.
func (e *Engine) ID() string {
	return e.id
}

// ShowNotification displays a toast and returns its id. It returns "" once
// the engine is closed.
func (e *Engine) ShowNotification(in notify.Input) string {
	if e.rejectClosed("show_notification") {
		return ""
	}
	return e.store.Show(in).ID
}

// RemoveNotification dismisses a toast. Unknown ids are ignored.
func (e *Engine) RemoveNotification(id string) {
	if e.rejectClosed("remove_notification") {
		return
	}
	e.store.Remove(id)
}

// PauseNotification suspends a toast's auto-dismiss countdown.
func (e *Engine) PauseNotification(id string) {
	if e.rejectClosed("pause_notification") {
		return
	}
	e.store.Pause(id)
}

// ResumeNotification restarts a paused toast's countdown.
func (e *Engine) ResumeNotification(id string, mode toasts.ResumeMode) {
	if e.rejectClosed("resume_notification") {
		return
	}
	e.store.Resume(id, mode)
}

// TriggerAction runs a toast's action and dismisses it.
func (e *Engine) TriggerAction(id string) {
	if e.rejectClosed("trigger_action") {
		return
	}
	e.store.Trigger(id)
}

// Notifications returns the live toasts in arrival order.
func (e *Engine) Notifications() []toasts.Toast {
	return e.store.List()
}

// Confirm shows a confirmation and returns the promise that settles with
// the user's answer. After Close it returns a promise resolved to false.
func (e *Engine) Confirm(opts notify.ConfirmOptions) *confirm.Promise {
	if e.rejectClosed("confirm") {
		return confirm.Resolved(false)
	}
	return e.gate.Request(opts)
}

// ResolveConfirm settles the active confirmation.
func (e *Engine) ResolveConfirm(result bool) {
	if e.rejectClosed("resolve_confirm") {
		return
	}
	if !e.gate.Resolve(result) {
		e.logger.Debug().Msg("resolve with no pending confirmation")
		return
	}
	if result {
		e.metrics.confirmed("confirmed")
	} else {
		e.metrics.confirmed("cancelled")
	}
}

// ConfirmRequest returns the active confirmation.
func (e *Engine) ConfirmRequest() (confirm.Request, bool) {
	return e.gate.Current()
}

// ShowDialog opens a dialog and returns its id. It returns "" once the
// engine is closed.
func (e *Engine) ShowDialog(opts notify.DialogOptions) string {
	if e.rejectClosed("show_dialog") {
		return ""
	}
	id := e.dialogs.Show(opts)
	e.metrics.dialogOpened()
	return id
}

// HideDialog closes a dialog, running its OnDismiss once.
func (e *Engine) HideDialog(id string) {
	if e.rejectClosed("hide_dialog") {
		return
	}
	e.dialogs.Hide(id)
}

// EscapeDialog closes a dialog if it allows closing on escape.
func (e *Engine) EscapeDialog(id string) {
	if e.rejectClosed("escape_dialog") {
		return
	}
	e.dialogs.Escape(id)
}

// OutsideClickDialog closes a dialog if it allows closing on an outside
// click.
func (e *Engine) OutsideClickDialog(id string) {
	if e.rejectClosed("outside_click_dialog") {
		return
	}
	e.dialogs.OutsideClick(id)
}

// TopDialog returns the most recently opened dialog.
func (e *Engine) TopDialog() (dialog.Entry, bool) {
	return e.dialogs.Top()
}

// Dialogs returns the open dialogs in open order.
func (e *Engine) Dialogs() []dialog.Entry {
	return e.dialogs.List()
}

// SetPlacement replaces the placement configuration and re-resolves it.
func (e *Engine) SetPlacement(cfg placement.Config) {
	e.mu.Lock()
	e.placementCfg = cfg
	e.resolved = placement.Resolve(cfg, e.width)
	e.mu.Unlock()

	e.publish()
}

// SetViewportWidth records the viewport width. Placement is re-resolved only
// when the configuration has responsive rules.
func (e *Engine) SetViewportWidth(width int) {
	width = normalizeWidth(width)

	e.mu.Lock()
	if width == e.width {
		e.mu.Unlock()
		return
	}
	e.width = width
	changed := false
	if e.placementCfg.HasResponsive() {
		next := placement.Resolve(e.placementCfg, width)
		changed = next != e.resolved
		e.resolved = next
	}
	e.mu.Unlock()

	if changed {
		e.publish()
	}
}

// ViewportWidth returns the last recorded width. A resize publishes a new
// State only when it changes the resolved placement, so renderers read the
// width here.
func (e *Engine) ViewportWidth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width
}

// Placement returns the resolved toast placement.
func (e *Engine) Placement() placement.Resolved {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolved
}

// SetLogging replaces the logging configuration for subsequent toasts.
func (e *Engine) SetLogging(cfg notifylog.Config) {
	e.mu.Lock()
	e.logging = cfg
	e.mu.Unlock()

	e.publish()
}

// Logging returns the logging configuration.
func (e *Engine) Logging() notifylog.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.logging
}

// State returns the latest snapshot.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Subscribe registers fn to receive every published snapshot. fn runs on the
// goroutine that caused the change and must not block.
func (e *Engine) Subscribe(fn func(State)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// Notify returns typed convenience helpers bound to e.
func (e *Engine) Notify() Notifier {
	return Notifier{e: e}
}

// Dialog returns a dialog handle bound to e.
func (e *Engine) Dialog() DialogHandle {
	return DialogHandle{e: e}
}

// Close tears the engine down: it leaves the registry if still current,
// settles every confirmation with false, dismisses dialogs, cancels toast
// timers, and waits for in-flight log deliveries. It is safe to call more
// than once.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	// Released under mu so a concurrent publish cannot re-register e.
	e.registry.Release(e)
	e.mu.Unlock()

	e.gate.Close()
	e.dialogs.Clear()
	e.store.Clear()
	e.dispatcher.Wait()

	e.logger.Debug().Msg("engine closed")
}

// Wait blocks until in-flight log deliveries finish.
func (e *Engine) Wait() {
	e.dispatcher.Wait()
}

func (e *Engine) onShow(n notify.Notification) {
	e.metrics.notificationShown(string(n.Type))

	cfg := e.Logging()
	ctx := logging.WithNotificationID(logging.WithEngineID(context.Background(), e.id), n.ID)
	e.dispatcher.Dispatch(ctx, n, cfg)
}

// publish rebuilds the snapshot, republishes the engine to its registry,
// and fans the snapshot out to subscribers.
func (e *Engine) publish() {
	e.mu.Lock()
	e.version++
	s := State{
		Version:        e.version,
		Notifications:  e.store.List(),
		Dialogs:        e.dialogs.List(),
		QueuedConfirms: e.gate.Queued(),
		Placement:      e.resolved,
		Logging:        e.logging,
	}
	if req, ok := e.gate.Current(); ok {
		s.Confirm = &req
	}
	e.state = s
	if !e.closed {
		e.registry.Register(e)
	}
	subs := make([]func(State), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.mu.Unlock()

	e.metrics.observe(s)
	for _, fn := range subs {
		fn(s)
	}
}

func (e *Engine) rejectClosed(op string) bool {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		e.logger.Warn().Str("op", op).Msg("notification engine is closed")
	}
	return closed
}

func normalizeWidth(w int) int {
	if w <= 0 {
		return placement.Unbounded
	}
	return w
}
