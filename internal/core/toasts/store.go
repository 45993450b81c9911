// Package toasts holds the ordered set of live toast notifications and
// their auto-dismiss timers.
package toasts

import (
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/colonyops/herald/internal/core/logging"
	"github.com/colonyops/herald/internal/core/notify"
)

// ResumeMode selects how a paused countdown restarts.
type ResumeMode int

const (
	// ResumeRemaining continues from the time left when the toast was paused.
	ResumeRemaining ResumeMode = iota
	// ResumeRestart restarts the full duration.
	ResumeRestart
)

// Reason explains why a toast left the store.
type Reason string

const (
	ReasonExpired   Reason = "expired"
	ReasonDismissed Reason = "dismissed"
	ReasonAction    Reason = "action"
	ReasonEvicted   Reason = "evicted"
	ReasonCleared   Reason = "cleared"
)

// Toast is a live notification plus its countdown state.
type Toast struct {
	notify.Notification
	Paused bool
	// Deadline is when the toast expires; zero while paused or persistent.
	Deadline time.Time
	// Remaining is the countdown left at the moment the toast was paused.
	Remaining time.Duration
}

type entry struct {
	toast Toast
	timer clockwork.Timer
	gen   uint64
}

// Options configures a Store.
type Options struct {
	Clock clockwork.Clock
	// DefaultDuration applies when an Input leaves Duration nil. Nil means
	// notify.DefaultDuration.
	DefaultDuration *time.Duration
	// MaxVisible evicts the oldest toasts beyond this count. 0 = unlimited.
	MaxVisible int

	OnShow   func(notify.Notification)
	OnRemove func(notify.Notification, Reason)
	OnChange func()
	Logger   *zerolog.Logger
}

// Store manages the lifecycle of active toasts: ordered insertion,
// per-toast timers, pause/resume, and idempotent removal. It is safe for
// concurrent use; callbacks run without the lock held.
type Store struct {
	mu              sync.Mutex
	clock           clockwork.Clock
	defaultDuration time.Duration
	maxVisible      int
	entries         []*entry
	gen             uint64

	onShow   func(notify.Notification)
	onRemove func(notify.Notification, Reason)
	onChange func()
	logger   zerolog.Logger
}

// NewStore creates an empty Store.
func NewStore(opts Options) *Store {
	s := &Store{
		clock:           opts.Clock,
		defaultDuration: notify.DefaultDuration,
		maxVisible:      max(opts.MaxVisible, 0),
		onShow:          opts.OnShow,
		onRemove:        opts.OnRemove,
		onChange:        opts.OnChange,
		logger:          logging.Component("toasts"),
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if opts.DefaultDuration != nil {
		s.defaultDuration = max(*opts.DefaultDuration, 0)
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	}
	return s
}

// DefaultDuration returns the duration applied when callers omit one.
func (s *Store) DefaultDuration() time.Duration {
	return s.defaultDuration
}

// Show appends a notification built from in and arms its timer when the
// resolved duration is positive.
func (s *Store) Show(in notify.Input) notify.Notification {
	now := s.clock.Now()

	duration := s.defaultDuration
	if in.Duration != nil {
		duration = max(*in.Duration, 0)
	}

	typ := in.Type
	switch {
	case typ == "":
		typ = notify.TypeInfo
	case !typ.IsValid():
		s.logger.Warn().Str("type", string(typ)).Msg("unknown notification type, showing as info")
		typ = notify.TypeInfo
	}

	n := notify.Notification{
		ID:        notify.NewID("notification", now),
		Type:      typ,
		Message:   in.Message,
		Title:     in.Title,
		Duration:  duration,
		Action:    in.Action,
		CreatedAt: now,
	}

	s.mu.Lock()
	e := &entry{toast: Toast{Notification: n}}
	s.entries = append(s.entries, e)
	if duration > 0 {
		s.armLocked(e, duration)
	}
	var evicted []*entry
	if s.maxVisible > 0 && len(s.entries) > s.maxVisible {
		cut := len(s.entries) - s.maxVisible
		evicted = slices.Clone(s.entries[:cut])
		s.entries = slices.Clone(s.entries[cut:])
		for _, ev := range evicted {
			stopLocked(ev)
		}
	}
	s.mu.Unlock()

	for _, ev := range evicted {
		s.removed(ev.toast.Notification, ReasonEvicted)
	}
	if s.onShow != nil {
		s.onShow(n)
	}
	s.changed()
	return n
}

// Remove deletes the toast with the given id and cancels its timer. It
// returns false, without error, when the id is not present.
func (s *Store) Remove(id string) bool {
	return s.remove(id, ReasonDismissed)
}

// Pause suspends the countdown of a toast, recording the time left.
func (s *Store) Pause(id string) bool {
	s.mu.Lock()
	e := s.findLocked(id)
	if e == nil || e.toast.Paused {
		s.mu.Unlock()
		return false
	}
	if e.timer != nil {
		e.toast.Remaining = max(e.toast.Deadline.Sub(s.clock.Now()), 0)
		stopLocked(e)
	}
	e.toast.Paused = true
	e.toast.Deadline = time.Time{}
	s.mu.Unlock()

	s.changed()
	return true
}

// Resume re-arms a paused toast. Persistent toasts simply leave the paused
// state.
func (s *Store) Resume(id string, mode ResumeMode) bool {
	s.mu.Lock()
	e := s.findLocked(id)
	if e == nil || !e.toast.Paused {
		s.mu.Unlock()
		return false
	}
	e.toast.Paused = false
	if e.toast.Duration > 0 {
		d := e.toast.Duration
		if mode == ResumeRemaining {
			d = e.toast.Remaining
		}
		s.armLocked(e, d)
	}
	e.toast.Remaining = 0
	s.mu.Unlock()

	s.changed()
	return true
}

// Trigger runs the toast's action, if any, and then removes the toast.
func (s *Store) Trigger(id string) bool {
	s.mu.Lock()
	e := s.findLocked(id)
	if e == nil {
		s.mu.Unlock()
		return false
	}
	action := e.toast.Action
	s.mu.Unlock()

	if action != nil && action.OnClick != nil {
		action.OnClick()
	}
	s.remove(id, ReasonAction)
	return true
}

// Clear removes every toast and cancels all timers.
func (s *Store) Clear() {
	s.mu.Lock()
	cleared := s.entries
	s.entries = nil
	for _, e := range cleared {
		stopLocked(e)
	}
	s.mu.Unlock()

	if len(cleared) == 0 {
		return
	}
	for _, e := range cleared {
		s.removed(e.toast.Notification, ReasonCleared)
	}
	s.changed()
}

// List returns the live toasts in display (arrival) order.
func (s *Store) List() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Toast, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.toast
	}
	return out
}

// Get returns the toast with the given id.
func (s *Store) Get(id string) (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e := s.findLocked(id); e != nil {
		return e.toast, true
	}
	return Toast{}, false
}

// Len returns the number of live toasts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) remove(id string, reason Reason) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	e := s.entries[idx]
	stopLocked(e)
	s.entries = slices.Delete(s.entries, idx, idx+1)
	s.mu.Unlock()

	s.removed(e.toast.Notification, reason)
	s.changed()
	return true
}

// expire is the timer callback. The generation check drops callbacks from
// timers that were stopped or re-armed after they had already fired.
func (s *Store) expire(id string, gen uint64) {
	s.mu.Lock()
	e := s.findLocked(id)
	if e == nil || e.gen != gen || e.toast.Paused {
		s.mu.Unlock()
		return
	}
	e.timer = nil
	s.mu.Unlock()

	s.remove(id, ReasonExpired)
}

func (s *Store) armLocked(e *entry, d time.Duration) {
	stopLocked(e)
	s.gen++
	gen := s.gen
	id := e.toast.ID
	e.gen = gen
	e.toast.Deadline = s.clock.Now().Add(d)
	e.timer = s.clock.AfterFunc(d, func() { s.expire(id, gen) })
}

func stopLocked(e *entry) {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.gen = 0
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.entries, func(e *entry) bool { return e.toast.ID == id })
}

func (s *Store) findLocked(id string) *entry {
	if idx := s.indexLocked(id); idx >= 0 {
		return s.entries[idx]
	}
	return nil
}

func (s *Store) removed(n notify.Notification, reason Reason) {
	if s.onRemove != nil {
		s.onRemove(n, reason)
	}
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
