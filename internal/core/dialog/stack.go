// Package dialog keeps the stack of open dialogs.
package dialog

import (
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/colonyops/herald/internal/core/notify"
)

// Entry is an open dialog.
type Entry struct {
	ID       string
	Options  notify.DialogOptions
	OpenedAt time.Time
}

type slot struct {
	entry      Entry
	dismissing bool
}

// Stack holds dialogs in open order. Several may be open at once; the last
// element is the topmost.
type Stack struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	slots    []*slot
	onChange func()
	onHide   func(Entry)
}

// Option configures a Stack.
type Option func(*Stack)

// WithClock sets the clock used for ids and open times.
func WithClock(c clockwork.Clock) Option {
	return func(s *Stack) {
		s.clock = c
	}
}

// WithOnChange registers a callback run after every mutation.
func WithOnChange(fn func()) Option {
	return func(s *Stack) {
		s.onChange = fn
	}
}

// WithOnHide registers a callback run after a dialog is removed.
func WithOnHide(fn func(Entry)) Option {
	return func(s *Stack) {
		s.onHide = fn
	}
}

// NewStack returns an empty Stack.
func NewStack(opts ...Option) *Stack {
	s := &Stack{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show opens a dialog and returns its id.
func (s *Stack) Show(opts notify.DialogOptions) string {
	now := s.clock.Now()
	e := Entry{
		ID:       notify.NewID("dialog", now),
		Options:  opts,
		OpenedAt: now,
	}

	s.mu.Lock()
	s.slots = append(s.slots, &slot{entry: e})
	s.mu.Unlock()

	s.changed()
	return e.ID
}

// Hide closes the dialog with the given id. OnDismiss runs exactly once,
// while the dialog is still listed, before it is removed. Repeated or
// re-entrant calls for the same id return false.
func (s *Stack) Hide(id string) bool {
	s.mu.Lock()
	sl := s.findLocked(id)
	if sl == nil || sl.dismissing {
		s.mu.Unlock()
		return false
	}
	sl.dismissing = true
	onDismiss := sl.entry.Options.OnDismiss
	s.mu.Unlock()

	if onDismiss != nil {
		// Removed even when OnDismiss panics.
		defer s.drop(sl)
		onDismiss()
		return true
	}
	s.drop(sl)
	return true
}

// Escape hides the dialog when its options allow escape to close it.
func (s *Stack) Escape(id string) bool {
	e, ok := s.Get(id)
	if !ok || !e.Options.EscapeCloses() {
		return false
	}
	return s.Hide(id)
}

// OutsideClick hides the dialog when its options allow a click outside to
// close it.
func (s *Stack) OutsideClick(id string) bool {
	e, ok := s.Get(id)
	if !ok || !e.Options.OutsideClickCloses() {
		return false
	}
	return s.Hide(id)
}

// Top returns the most recently opened dialog.
func (s *Stack) Top() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.slots) == 0 {
		return Entry{}, false
	}
	return s.slots[len(s.slots)-1].entry, true
}

// List returns the open dialogs in open order.
func (s *Stack) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.slots))
	for i, sl := range s.slots {
		out[i] = sl.entry
	}
	return out
}

// Get returns the dialog with the given id.
func (s *Stack) Get(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl := s.findLocked(id); sl != nil {
		return sl.entry, true
	}
	return Entry{}, false
}

// Len returns the number of open dialogs.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// Clear hides every open dialog, newest first.
func (s *Stack) Clear() {
	for _, e := range slices.Backward(s.List()) {
		s.Hide(e.ID)
	}
}

func (s *Stack) drop(sl *slot) {
	s.mu.Lock()
	idx := slices.Index(s.slots, sl)
	if idx >= 0 {
		s.slots = slices.Delete(s.slots, idx, idx+1)
	}
	s.mu.Unlock()

	if idx < 0 {
		return
	}
	if s.onHide != nil {
		s.onHide(sl.entry)
	}
	s.changed()
}

func (s *Stack) findLocked(id string) *slot {
	for _, sl := range s.slots {
		if sl.entry.ID == id {
			return sl
		}
	}
	return nil
}

func (s *Stack) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
