package toasts

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/herald/internal/core/notify"
)

type removal struct {
	id     string
	reason Reason
}

type harness struct {
	clock   *clockwork.FakeClock
	store   *Store
	mu      sync.Mutex
	shown   []notify.Notification
	removed []removal
	changes int
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{clock: clockwork.NewFakeClock()}
	opts.Clock = h.clock
	opts.OnShow = func(n notify.Notification) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.shown = append(h.shown, n)
	}
	opts.OnRemove = func(n notify.Notification, r Reason) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.removed = append(h.removed, removal{id: n.ID, reason: r})
	}
	opts.OnChange = func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.changes++
	}
	h.store = NewStore(opts)
	return h
}

// removals returns a copy of the recorded removals.
func (h *harness) removals() []removal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]removal(nil), h.removed...)
}

// waitRemoved waits for expiry callbacks, which the fake clock runs on
// their own goroutines.
func (h *harness) waitRemoved(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return len(h.removals()) == n }, time.Second, time.Millisecond)
}

// requireTimers asserts the number of armed timers.
func requireTimers(t *testing.T, clk *clockwork.FakeClock, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clk.BlockUntilContext(ctx, n))
}

func messages(ts []Toast) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Message
	}
	return out
}

func TestStore_Show(t *testing.T) {
	h := newHarness(t, Options{})

	n := h.store.Show(notify.NewInput(notify.TypeSuccess, "saved", notify.WithTitle("Profile")))

	assert.Regexp(t, `^notification-\d+-.+$`, n.ID)
	assert.Equal(t, notify.TypeSuccess, n.Type)
	assert.Equal(t, "Profile", n.Title)
	assert.Equal(t, notify.DefaultDuration, n.Duration)
	assert.Equal(t, h.clock.Now(), n.CreatedAt)

	require.Equal(t, 1, h.store.Len())
	got, ok := h.store.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, n, got.Notification)
	assert.Equal(t, h.clock.Now().Add(notify.DefaultDuration), got.Deadline)
	assert.Len(t, h.shown, 1)
	assert.Equal(t, 1, h.changes)
}

func TestStore_Show_preserves_arrival_order(t *testing.T) {
	h := newHarness(t, Options{})

	for _, msg := range []string{"a", "b", "c"} {
		h.store.Show(notify.NewInput(notify.TypeInfo, msg))
	}

	assert.Equal(t, []string{"a", "b", "c"}, messages(h.store.List()))
}

func TestStore_Show_unique_ids(t *testing.T) {
	h := newHarness(t, Options{})

	seen := map[string]bool{}
	for i := range 50 {
		n := h.store.Show(notify.NewInput(notify.TypeInfo, fmt.Sprint(i)))
		assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
	}
}

func TestStore_Show_unknown_type_falls_back_to_info(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	h := newHarness(t, Options{Logger: &logger})

	n := h.store.Show(notify.Input{Type: "fatal", Message: "x"})

	assert.Equal(t, notify.TypeInfo, n.Type)
	assert.Contains(t, buf.String(), "unknown notification type")
}

func TestStore_auto_dismiss(t *testing.T) {
	h := newHarness(t, Options{})
	n := h.store.Show(notify.NewInput(notify.TypeInfo, "bye", notify.WithDuration(2*time.Second)))

	h.clock.Advance(2*time.Second - time.Millisecond)
	assert.Equal(t, 1, h.store.Len(), "still present just before the deadline")

	h.clock.Advance(time.Millisecond)
	h.waitRemoved(t, 1)
	assert.Equal(t, 0, h.store.Len())
	assert.Equal(t, []removal{{id: n.ID, reason: ReasonExpired}}, h.removals())
}

func TestStore_default_duration_override(t *testing.T) {
	d := 10 * time.Second
	h := newHarness(t, Options{DefaultDuration: &d})

	n := h.store.Show(notify.NewInput(notify.TypeInfo, "slow"))
	assert.Equal(t, d, n.Duration)

	h.clock.Advance(notify.DefaultDuration)
	assert.Equal(t, 1, h.store.Len())

	h.clock.Advance(d - notify.DefaultDuration)
	h.waitRemoved(t, 1)
	assert.Equal(t, 0, h.store.Len())
}

func TestStore_persistent_never_expires(t *testing.T) {
	h := newHarness(t, Options{})
	n := h.store.Show(notify.NewInput(notify.TypeError, "stuck", notify.Persistent()))

	assert.True(t, n.Persistent())
	requireTimers(t, h.clock, 0)

	h.clock.Advance(24 * time.Hour)
	assert.Equal(t, 1, h.store.Len())
}

func TestStore_negative_duration_is_persistent(t *testing.T) {
	h := newHarness(t, Options{})
	n := h.store.Show(notify.NewInput(notify.TypeInfo, "neg", notify.WithDuration(-time.Second)))

	assert.Equal(t, time.Duration(0), n.Duration)
	requireTimers(t, h.clock, 0)
}

func TestStore_Remove_is_idempotent(t *testing.T) {
	h := newHarness(t, Options{})
	n := h.store.Show(notify.NewInput(notify.TypeInfo, "once"))

	assert.True(t, h.store.Remove(n.ID))
	assert.False(t, h.store.Remove(n.ID))
	assert.False(t, h.store.Remove("notification-0-missing"))

	assert.Equal(t, []removal{{id: n.ID, reason: ReasonDismissed}}, h.removed)
	requireTimers(t, h.clock, 0)
}

func TestStore_Remove_before_timer_never_fires_twice(t *testing.T) {
	h := newHarness(t, Options{})
	n := h.store.Show(notify.NewInput(notify.TypeInfo, "quick"))

	h.store.Remove(n.ID)
	h.clock.Advance(time.Minute)

	assert.Len(t, h.removed, 1)
}

func TestStore_MaxVisible_evicts_oldest(t *testing.T) {
	h := newHarness(t, Options{MaxVisible: 3})

	var first notify.Notification
	for i := range 5 {
		n := h.store.Show(notify.NewInput(notify.TypeInfo, fmt.Sprint(i)))
		if i == 0 {
			first = n
		}
	}

	assert.Equal(t, []string{"2", "3", "4"}, messages(h.store.List()))
	require.Len(t, h.removed, 2)
	assert.Equal(t, removal{id: first.ID, reason: ReasonEvicted}, h.removed[0])
	requireTimers(t, h.clock, 3)
}

func TestStore_Pause_and_Resume(t *testing.T) {
	tests := []struct {
		name       string
		mode       ResumeMode
		afterPause time.Duration
	}{
		{"remaining continues countdown", ResumeRemaining, 3 * time.Second},
		{"restart uses full duration", ResumeRestart, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, Options{})
			n := h.store.Show(notify.NewInput(notify.TypeInfo, "hover"))

			h.clock.Advance(2 * time.Second)
			require.True(t, h.store.Pause(n.ID))
			assert.False(t, h.store.Pause(n.ID), "already paused")

			got, _ := h.store.Get(n.ID)
			assert.True(t, got.Paused)
			assert.Equal(t, 3*time.Second, got.Remaining)

			h.clock.Advance(time.Hour)
			require.Equal(t, 1, h.store.Len(), "paused toast does not expire")

			require.True(t, h.store.Resume(n.ID, tt.mode))
			h.clock.Advance(tt.afterPause - time.Millisecond)
			assert.Equal(t, 1, h.store.Len())
			h.clock.Advance(time.Millisecond)
			h.waitRemoved(t, 1)
			assert.Equal(t, 0, h.store.Len())
		})
	}
}

func TestStore_Resume_not_paused(t *testing.T) {
	h := newHarness(t, Options{})
	n := h.store.Show(notify.NewInput(notify.TypeInfo, "x"))

	assert.False(t, h.store.Resume(n.ID, ResumeRemaining))
	assert.False(t, h.store.Resume("missing", ResumeRestart))
}

func TestStore_Pause_persistent(t *testing.T) {
	h := newHarness(t, Options{})
	n := h.store.Show(notify.NewInput(notify.TypeInfo, "x", notify.Persistent()))

	require.True(t, h.store.Pause(n.ID))
	require.True(t, h.store.Resume(n.ID, ResumeRemaining))
	requireTimers(t, h.clock, 0)
}

func TestStore_Trigger_runs_action_then_removes(t *testing.T) {
	h := newHarness(t, Options{})

	clicked := 0
	var presentDuringClick bool
	var n notify.Notification
	n = h.store.Show(notify.NewInput(notify.TypeWarning, "undo?", notify.WithAction("Undo", func() {
		clicked++
		_, presentDuringClick = h.store.Get(n.ID)
	})))

	assert.True(t, h.store.Trigger(n.ID))
	assert.Equal(t, 1, clicked)
	assert.True(t, presentDuringClick)
	assert.Equal(t, 0, h.store.Len())
	assert.Equal(t, []removal{{id: n.ID, reason: ReasonAction}}, h.removed)

	assert.False(t, h.store.Trigger(n.ID))
	assert.Equal(t, 1, clicked)
}

func TestStore_Trigger_without_action_dismisses(t *testing.T) {
	h := newHarness(t, Options{})
	n := h.store.Show(notify.NewInput(notify.TypeInfo, "plain"))

	assert.True(t, h.store.Trigger(n.ID))
	assert.Equal(t, 0, h.store.Len())
}

func TestStore_callbacks_may_reenter(t *testing.T) {
	clk := clockwork.NewFakeClock()
	var s *Store
	s = NewStore(Options{
		Clock: clk,
		OnShow: func(n notify.Notification) {
			s.Remove(n.ID)
		},
	})

	s.Show(notify.NewInput(notify.TypeInfo, "gone"))
	assert.Equal(t, 0, s.Len())
}

func TestStore_Clear(t *testing.T) {
	h := newHarness(t, Options{})
	h.store.Show(notify.NewInput(notify.TypeInfo, "a"))
	h.store.Show(notify.NewInput(notify.TypeInfo, "b", notify.Persistent()))

	h.store.Clear()

	assert.Equal(t, 0, h.store.Len())
	requireTimers(t, h.clock, 0)
	require.Len(t, h.removed, 2)
	assert.Equal(t, ReasonCleared, h.removed[1].reason)

	changes := h.changes
	h.store.Clear()
	assert.Equal(t, changes, h.changes, "clearing an empty store is silent")
}

func TestStore_concurrent_show_and_remove(t *testing.T) {
	s := NewStore(Options{Clock: clockwork.NewFakeClock()})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := s.Show(notify.NewInput(notify.TypeInfo, fmt.Sprint(i)))
			s.Remove(n.ID)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, s.Len())
}
