package notifylog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/herald/internal/core/notify"
)

func TestShouldLog(t *testing.T) {
	tests := []struct {
		level Level
		pass  []notify.Type
		block []notify.Type
	}{
		{
			level: LevelError,
			pass:  []notify.Type{notify.TypeError},
			block: []notify.Type{notify.TypeWarning, notify.TypeInfo, notify.TypeSuccess},
		},
		{
			level: LevelWarning,
			pass:  []notify.Type{notify.TypeError, notify.TypeWarning},
			block: []notify.Type{notify.TypeInfo, notify.TypeSuccess},
		},
		{
			level: LevelInfo,
			pass:  []notify.Type{notify.TypeError, notify.TypeWarning, notify.TypeInfo},
			block: []notify.Type{notify.TypeSuccess},
		},
		{
			level: LevelAll,
			pass:  notify.Types,
		},
		{
			level: "",
			block: notify.Types,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			for _, typ := range tt.pass {
				assert.True(t, ShouldLog(tt.level, typ), "%s should pass %s", tt.level, typ)
			}
			for _, typ := range tt.block {
				assert.False(t, ShouldLog(tt.level, typ), "%s should block %s", tt.level, typ)
			}
		})
	}
}

type outcome struct {
	sink string
	err  error
}

type recorder struct {
	mu       sync.Mutex
	outcomes []outcome
}

func (r *recorder) observe(sink string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome{sink: sink, err: err})
}

func (r *recorder) bySink(sink string) []outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []outcome
	for _, o := range r.outcomes {
		if o.sink == sink {
			out = append(out, o)
		}
	}
	return out
}

func newTestDispatcher(t *testing.T, rec *recorder, buf *bytes.Buffer) *Dispatcher {
	t.Helper()
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	return NewDispatcher(
		WithLogger(zerolog.New(buf)),
		WithNow(func() time.Time { return fixed }),
		WithObserver(rec.observe),
		WithRetryWait(time.Millisecond, time.Millisecond),
	)
}

func sample(typ notify.Type) notify.Notification {
	return notify.Notification{ID: "notification-1-abc", Type: typ, Message: "disk full", Title: "Storage"}
}

func TestDispatch_disabled_is_noop(t *testing.T) {
	rec := &recorder{}
	var buf bytes.Buffer
	d := newTestDispatcher(t, rec, &buf)

	called := false
	d.Dispatch(context.Background(), sample(notify.TypeError), Config{
		Enabled: false,
		Level:   LevelAll,
		OnLog:   func(context.Context, notify.Notification) error { called = true; return nil },
	})
	d.Wait()

	assert.False(t, called)
	assert.Empty(t, rec.outcomes)
}

func TestDispatch_level_gate_blocks(t *testing.T) {
	rec := &recorder{}
	var buf bytes.Buffer
	d := newTestDispatcher(t, rec, &buf)

	var calls atomic.Int32
	cfg := Config{
		Enabled: true,
		Level:   LevelWarning,
		OnLog:   func(context.Context, notify.Notification) error { calls.Add(1); return nil },
	}

	d.Dispatch(context.Background(), sample(notify.TypeSuccess), cfg)
	d.Dispatch(context.Background(), sample(notify.TypeInfo), cfg)
	d.Dispatch(context.Background(), sample(notify.TypeWarning), cfg)
	d.Dispatch(context.Background(), sample(notify.TypeError), cfg)
	d.Wait()

	assert.Equal(t, int32(2), calls.Load())
}

func TestDispatch_posts_record_to_endpoint(t *testing.T) {
	var (
		mu       sync.Mutex
		received []Record
		ctype    string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rec Record
		_ = json.NewDecoder(r.Body).Decode(&rec)
		mu.Lock()
		received = append(received, rec)
		ctype = r.Header.Get("Content-Type")
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	rec := &recorder{}
	var buf bytes.Buffer
	d := newTestDispatcher(t, rec, &buf)

	d.Dispatch(context.Background(), sample(notify.TypeError), Config{Enabled: true, Level: LevelError, Endpoint: srv.URL})
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, "application/json", ctype)
	assert.Equal(t, Record{
		Type:      notify.TypeError,
		Message:   "disk full",
		Title:     "Storage",
		Timestamp: "2025-03-04T05:06:07Z",
	}, received[0])

	outcomes := rec.bySink(SinkEndpoint)
	require.Len(t, outcomes, 1)
	assert.NoError(t, outcomes[0].err)
}

func TestDispatch_sinks_are_isolated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	tests := []struct {
		name  string
		onLog func(context.Context, notify.Notification) error
	}{
		{
			name:  "callback returns error",
			onLog: func(context.Context, notify.Notification) error { return errors.New("boom") },
		},
		{
			name:  "callback panics",
			onLog: func(context.Context, notify.Notification) error { panic("kaboom") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			var buf bytes.Buffer
			d := newTestDispatcher(t, rec, &buf)

			assert.NotPanics(t, func() {
				d.Dispatch(context.Background(), sample(notify.TypeError), Config{
					Enabled:  true,
					Level:    LevelAll,
					Endpoint: srv.URL,
					OnLog:    tt.onLog,
				})
				d.Wait()
			})

			cb := rec.bySink(SinkCallback)
			require.Len(t, cb, 1)
			assert.Error(t, cb[0].err)

			ep := rec.bySink(SinkEndpoint)
			require.Len(t, ep, 1)
			assert.ErrorIs(t, ep[0].err, ErrDeliveryFailed)

			assert.Contains(t, buf.String(), "notification log sink failed")
		})
	}
}

func TestDispatch_unreachable_endpoint_reported(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rec := &recorder{}
	var buf bytes.Buffer
	d := newTestDispatcher(t, rec, &buf)

	var called atomic.Bool
	d.Dispatch(context.Background(), sample(notify.TypeWarning), Config{
		Enabled:  true,
		Level:    LevelWarning,
		Endpoint: url,
		OnLog:    func(context.Context, notify.Notification) error { called.Store(true); return nil },
	})
	d.Wait()

	assert.True(t, called.Load(), "callback runs even though the endpoint fails")
	ep := rec.bySink(SinkEndpoint)
	require.Len(t, ep, 1)
	assert.ErrorIs(t, ep[0].err, ErrDeliveryFailed)
}

func TestDispatch_retries_server_errors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec := &recorder{}
	var buf bytes.Buffer
	d := newTestDispatcher(t, rec, &buf)

	d.Dispatch(context.Background(), sample(notify.TypeError), Config{
		Enabled:  true,
		Level:    LevelError,
		Endpoint: srv.URL,
		Retries:  2,
	})
	d.Wait()

	assert.Equal(t, int32(2), hits.Load())
	ep := rec.bySink(SinkEndpoint)
	require.Len(t, ep, 1)
	assert.NoError(t, ep[0].err)
}
