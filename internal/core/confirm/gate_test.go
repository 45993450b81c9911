package confirm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/herald/internal/core/notify"
)

func TestPromise(t *testing.T) {
	p := NewPromise()

	_, ok := p.Result()
	assert.False(t, ok)

	assert.True(t, p.settle(true))
	assert.False(t, p.settle(false), "second settle is ignored")

	v, ok := p.Result()
	assert.True(t, ok)
	assert.True(t, v)

	got, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, got)
}

func TestPromise_Wait_honours_context(t *testing.T) {
	p := NewPromise()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, ok := p.Result()
	assert.False(t, ok, "a cancelled wait leaves the promise pending")
}

func TestResolved(t *testing.T) {
	v, ok := Resolved(false).Result()
	assert.True(t, ok)
	assert.False(t, v)

	select {
	case <-Resolved(true).Done():
	default:
		t.Fatal("resolved promise should be done")
	}
}

func TestGate_affirmative_and_dismissal_paths(t *testing.T) {
	tests := []struct {
		name   string
		result bool
	}{
		{"confirm", true},
		{"cancel", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate(nil)
			p := g.Request(notify.ConfirmOptions{Message: "Delete?"})

			assert.Equal(t, StatePending, g.State())
			req, ok := g.Current()
			require.True(t, ok)
			assert.Equal(t, "Delete?", req.Options.Message)

			require.True(t, g.Resolve(tt.result))
			got, err := p.Wait(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.result, got)
			assert.Equal(t, StateIdle, g.State())
		})
	}
}

func TestGate_Resolve_idle(t *testing.T) {
	g := NewGate(nil)
	assert.False(t, g.Resolve(true))
	_, ok := g.Current()
	assert.False(t, ok)
}

func TestGate_queues_fifo(t *testing.T) {
	g := NewGate(nil)
	first := g.Request(notify.ConfirmOptions{Message: "one"})
	second := g.Request(notify.ConfirmOptions{Message: "two"})
	third := g.Request(notify.ConfirmOptions{Message: "three"})

	assert.Equal(t, 2, g.Queued())

	require.True(t, g.Resolve(true))
	req, _ := g.Current()
	assert.Equal(t, "two", req.Options.Message)
	assert.Equal(t, 1, g.Queued())

	_, ok := second.Result()
	assert.False(t, ok, "queued request is not settled by the head")

	require.True(t, g.Resolve(false))
	require.True(t, g.Resolve(true))
	assert.Equal(t, StateIdle, g.State())

	for p, want := range map[*Promise]bool{first: true, second: false, third: true} {
		v, ok := p.Result()
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
}

func TestGate_Close_settles_everything_false(t *testing.T) {
	changes := 0
	g := NewGate(func() { changes++ })
	a := g.Request(notify.ConfirmOptions{})
	b := g.Request(notify.ConfirmOptions{})

	g.Close()

	for _, p := range []*Promise{a, b} {
		v, ok := p.Result()
		require.True(t, ok)
		assert.False(t, v)
	}
	assert.Equal(t, StateIdle, g.State())
	assert.Equal(t, 0, g.Queued())
	assert.Equal(t, 3, changes)

	g.Close()
	assert.Equal(t, 3, changes, "closing an idle gate is silent")
}

func TestGate_concurrent_waiters(t *testing.T) {
	g := NewGate(nil)

	const n = 10
	results := make(chan bool, n)
	var wg sync.WaitGroup
	for range n {
		p := g.Request(notify.ConfirmOptions{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _ := p.Wait(context.Background())
			results <- v
		}()
	}

	for g.Resolve(true) {
	}
	wg.Wait()
	close(results)

	count := 0
	for v := range results {
		assert.True(t, v)
		count++
	}
	assert.Equal(t, n, count)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "pending", StatePending.String())
}
