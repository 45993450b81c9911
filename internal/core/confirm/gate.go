package confirm

import (
	"sync"

	"github.com/colonyops/herald/internal/core/notify"
)

// State is the gate's lifecycle state.
type State int

const (
	StateIdle State = iota
	StatePending
)

func (s State) String() string {
	if s == StatePending {
		return "pending"
	}
	return "idle"
}

// Request is a confirmation waiting on the user.
type Request struct {
	Options notify.ConfirmOptions
	Promise *Promise
}

// Gate holds at most one active confirmation. Requests arriving while one
// is pending wait in FIFO order and are promoted as the head settles.
type Gate struct {
	mu       sync.Mutex
	current  *Request
	queue    []*Request
	onChange func()
}

// NewGate returns an idle gate. onChange, when non-nil, runs after every
// transition without the lock held.
func NewGate(onChange func()) *Gate {
	return &Gate{onChange: onChange}
}

// Request registers a confirmation and returns the promise its caller
// awaits.
func (g *Gate) Request(opts notify.ConfirmOptions) *Promise {
	req := &Request{Options: opts, Promise: NewPromise()}

	g.mu.Lock()
	if g.current == nil {
		g.current = req
	} else {
		g.queue = append(g.queue, req)
	}
	g.mu.Unlock()

	g.changed()
	return req.Promise
}

// Resolve settles the active request with result and promotes the next
// queued one. It returns false when the gate is idle.
func (g *Gate) Resolve(result bool) bool {
	g.mu.Lock()
	head := g.current
	if head == nil {
		g.mu.Unlock()
		return false
	}
	g.current = nil
	if len(g.queue) > 0 {
		g.current = g.queue[0]
		g.queue[0] = nil
		g.queue = g.queue[1:]
	}
	g.mu.Unlock()

	head.Promise.settle(result)
	g.changed()
	return true
}

// Current returns the active request.
func (g *Gate) Current() (Request, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return Request{}, false
	}
	return *g.current, true
}

// State reports whether a request is active.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return StateIdle
	}
	return StatePending
}

// Queued returns the number of requests waiting behind the active one.
func (g *Gate) Queued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.queue)
}

// Close settles the active and every queued request with false and leaves
// the gate idle.
func (g *Gate) Close() {
	g.mu.Lock()
	var pending []*Request
	if g.current != nil {
		pending = append(pending, g.current)
	}
	pending = append(pending, g.queue...)
	g.current = nil
	g.queue = nil
	g.mu.Unlock()

	if len(pending) == 0 {
		return
	}
	for _, req := range pending {
		req.Promise.settle(false)
	}
	g.changed()
}

func (g *Gate) changed() {
	if g.onChange != nil {
		g.onChange()
	}
}
