// Package confirm implements the single-slot confirmation gate and the
// promise handed to callers awaiting a user decision.
package confirm

import (
	"context"
	"sync"
)

// Promise is a one-shot boolean result. It settles exactly once; later
// attempts to settle it are ignored.
type Promise struct {
	once   sync.Once
	done   chan struct{}
	result bool
}

// NewPromise returns an unsettled promise.
func NewPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

// Resolved returns a promise already settled with v.
func Resolved(v bool) *Promise {
	p := NewPromise()
	p.settle(v)
	return p
}

// settle fulfils the promise and reports whether this call won.
func (p *Promise) settle(v bool) bool {
	won := false
	p.once.Do(func() {
		p.result = v
		won = true
		close(p.done)
	})
	return won
}

// Done is closed once the promise settles.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Result returns the settled value. ok is false while still pending.
func (p *Promise) Result() (value bool, ok bool) {
	select {
	case <-p.done:
		return p.result, true
	default:
		return false, false
	}
}

// Wait blocks until the promise settles or ctx is done. A cancelled wait
// does not settle the promise; the gate still owns the request.
func (p *Promise) Wait(ctx context.Context) (bool, error) {
	select {
	case <-p.done:
		return p.result, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
