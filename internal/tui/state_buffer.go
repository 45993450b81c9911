package tui

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/herald/internal/core/engine"
)

// engineStateMsg tells the model a newer engine snapshot is ready.
type engineStateMsg struct{}

// StateBuffer keeps the latest engine snapshot and emits coalesced
// signals so bursts of engine changes cost one render.
type StateBuffer struct {
	mu     sync.Mutex
	latest engine.State
	have   bool
	signal chan struct{}
}

// NewStateBuffer constructs a buffer for async engine state delivery.
func NewStateBuffer() *StateBuffer {
	return &StateBuffer{signal: make(chan struct{}, 1)}
}

// Push records s if it is newer than the held snapshot and emits a
// non-blocking signal. It is safe to pass as an engine subscriber.
func (b *StateBuffer) Push(s engine.State) {
	b.mu.Lock()
	if b.have && s.Version <= b.latest.Version {
		b.mu.Unlock()
		return
	}
	b.latest = s
	b.have = true
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Latest returns the newest snapshot pushed so far.
func (b *StateBuffer) Latest() (engine.State, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest, b.have
}

// WaitForSignal blocks until a new snapshot is ready.
func (b *StateBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return engineStateMsg{}
	}
}
