// Package notify defines the notification, confirmation, and dialog types
// shared by the engine and its rendering collaborators.
package notify

import (
	"time"
)

// Type represents the kind of a toast notification.
type Type string

const (
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
)

// Types lists every notification type in display order.
var Types = []Type{TypeSuccess, TypeWarning, TypeError, TypeInfo}

// IsValid reports whether t is one of the known notification types.
func (t Type) IsValid() bool {
	switch t {
	case TypeSuccess, TypeWarning, TypeError, TypeInfo:
		return true
	}
	return false
}

// DefaultDuration is the auto-dismiss duration used when neither the caller
// nor the engine configuration specifies one.
const DefaultDuration = 5 * time.Second

// Action is an optional button rendered on a toast.
type Action struct {
	Label   string
	OnClick func()
}

// Notification represents a single live toast.
type Notification struct {
	ID        string
	Type      Type
	Message   string
	Title     string
	Duration  time.Duration // 0 = persists until dismissed
	Action    *Action
	CreatedAt time.Time
}

// Persistent reports whether the notification is never auto-dismissed.
func (n Notification) Persistent() bool {
	return n.Duration <= 0
}

// Input holds the caller-provided fields of a notification. The id is
// always assigned by the engine.
type Input struct {
	Type    Type
	Message string
	Title   string
	// Duration overrides the engine default when non-nil. A pointer to
	// zero makes the notification persistent.
	Duration *time.Duration
	Action   *Action
}

// Option configures an Input for the typed convenience helpers.
type Option func(*Input)

// WithTitle sets the notification title.
func WithTitle(title string) Option {
	return func(in *Input) {
		in.Title = title
	}
}

// WithDuration sets an explicit auto-dismiss duration.
func WithDuration(d time.Duration) Option {
	return func(in *Input) {
		in.Duration = &d
	}
}

// Persistent disables auto-dismiss for the notification.
func Persistent() Option {
	return WithDuration(0)
}

// WithAction attaches an action button.
func WithAction(label string, onClick func()) Option {
	return func(in *Input) {
		in.Action = &Action{Label: label, OnClick: onClick}
	}
}

// NewInput builds an Input of the given type from options.
func NewInput(t Type, message string, opts ...Option) Input {
	in := Input{Type: t, Message: message}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}
