package engine

import (
	"github.com/colonyops/herald/internal/core/notify"
)

// Notifier exposes typed toast helpers bound to an engine.
type Notifier struct {
	e *Engine
}

func (n Notifier) show(t notify.Type, message string, opts []notify.Option) string {
	return n.e.ShowNotification(notify.NewInput(t, message, opts...))
}

// Success shows a success toast and returns its id.
func (n Notifier) Success(message string, opts ...notify.Option) string {
	return n.show(notify.TypeSuccess, message, opts)
}

// Warning shows a warning toast and returns its id.
func (n Notifier) Warning(message string, opts ...notify.Option) string {
	return n.show(notify.TypeWarning, message, opts)
}

// Error shows an error toast and returns its id.
func (n Notifier) Error(message string, opts ...notify.Option) string {
	return n.show(notify.TypeError, message, opts)
}

// Info shows an info toast and returns its id.
func (n Notifier) Info(message string, opts ...notify.Option) string {
	return n.show(notify.TypeInfo, message, opts)
}

// DialogHandle opens and closes dialogs on an engine.
type DialogHandle struct {
	e *Engine
}

// Show opens a dialog and returns its id.
func (d DialogHandle) Show(opts notify.DialogOptions) string {
	return d.e.ShowDialog(opts)
}

// Hide closes the dialog with the given id.
func (d DialogHandle) Hide(id string) {
	d.e.HideDialog(id)
}
