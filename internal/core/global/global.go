package global

import (
	"github.com/colonyops/herald/internal/core/confirm"
	"github.com/colonyops/herald/internal/core/notify"
)

// Register makes e the current engine of the Default registry.
func Register(e Engine) {
	Default.Register(e)
}

// Unregister clears the Default registry.
func Unregister() {
	Default.Unregister()
}

// Release clears the Default registry if e is still current.
func Release(e Engine) bool {
	return Default.Release(e)
}

// Current returns the engine in the Default registry, or nil.
func Current() Engine {
	return Default.Current()
}

// RemoveNotification dismisses a toast on the current engine.
func RemoveNotification(id string) {
	Default.RemoveNotification(id)
}

// HideDialog closes a dialog on the current engine.
func HideDialog(id string) {
	Default.HideDialog(id)
}

// ShowNotification shows a toast on the current engine. It returns "" when
// no engine is registered.
func ShowNotification(in notify.Input) string {
	return Default.ShowNotification(in)
}

// Confirm asks the current engine for a confirmation. With no engine the
// promise is already resolved to false.
func Confirm(opts notify.ConfirmOptions) *confirm.Promise {
	return Default.Confirm(opts)
}

// ShowDialog opens a dialog on the current engine.
func ShowDialog(opts notify.DialogOptions) string {
	return Default.ShowDialog(opts)
}

// Success shows a success toast on the current engine.
func Success(message string, opts ...notify.Option) string {
	return Default.Success(message, opts...)
}

// Warning shows a warning toast on the current engine.
func Warning(message string, opts ...notify.Option) string {
	return Default.Warning(message, opts...)
}

// Error shows an error toast on the current engine.
func Error(message string, opts ...notify.Option) string {
	return Default.Error(message, opts...)
}

// Info shows an info toast on the current engine.
func Info(message string, opts ...notify.Option) string {
	return Default.Info(message, opts...)
}
