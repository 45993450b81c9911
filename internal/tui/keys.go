package tui

import (
	"charm.land/bubbles/v2/key"
)

// keyMap holds the demo keybindings. Confirm and dialog keys only apply
// while a confirmation or dialog is on screen.
type keyMap struct {
	Success key.Binding
	Warning key.Binding
	Error   key.Binding
	Info    key.Binding
	Confirm key.Binding
	Dialog  key.Binding
	Global  key.Binding

	Focus   key.Binding
	Dismiss key.Binding
	Action  key.Binding

	Accept       key.Binding
	Cancel       key.Binding
	Toggle       key.Binding
	OutsideClick key.Binding

	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Success: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "success")),
		Warning: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "warning")),
		Error:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "error")),
		Info:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "info")),
		Confirm: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "confirm")),
		Dialog:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dialog")),
		Global:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "global")),

		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus toast")),
		Dismiss: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		Action:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "action")),

		Accept:       key.NewBinding(key.WithKeys("enter", "y"), key.WithHelp("enter/y", "accept")),
		Cancel:       key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("esc/n", "cancel")),
		Toggle:       key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←/→", "select")),
		OutsideClick: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "click outside")),

		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Success, k.Warning, k.Error, k.Info, k.Confirm, k.Dialog, k.Focus, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Success, k.Warning, k.Error, k.Info, k.Global},
		{k.Confirm, k.Dialog, k.Accept, k.Cancel, k.Toggle, k.OutsideClick},
		{k.Focus, k.Dismiss, k.Action, k.Quit},
	}
}
