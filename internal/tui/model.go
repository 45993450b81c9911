// Package tui implements the herald demo: an interactive terminal UI that
// drives a notification engine and renders its toasts, confirmations, and
// dialogs.
package tui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/herald/internal/core/config"
	"github.com/colonyops/herald/internal/core/confirm"
	"github.com/colonyops/herald/internal/core/engine"
	"github.com/colonyops/herald/internal/core/global"
	"github.com/colonyops/herald/internal/core/logging"
	"github.com/colonyops/herald/internal/core/notify"
	"github.com/colonyops/herald/internal/core/styles"
	"github.com/colonyops/herald/internal/core/toasts"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures the demo model.
type Options struct {
	Engine *engine.Engine
	// Watcher, when set, hot-reloads placement, logging, and theme.
	Watcher    *config.Watcher
	ResumeMode toasts.ResumeMode
	Now        func() time.Time
}

// confirmResultMsg carries the settled value of a demo confirmation.
type confirmResultMsg struct {
	seq       int
	confirmed bool
}

// configReloadMsg carries a reloaded config or the reason it was rejected.
type configReloadMsg struct {
	cfg *config.Config
	err error
}

// Model is the main Bubble Tea model for the demo.
type Model struct {
	engine     *engine.Engine
	watcher    *config.Watcher
	buffer     *StateBuffer
	keys       keyMap
	help       help.Model
	toastView  *ToastView
	dialogView *DialogView
	resumeMode toasts.ResumeMode

	width  int
	height int

	state        engine.State
	focusedID    string
	modal        Modal
	modalPromise *confirm.Promise
	ticking      bool
	seq          int
	quitting     bool
}

// New creates the demo model and subscribes it to the engine.
func New(opts Options) Model {
	buffer := NewStateBuffer()
	opts.Engine.Subscribe(buffer.Push)

	m := Model{
		engine:     opts.Engine,
		watcher:    opts.Watcher,
		buffer:     buffer,
		keys:       defaultKeyMap(),
		help:       help.New(),
		toastView:  NewToastView(opts.Now),
		dialogView: NewDialogView(),
		resumeMode: opts.ResumeMode,
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.applyState(opts.Engine.State())
	return m
}

// Init starts listening for engine state and config changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.buffer.WaitForSignal()}
	if m.watcher != nil {
		cmds = append(cmds, watchConfig(m.watcher))
	}
	if len(m.state.Notifications) > 0 {
		cmds = append(cmds, scheduleToastTick())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.engine.SetViewportWidth(msg.Width)
		return m, nil

	case engineStateMsg:
		if s, ok := m.buffer.Latest(); ok {
			m.applyState(s)
		}
		cmds := []tea.Cmd{m.buffer.WaitForSignal()}
		if cmd := m.startTicking(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case toastTickMsg:
		if len(m.state.Notifications) == 0 {
			m.ticking = false
			return m, nil
		}
		return m, scheduleToastTick()

	case confirmResultMsg:
		if msg.confirmed {
			m.engine.Notify().Success(fmt.Sprintf("Request #%d confirmed", msg.seq))
		} else {
			m.engine.Notify().Info(fmt.Sprintf("Request #%d cancelled", msg.seq))
		}
		return m, nil

	case configReloadMsg:
		m.applyConfig(msg.cfg, msg.err)
		return m, watchConfig(m.watcher)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// applyState adopts a new engine snapshot and keeps local UI state
// consistent with it.
func (m *Model) applyState(s engine.State) {
	m.state = s

	if m.focusedID != "" && !slices.ContainsFunc(s.Notifications, func(t toasts.Toast) bool {
		return t.ID == m.focusedID
	}) {
		m.focusedID = ""
	}

	switch {
	case s.Confirm == nil:
		m.modal = Modal{}
		m.modalPromise = nil
	case s.Confirm.Promise != m.modalPromise:
		m.modal = NewModal(s.Confirm.Options)
		m.modalPromise = s.Confirm.Promise
	}

	m.dialogView.Prune(s.Dialogs)
}

func (m *Model) startTicking() tea.Cmd {
	if m.ticking || len(m.state.Notifications) == 0 {
		return nil
	}
	m.ticking = true
	return scheduleToastTick()
}

func (m *Model) applyConfig(cfg *config.Config, err error) {
	if err != nil {
		logging.Component("tui").Warn().Err(err).Msg("config reload rejected")
		m.engine.Notify().Error(err.Error(), notify.WithTitle("Config reload failed"), notify.WithDuration(10*time.Second))
		return
	}
	if cfg == nil {
		return
	}

	m.engine.SetPlacement(cfg.ToastPlacement)
	m.engine.SetLogging(cfg.Logging)
	styles.UseTheme(cfg.TUI.Theme)
	m.resumeMode = cfg.TUI.ToastResumeMode()

	m.engine.Notify().Info("Configuration reloaded")
}

func watchConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, err := w.Next(context.Background())
		if cfg == nil && err == nil {
			return nil // watcher closed
		}
		return configReloadMsg{cfg: cfg, err: err}
	}
}

func awaitConfirm(seq int, p *confirm.Promise) tea.Cmd {
	return func() tea.Msg {
		ok, _ := p.Wait(context.Background())
		return confirmResultMsg{seq: seq, confirmed: ok}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && (msg.String() == "ctrl+c" || m.state.Confirm == nil) {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case m.state.Confirm != nil:
		return m.handleConfirmKey(msg)
	case len(m.state.Dialogs) > 0:
		return m.handleDialogKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "y":
		m.engine.ResolveConfirm(true)
	case key.Matches(msg, m.keys.Accept):
		m.engine.ResolveConfirm(m.modal.ConfirmSelected())
	case key.Matches(msg, m.keys.Cancel):
		m.engine.ResolveConfirm(false)
	case key.Matches(msg, m.keys.Toggle):
		m.modal.ToggleSelection()
	}
	return m, nil
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	top, ok := m.engine.TopDialog()
	if !ok {
		return m, nil
	}

	switch {
	case msg.String() == "esc":
		m.engine.EscapeDialog(top.ID)
	case key.Matches(msg, m.keys.OutsideClick):
		m.engine.OutsideClickDialog(top.ID)
	case msg.String() == "enter":
		m.engine.HideDialog(top.ID)
	case key.Matches(msg, m.keys.Dialog):
		m.openDialog()
	case key.Matches(msg, m.keys.Confirm):
		return m.requestConfirm()
	}
	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.engine.Notify()

	switch {
	case key.Matches(msg, m.keys.Success):
		m.seq++
		eng := m.engine
		n.Success(fmt.Sprintf("Saved draft #%d", m.seq),
			notify.WithTitle("Saved"),
			notify.WithAction("Undo", func() { eng.Notify().Info("Draft restored") }),
		)
	case key.Matches(msg, m.keys.Warning):
		m.seq++
		n.Warning(fmt.Sprintf("Disk usage at %d%%", 80+m.seq%20), notify.WithDuration(8*time.Second))
	case key.Matches(msg, m.keys.Error):
		m.seq++
		eng := m.engine
		n.Error("Upload failed: connection reset",
			notify.WithTitle("Error"),
			notify.Persistent(),
			notify.WithAction("Retry", func() { eng.Notify().Success("Upload retried") }),
		)
	case key.Matches(msg, m.keys.Info):
		m.seq++
		n.Info(fmt.Sprintf("Build #%d started", m.seq))
	case key.Matches(msg, m.keys.Global):
		global.Warning("Raised through the global facade")
	case key.Matches(msg, m.keys.Confirm):
		return m.requestConfirm()
	case key.Matches(msg, m.keys.Dialog):
		m.openDialog()
	case key.Matches(msg, m.keys.Focus):
		m.cycleFocus()
	case key.Matches(msg, m.keys.Dismiss):
		if id := m.targetToast(false); id != "" {
			m.engine.RemoveNotification(id)
		}
	case key.Matches(msg, m.keys.Action):
		if id := m.targetToast(true); id != "" {
			m.engine.TriggerAction(id)
		}
	}
	return m, nil
}

func (m Model) requestConfirm() (tea.Model, tea.Cmd) {
	m.seq++
	appearance := notify.AppearancePrimary
	if m.seq%2 == 0 {
		appearance = notify.AppearanceOutline
	}
	p := m.engine.Confirm(notify.ConfirmOptions{
		Title:             fmt.Sprintf("Request #%d", m.seq),
		Message:           "Apply the pending changes?",
		ConfirmText:       "Apply",
		ConfirmAppearance: appearance,
	})
	return m, awaitConfirm(m.seq, p)
}

func (m *Model) openDialog() {
	m.seq++
	seq := m.seq
	eng := m.engine

	opts := notify.DialogOptions{
		Title:   fmt.Sprintf("Dialog #%d", seq),
		Content: dialogMarkdown(seq, len(m.state.Dialogs)),
		Footer:  "enter close  esc escape  o click outside  d open another",
		OnDismiss: func() {
			eng.Notify().Info(fmt.Sprintf("Dialog #%d dismissed", seq))
		},
	}
	switch seq % 3 {
	case 1:
		opts.Size = notify.SizeMedium
	case 2:
		opts.Size = notify.SizeSmall
		opts.ModalType = notify.ModalTypeNonModal
		opts.Backdrop = notify.BackdropTransparent
	default:
		opts.Size = notify.SizeLarge
		opts.ModalType = notify.ModalTypeAlert
		opts.CloseOnOutsideClick = notify.Bool(false)
	}

	m.engine.ShowDialog(opts)
}

func dialogMarkdown(seq, depth int) string {
	return fmt.Sprintf(`## Stacked dialog

This is dialog **#%d**, opened above %d other dialog(s).

- Dismiss callbacks run exactly once
- Escape and outside clicks respect the dialog options
`, seq, depth)
}

// cycleFocus moves focus to the next toast. The newly focused toast is
// paused and the previously focused one resumes.
func (m *Model) cycleFocus() {
	items := m.state.Notifications
	prev := m.focusedID

	next := ""
	idx := slices.IndexFunc(items, func(t toasts.Toast) bool { return t.ID == prev })
	if idx+1 < len(items) {
		next = items[idx+1].ID
	}

	if prev != "" {
		m.engine.ResumeNotification(prev, m.resumeMode)
	}
	if next != "" {
		m.engine.PauseNotification(next)
	}
	m.focusedID = next
}

// targetToast returns the focused toast, or the newest one when nothing is
// focused. With withAction only toasts carrying an action qualify.
func (m Model) targetToast(withAction bool) string {
	items := m.state.Notifications
	for i := len(items) - 1; i >= 0; i-- {
		t := items[i]
		if m.focusedID != "" && t.ID != m.focusedID {
			continue
		}
		if withAction && t.Action == nil {
			continue
		}
		return t.ID
	}
	return ""
}

// View renders the demo.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	width, height := m.width, m.height

	toastContent := m.toastView.View(m.state.Notifications, m.focusedID)
	inline := m.state.Placement.IsInline

	main := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.HeaderStyle.Render("herald"),
		m.renderStatus(),
		"",
		m.help.View(m.keys),
	)
	if inline && toastContent != "" {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, "   ", toastContent)
	}

	out := lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, main)
	out = m.dialogView.Overlay(out, m.state.Dialogs, width, height)
	if m.state.Confirm != nil {
		out = m.modal.Overlay(out, width, height)
	}
	if !inline {
		out = m.toastView.Overlay(out, toastContent, m.state.Placement.Position, width, height)
	}
	return out
}

func (m Model) renderStatus() string {
	label := styles.MutedStyle.Render

	placementDesc := string(m.state.Placement.Position)
	if m.state.Placement.IsInline {
		placementDesc += " (inline)"
	}

	logDesc := "off"
	if m.state.Logging.Enabled {
		logDesc = string(m.state.Logging.Level)
	}

	focus := "none"
	if m.focusedID != "" {
		focus = m.focusedID
	}

	rows := []string{
		label("engine     ") + m.engine.ID(),
		label("toasts     ") + fmt.Sprintf("%d", len(m.state.Notifications)),
		label("dialogs    ") + fmt.Sprintf("%d", len(m.state.Dialogs)),
		label("confirm    ") + confirmStatus(m.state),
		label("placement  ") + placementDesc,
		label("logging    ") + logDesc,
		label("focus      ") + focus,
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func confirmStatus(s engine.State) string {
	if s.Confirm == nil {
		return confirm.StateIdle.String()
	}
	if s.QueuedConfirms > 0 {
		return fmt.Sprintf("%s (+%d queued)", confirm.StatePending, s.QueuedConfirms)
	}
	return confirm.StatePending.String()
}
