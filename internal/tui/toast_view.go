package tui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/herald/internal/core/notify"
	"github.com/colonyops/herald/internal/core/placement"
	"github.com/colonyops/herald/internal/core/styles"
	"github.com/colonyops/herald/internal/core/toasts"
)

const (
	toastTickInterval = 250 * time.Millisecond
	toastWidth        = 44
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the live toasts as a vertical stack.
type ToastView struct {
	now   func() time.Time
	width int
}

func NewToastView(now func() time.Time) *ToastView {
	if now == nil {
		now = time.Now
	}
	return &ToastView{now: now, width: toastWidth}
}

// View renders the toasts in arrival order. The focused toast gets a thick
// border.
func (v *ToastView) View(items []toasts.Toast, focusedID string) string {
	if len(items) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(items))
	for _, t := range items {
		rendered = append(rendered, v.renderToast(t, t.ID == focusedID))
	}
	return strings.Join(rendered, "\n")
}

func (v *ToastView) renderToast(t toasts.Toast, focused bool) string {
	icon, c := typeIcon(t.Type), typeColor(t.Type)

	header := lipgloss.NewStyle().Foreground(c).Render(icon)
	if t.Title != "" {
		header += " " + styles.ToastTitleStyle.Render(t.Title)
	} else {
		header += " " + styles.ToastMessageStyle.Render(t.Message)
	}

	lines := []string{header}
	if t.Title != "" {
		lines = append(lines, styles.ToastMessageStyle.Render(t.Message))
	}

	meta := styles.ToastMetaStyle.Render(v.countdown(t))
	if t.Action != nil && t.Action.Label != "" {
		meta = styles.ToastActionStyle.Render("[a] "+t.Action.Label) + "  " + meta
	}
	lines = append(lines, meta)

	style := styles.ToastStyle.BorderForeground(c).Width(v.width)
	if focused {
		style = style.Border(lipgloss.ThickBorder())
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *ToastView) countdown(t toasts.Toast) string {
	switch {
	case t.Paused:
		return styles.IconPaused + " paused"
	case t.Persistent():
		return "persistent"
	}
	left := max(t.Deadline.Sub(v.now()), 0)
	return fmt.Sprintf("%ds", int((left+time.Second-1)/time.Second))
}

// Overlay composites content over background at the given position.
func (v *ToastView) Overlay(background, content string, pos placement.Position, width, height int) string {
	if content == "" {
		return background
	}

	x, y := anchor(pos, lipgloss.Width(content), lipgloss.Height(content), width, height)

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(content).X(x).Y(y).Z(3)
	return lipgloss.NewCompositor(bgLayer, toastLayer).Render()
}

// anchor returns the top-left corner for a w×h block placed at pos inside
// a width×height area, keeping a one-cell margin from the edges.
func anchor(pos placement.Position, w, h, width, height int) (int, int) {
	var x, y int

	switch pos {
	case placement.TopLeft, placement.BottomLeft:
		x = 1
	case placement.TopCenter, placement.BottomCenter:
		x = (width - w) / 2
	default:
		x = width - w - 1
	}

	if pos.IsTop() {
		y = 1
	} else {
		y = height - h - 1
	}

	return max(x, 0), max(y, 0)
}

func typeIcon(t notify.Type) string {
	switch t {
	case notify.TypeSuccess:
		return styles.IconSuccess
	case notify.TypeWarning:
		return styles.IconWarning
	case notify.TypeError:
		return styles.IconError
	default:
		return styles.IconInfo
	}
}

func typeColor(t notify.Type) color.Color {
	switch t {
	case notify.TypeSuccess:
		return styles.ColorSuccess
	case notify.TypeWarning:
		return styles.ColorWarning
	case notify.TypeError:
		return styles.ColorError
	default:
		return styles.ColorInfo
	}
}
