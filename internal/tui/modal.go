package tui

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/herald/internal/core/notify"
	"github.com/colonyops/herald/internal/core/styles"
)

// Modal renders the active confirmation request.
type Modal struct {
	opts            notify.ConfirmOptions
	visible         bool
	confirmSelected bool // true = confirm button selected, false = cancel button selected
}

// NewModal creates a visible modal for opts with the confirm button
// selected.
func NewModal(opts notify.ConfirmOptions) Modal {
	return Modal{
		opts:            opts,
		visible:         true,
		confirmSelected: true,
	}
}

// ToggleSelection switches the selected button.
func (m *Modal) ToggleSelection() {
	m.confirmSelected = !m.confirmSelected
}

// ConfirmSelected returns true if the confirm button is selected.
func (m Modal) ConfirmSelected() bool {
	return m.confirmSelected
}

// Visible returns whether the modal should be displayed.
func (m Modal) Visible() bool {
	return m.visible
}

// View renders the modal box without positioning it.
func (m Modal) View() string {
	confirmBtn := buttonStyle(m.opts.ConfirmAppearanceOrDefault(), m.confirmSelected).
		Render(m.opts.ConfirmTextOrDefault())
	cancelBtn := buttonStyle(m.opts.CancelAppearanceOrDefault(), !m.confirmSelected).
		Render(m.opts.CancelTextOrDefault())

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, cancelBtn, "  ", confirmBtn)
	buttonRow := lipgloss.NewStyle().MarginTop(1).Render(buttons)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.opts.TitleOrDefault()),
		"",
		m.opts.Message,
		buttonRow,
		styles.ModalHelpStyle.Render("←/→ select  enter confirm  y yes  esc/n cancel"),
	)

	return styles.ModalStyle.Render(content)
}

// Overlay centers the modal over background.
func (m Modal) Overlay(background string, width, height int) string {
	if !m.visible {
		return background
	}

	modal := m.View()
	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal).X(x).Y(y).Z(2)
	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

// buttonStyle maps a button appearance to a style. The selected button is
// always highlighted so keyboard focus stays visible.
func buttonStyle(a notify.Appearance, selected bool) lipgloss.Style {
	if selected {
		return styles.ModalButtonSelectedStyle
	}

	switch a {
	case notify.AppearancePrimary:
		return styles.ModalButtonStyle.Foreground(styles.ColorPrimary)
	case notify.AppearanceOutline:
		return styles.ModalButtonStyle.
			UnsetBackground().
			Border(lipgloss.NormalBorder(), false, true).
			BorderForeground(styles.ColorMuted)
	case notify.AppearanceSubtle:
		return styles.ModalButtonStyle.Foreground(styles.ColorMuted)
	case notify.AppearanceTransparent:
		return styles.ModalButtonStyle.UnsetBackground()
	default:
		return styles.ModalButtonStyle
	}
}
