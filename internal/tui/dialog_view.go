package tui

import (
	"strings"
	"sync"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/herald/internal/core/dialog"
	"github.com/colonyops/herald/internal/core/notify"
	"github.com/colonyops/herald/internal/core/styles"
)

const dialogFramePadding = 6 // border + horizontal padding

// DialogView renders the dialog stack. Markdown content is rendered through
// glamour and cached per dialog and width.
type DialogView struct {
	mu    sync.Mutex
	cache map[dialogCacheKey]string
}

type dialogCacheKey struct {
	id    string
	width int
}

func NewDialogView() *DialogView {
	return &DialogView{cache: map[dialogCacheKey]string{}}
}

// Overlay stacks every open dialog over background, newest on top. Each
// dialog is offset slightly from the one beneath it.
func (v *DialogView) Overlay(background string, entries []dialog.Entry, width, height int) string {
	if len(entries) == 0 {
		return background
	}

	base := background
	if needsBackdrop(entries) {
		base = backdrop(width, height)
	}

	layers := []*lipgloss.Layer{lipgloss.NewLayer(base)}
	for i, e := range entries {
		box := v.render(e, dialogWidth(e.Options.SizeOrDefault(), width))
		x := max((width-lipgloss.Width(box))/2+2*i, 0)
		y := max((height-lipgloss.Height(box))/2+i, 0)
		layers = append(layers, lipgloss.NewLayer(box).X(x).Y(y).Z(i+1))
	}

	return lipgloss.NewCompositor(layers...).Render()
}

// Prune drops cached renders for dialogs that are no longer open.
func (v *DialogView) Prune(entries []dialog.Entry) {
	open := make(map[string]bool, len(entries))
	for _, e := range entries {
		open[e.ID] = true
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for k := range v.cache {
		if !open[k.id] {
			delete(v.cache, k)
		}
	}
}

func (v *DialogView) render(e dialog.Entry, width int) string {
	opts := e.Options
	inner := max(width-dialogFramePadding, 10)

	parts := []string{}
	if opts.Title != "" {
		parts = append(parts, styles.ModalTitleStyle.Render(opts.Title), "")
	}
	if opts.Content != "" {
		parts = append(parts, v.markdown(e.ID, opts.Content, inner))
	}
	if opts.Footer != "" {
		parts = append(parts, styles.DialogFooterStyle.Render(opts.Footer))
	}
	parts = append(parts, styles.ModalHelpStyle.Render(dialogHelp(opts)))

	style := styles.ModalStyle.Width(width)
	if opts.ModalTypeOrDefault() == notify.ModalTypeAlert {
		style = style.BorderForeground(styles.ColorWarning)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (v *DialogView) markdown(id, content string, width int) string {
	k := dialogCacheKey{id: id, width: width}

	v.mu.Lock()
	cached, ok := v.cache[k]
	v.mu.Unlock()
	if ok {
		return cached
	}

	rendered := renderMarkdown(content, width)

	v.mu.Lock()
	v.cache[k] = rendered
	v.mu.Unlock()
	return rendered
}

func renderMarkdown(content string, width int) string {
	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return content
	}

	return strings.Trim(rendered, "\n")
}

func dialogWidth(size notify.Size, screen int) int {
	var w int
	switch size {
	case notify.SizeSmall:
		w = 40
	case notify.SizeLarge:
		w = 90
	case notify.SizeFullscreen:
		w = screen - 4
	default:
		w = 64
	}
	return max(min(w, screen-4), 20)
}

func dialogHelp(opts notify.DialogOptions) string {
	hints := []string{"enter close"}
	if opts.EscapeCloses() {
		hints = append(hints, "esc close")
	}
	if opts.OutsideClickCloses() {
		hints = append(hints, "o click outside")
	}
	hints = append(hints, "d open another")
	return strings.Join(hints, "  ")
}

func needsBackdrop(entries []dialog.Entry) bool {
	for _, e := range entries {
		if e.Options.ModalTypeOrDefault() != notify.ModalTypeNonModal &&
			e.Options.BackdropOrDefault() == notify.BackdropOpaque {
			return true
		}
	}
	return false
}

// backdrop fills the screen with a dim shade for opaque modal dialogs.
func backdrop(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := styles.BackdropStyle.Render(strings.Repeat("░", width))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
