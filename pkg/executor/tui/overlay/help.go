package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/rubrica/pkg/executor/tui/types"
)

// HelpOverlay lists the key bindings in a modal dialog.
type HelpOverlay struct {
	*BaseOverlay
	title string
}

// NewHelpOverlay creates a help overlay for the given bindings.
func NewHelpOverlay(title string, bindings []key.Binding) *HelpOverlay {
	const (
		viewportWidth  = 56
		viewportHeight = 16
		overlayWidth   = 60
		overlayHeight  = 22
	)

	overlay := &HelpOverlay{title: title}

	overlay.BaseOverlay = NewBaseOverlay(BaseOverlayConfig{
		Width:          overlayWidth,
		Height:         overlayHeight,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		Content:        FormatBindings(bindings),
		RenderHeader:   overlay.renderHeader,
		RenderFooter:   overlay.renderFooter,
	})
	return overlay
}

// FormatBindings renders one "keys  description" line per enabled binding.
func FormatBindings(bindings []key.Binding) string {
	width := 0
	for _, b := range bindings {
		if b.Enabled() {
			width = max(width, len(b.Help().Key))
		}
	}

	var sb strings.Builder
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		fmt.Fprintf(&sb, "%-*s  %s\n", width, b.Help().Key, b.Help().Desc)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Update handles messages for the help overlay. Enter closes it as well as
// the usual close keys.
func (h *HelpOverlay) Update(msg tea.Msg, _ types.StateProvider, actions types.ActionHandler) (types.Overlay, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == keyEnter {
		return nil, nil
	}

	_, closed, cmd := h.BaseOverlay.Update(msg, actions)
	if closed {
		return nil, cmd
	}
	return h, cmd
}

func (h *HelpOverlay) renderHeader() string {
	return types.OverlayTitleStyle.Render(h.title) + "\n"
}

func (h *HelpOverlay) renderFooter() string {
	return "\n" + types.OverlayHelpStyle.Render("Press ESC or Enter to close")
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	return h.BaseOverlay.View(h.Width())
}
