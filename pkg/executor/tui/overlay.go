package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/rubrica/pkg/executor/tui/types"
)

// overlayState tracks the active overlay
type overlayState struct {
	mode    types.OverlayMode
	overlay types.Overlay
}

func newOverlayState() *overlayState {
	return &overlayState{mode: types.OverlayModeNone}
}

// activate replaces whatever overlay is showing
func (o *overlayState) activate(mode types.OverlayMode, overlay types.Overlay) {
	o.mode = mode
	o.overlay = overlay
}

// deactivate closes the current overlay
func (o *overlayState) deactivate() {
	o.mode = types.OverlayModeNone
	o.overlay = nil
}

// isActive returns whether any overlay is currently active
func (o *overlayState) isActive() bool {
	if o.mode == types.OverlayModeNone {
		return false
	}
	// A mode without an overlay is inconsistent; reset it rather than panic later.
	if o.overlay == nil {
		o.mode = types.OverlayModeNone
		return false
	}
	return true
}

// toastNotification is a transient message drawn near the bottom of the screen.
type toastNotification struct {
	active    bool
	message   string
	details   string
	icon      string
	isError   bool
	showUntil time.Time
	scheduled bool
}

func (t *toastNotification) visible(now time.Time) bool {
	return t.active && now.Before(t.showUntil)
}

// renderOverlay renders an overlay centered on a clean background
func renderOverlay(baseView string, overlay types.Overlay, width, height int) string {
	if overlay == nil {
		return baseView
	}

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay.View(),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}

// renderToast draws the toast box, or "" when nothing should show.
func renderToast(t *toastNotification, width int, now time.Time) string {
	if !t.visible(now) {
		return ""
	}

	boxWidth := max(width-4, 40)

	var content strings.Builder
	fmt.Fprintf(&content, "%s %s", t.icon, t.message)
	if t.details != "" {
		content.WriteString("\n")
		content.WriteString(t.details)
	}

	borderColor := types.SalmonPink
	if t.isError {
		borderColor = types.ErrorRed
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(boxWidth).
		Render(content.String())
}

// renderToastOverlay splices the toast over the base view just above the
// status bar, leaving the layout underneath untouched.
func renderToastOverlay(baseView string, toastContent string) string {
	if toastContent == "" {
		return baseView
	}

	baseLines := strings.Split(baseView, "\n")
	toastLines := strings.Split(strings.TrimRight(toastContent, "\n"), "\n")

	startLine := max(len(baseLines)-3-len(toastLines), 0)

	var result strings.Builder
	for i, line := range baseLines {
		if idx := i - startLine; idx >= 0 && idx < len(toastLines) {
			result.WriteString("  ")
			result.WriteString(toastLines[idx])
		} else {
			result.WriteString(line)
		}
		if i < len(baseLines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
