package tui

import (
	"fmt"
	"strings"
	"time"
)

// View renders the entire TUI interface.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	baseView := strings.Join([]string{
		m.buildHeader(),
		m.buildSearchBox(),
		m.buildList(),
		m.buildStatusBar(),
		m.buildTips(),
	}, "\n")

	return m.applyOverlays(baseView)
}

func (m *model) buildHeader() string {
	return " " + headerStyle.Render("Rubrica") + subtitleStyle.Render("  contact book")
}

func (m *model) buildSearchBox() string {
	style := searchBoxStyle
	if m.searching {
		style = activeSearchBoxStyle
	}
	return style.Width(max(m.width-4, 20)).Render(m.search.View())
}

func (m *model) buildList() string {
	if len(m.contacts) == 0 {
		return emptyStyle.Render("No contacts yet. Press n to add one.")
	}
	if len(m.visible) == 0 {
		return emptyStyle.Render("No contact matches the search.")
	}
	return m.table.View()
}

// statusText reports the list size and either the number of rows shown
// (while searching or when nothing is selectable) or the selected contact.
func (m *model) statusText() string {
	total := len(m.contacts)
	text := fmt.Sprintf("Contacts: %d | Shown: %d", total, len(m.visible))
	if !m.searching {
		if i, ok := m.selectedIndex(); ok {
			text = fmt.Sprintf("Contacts: %d | Selected: %s", total, m.contacts[i].Identity())
		}
	}
	if m.readOnly {
		text += " | Read-only"
	}
	return text
}

func (m *model) buildStatusBar() string {
	return statusBarStyle.Render(m.statusText())
}

func (m *model) buildTips() string {
	if m.searching {
		return tipsStyle.Render("  Type to filter • Enter to keep the filter • Esc to clear it")
	}
	return tipsStyle.Render("  n: New • Enter: Show • e: Edit • d: Delete • y: Copy phone • /: Search • ?: Help • q: Quit")
}

// applyOverlays layers the active overlay and the toast over the base view.
func (m *model) applyOverlays(baseView string) string {
	if m.overlay.isActive() {
		baseView = renderOverlay(baseView, m.overlay.overlay, m.width, m.height)
	}
	return renderToastOverlay(baseView, renderToast(m.toast, m.width, time.Now()))
}
