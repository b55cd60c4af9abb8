package tui

import (
	"time"

	"github.com/entrhq/rubrica/pkg/contact"
	"github.com/entrhq/rubrica/pkg/executor/tui/types"
)

// Contacts returns the authoritative contact list
func (m *model) Contacts() []contact.Contact {
	return m.contacts
}

// ScreenSize returns the terminal size last reported to the model
func (m *model) ScreenSize() (width, height int) {
	return m.width, m.height
}

// SetOverlay activates an overlay
func (m *model) SetOverlay(mode types.OverlayMode, overlay types.Overlay) {
	m.searching = false
	m.search.Blur()
	m.table.Blur()
	m.overlay.activate(mode, overlay)
}

// ClearOverlay closes the current overlay and gives focus back to the list
func (m *model) ClearOverlay() {
	m.overlay.deactivate()
	m.table.Focus()
}

// ShowToast displays a toast notification. Update schedules the tick that
// hides it again.
func (m *model) ShowToast(message, details, icon string, isError bool) {
	m.toast = &toastNotification{
		active:    true,
		message:   message,
		details:   details,
		icon:      icon,
		isError:   isError,
		showUntil: time.Now().Add(m.settings.toastDuration),
	}
}

// Quit triggers application exit on the next Update.
func (m *model) Quit() {
	m.shouldQuit = true
}
