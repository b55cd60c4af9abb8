package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/rubrica/pkg/contact"
)

// Overlay is a modal component drawn over the contact list.
//
// Update returns the overlay that should stay active; returning nil closes
// it. Commands returned alongside a nil overlay still run.
type Overlay interface {
	Update(msg tea.Msg, state StateProvider, actions ActionHandler) (Overlay, tea.Cmd)
	View() string
	Width() int
	Height() int
	SetDimensions(width, height int)
	Focused() bool
	SetFocused(focused bool)
}

// StateProvider gives overlays read access to the model.
type StateProvider interface {
	// Contacts returns the authoritative contact list. Callers must not modify it.
	Contacts() []contact.Contact
	ScreenSize() (width, height int)
}

// ActionHandler lets overlays act on the model.
type ActionHandler interface {
	ShowToast(message, details, icon string, isError bool)
	ClearOverlay()
	Quit()
}
