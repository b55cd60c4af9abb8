package types

// OverlayMode represents the current overlay state
type OverlayMode int

const (
	// OverlayModeNone indicates no overlay is active
	OverlayModeNone OverlayMode = iota
	// OverlayModeHelp shows the key binding reference
	OverlayModeHelp
	// OverlayModeDetail shows a read-only contact card
	OverlayModeDetail
	// OverlayModeEditor shows the add/edit contact form
	OverlayModeEditor
	// OverlayModeConfirmDelete asks before a contact is deleted
	OverlayModeConfirmDelete
)

// String returns a short name for log lines.
func (m OverlayMode) String() string {
	switch m {
	case OverlayModeNone:
		return "none"
	case OverlayModeHelp:
		return "help"
	case OverlayModeDetail:
		return "detail"
	case OverlayModeEditor:
		return "editor"
	case OverlayModeConfirmDelete:
		return "confirm-delete"
	default:
		return "unknown"
	}
}
