package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/rubrica/pkg/contact"
	"github.com/entrhq/rubrica/pkg/executor/tui/types"
)

// ConfirmChoice is the highlighted button of a ConfirmDeleteOverlay.
type ConfirmChoice int

const (
	ConfirmChoiceDelete ConfirmChoice = iota
	ConfirmChoiceCancel
)

var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(types.MutedGray).
			Padding(0, 2)

	activeDeleteStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#111827")).
				Background(types.SalmonPink).
				Bold(true).
				Padding(0, 2)

	activeCancelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#111827")).
				Background(types.MintGreen).
				Bold(true).
				Padding(0, 2)
)

// ConfirmDeleteOverlay asks before the contact at index is deleted.
type ConfirmDeleteOverlay struct {
	index    int
	contact  contact.Contact
	selected ConfirmChoice
	width    int
	height   int
	focused  bool
}

// NewConfirmDeleteOverlay creates the dialog with Delete preselected.
func NewConfirmDeleteOverlay(index int, c contact.Contact) *ConfirmDeleteOverlay {
	return &ConfirmDeleteOverlay{
		index:   index,
		contact: c,
		width:   50,
		height:  9,
		focused: true,
	}
}

// Selected returns the highlighted button.
func (o *ConfirmDeleteOverlay) Selected() ConfirmChoice { return o.selected }

// Update handles y/n shortcuts, button toggling and enter.
func (o *ConfirmDeleteOverlay) Update(msg tea.Msg, _ types.StateProvider, _ types.ActionHandler) (types.Overlay, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch keyMsg.String() {
	case "y":
		return nil, o.confirm()
	case "n", keyEsc, keyCtrlC:
		return nil, nil
	case keyTab, keyLeft, keyRight, "h", "l":
		if o.selected == ConfirmChoiceDelete {
			o.selected = ConfirmChoiceCancel
		} else {
			o.selected = ConfirmChoiceDelete
		}
		return o, nil
	case keyEnter:
		if o.selected == ConfirmChoiceDelete {
			return nil, o.confirm()
		}
		return nil, nil
	}
	return o, nil
}

func (o *ConfirmDeleteOverlay) confirm() tea.Cmd {
	index := o.index
	return func() tea.Msg { return types.DeleteConfirmedMsg{Index: index} }
}

// View renders the dialog
func (o *ConfirmDeleteOverlay) View() string {
	var sb strings.Builder
	sb.WriteString(types.OverlayTitleStyle.Render("Delete contact"))
	sb.WriteString("\n\n")
	sb.WriteString("Delete " + lipgloss.NewStyle().Bold(true).Render(o.contact.Identity().String()) + "?")
	sb.WriteString("\n")
	sb.WriteString(types.OverlaySubtitleStyle.Render("The record file is removed from disk."))
	sb.WriteString("\n\n")

	del, cancel := buttonStyle.Render("Delete"), buttonStyle.Render("Cancel")
	if o.selected == ConfirmChoiceDelete {
		del = activeDeleteStyle.Render("Delete")
	} else {
		cancel = activeCancelStyle.Render("Cancel")
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, del, "  ", cancel))
	sb.WriteString("\n\n")
	sb.WriteString(types.OverlayHelpStyle.Render("y: Delete • n/ESC: Cancel • Tab: Toggle"))

	return types.CreateOverlayContainerStyle(o.width).Render(sb.String())
}

// Width returns the overlay width
func (o *ConfirmDeleteOverlay) Width() int { return o.width }

// Height returns the overlay height
func (o *ConfirmDeleteOverlay) Height() int { return o.height }

// SetDimensions updates the overlay dimensions
func (o *ConfirmDeleteOverlay) SetDimensions(width, height int) {
	o.width = width
	o.height = height
}

// Focused returns whether this overlay should handle input
func (o *ConfirmDeleteOverlay) Focused() bool { return o.focused }

// SetFocused sets the focus state
func (o *ConfirmDeleteOverlay) SetFocused(focused bool) { o.focused = focused }
