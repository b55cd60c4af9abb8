package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/rubrica/pkg/contact"
	"github.com/entrhq/rubrica/pkg/executor/tui/types"
)

// DetailOverlay shows one contact read-only.
type DetailOverlay struct {
	*BaseOverlay
	index   int
	contact contact.Contact
}

var detailLabelStyle = lipgloss.NewStyle().
	Foreground(types.MutedGray).
	Width(12)

// NewDetailOverlay creates a card for the contact at index in the list.
func NewDetailOverlay(index int, c contact.Contact) *DetailOverlay {
	const (
		overlayWidth   = 56
		viewportWidth  = 52
		viewportHeight = 6
	)

	overlay := &DetailOverlay{index: index, contact: c}
	overlay.BaseOverlay = NewBaseOverlay(BaseOverlayConfig{
		Width:          overlayWidth,
		Height:         viewportHeight + 6,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		Content:        RenderCard(c),
		RenderHeader:   overlay.renderHeader,
		RenderFooter:   overlay.renderFooter,
	})
	return overlay
}

// RenderCard lays the contact's fields out as labelled lines.
func RenderCard(c contact.Contact) string {
	rows := []struct{ label, value string }{
		{"Nome", c.FirstName},
		{"Cognome", c.LastName},
		{"Indirizzo", c.Address},
		{"Telefono", c.Phone},
		{"Età", fmt.Sprint(c.Age)},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, detailLabelStyle.Render(r.label)+r.value)
	}
	return strings.Join(lines, "\n")
}

// Update closes on enter and hands over to the editor on "e".
func (d *DetailOverlay) Update(msg tea.Msg, _ types.StateProvider, actions types.ActionHandler) (types.Overlay, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter:
			return nil, nil
		case "e":
			index := d.index
			return nil, func() tea.Msg { return types.EditRequestMsg{Index: index} }
		}
	}

	_, closed, cmd := d.BaseOverlay.Update(msg, actions)
	if closed {
		return nil, cmd
	}
	return d, cmd
}

func (d *DetailOverlay) renderHeader() string {
	return types.OverlayTitleStyle.Render(d.contact.Identity().String()) + "\n"
}

func (d *DetailOverlay) renderFooter() string {
	return "\n" + types.OverlayHelpStyle.Render("e: Edit • ESC/Enter: Close")
}

// View renders the contact card
func (d *DetailOverlay) View() string {
	return d.BaseOverlay.View(d.Width())
}
