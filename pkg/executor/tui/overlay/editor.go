package overlay

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/rubrica/pkg/contact"
	"github.com/entrhq/rubrica/pkg/executor/tui/types"
)

// Editor field positions.
const (
	fieldFirstName = iota
	fieldLastName
	fieldAddress
	fieldPhone
	fieldAge
	fieldCount
)

var fieldLabels = [fieldCount]string{"Nome", "Cognome", "Indirizzo", "Telefono", "Età"}

// ErrAgeNotNumber is reported when the age field is not a whole number.
var ErrAgeNotNumber = errors.New("age must be a whole number")

var (
	editorLabelStyle = lipgloss.NewStyle().
				Foreground(types.MutedGray).
				Width(12)

	editorFocusedLabelStyle = lipgloss.NewStyle().
				Foreground(types.SalmonPink).
				Bold(true).
				Width(12)
)

// EditorOverlay is the add/edit contact form.
type EditorOverlay struct {
	index   int
	title   string
	inputs  [fieldCount]textinput.Model
	focus   int
	err     string
	width   int
	height  int
	focused bool
}

// NewEditorOverlay opens the form on c. index is the contact's position in
// the list, or types.NewContactIndex for a new contact.
func NewEditorOverlay(index int, c contact.Contact) *EditorOverlay {
	e := &EditorOverlay{
		index:   index,
		title:   "Edit contact",
		width:   60,
		height:  fieldCount + 8,
		focused: true,
	}
	if index == types.NewContactIndex {
		e.title = "New contact"
	}

	values := [fieldCount]string{c.FirstName, c.LastName, c.Address, c.Phone, ""}
	if index != types.NewContactIndex {
		values[fieldAge] = strconv.Itoa(c.Age)
	}

	for i := range e.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = 40
		ti.SetValue(values[i])
		e.inputs[i] = ti
	}
	e.inputs[fieldAge].CharLimit = 4
	e.inputs[fieldAge].Placeholder = "0"
	e.inputs[fieldFirstName].Focus()
	return e
}

// Index returns the list position the form edits.
func (e *EditorOverlay) Index() int { return e.index }

// Err returns the validation message currently shown, if any.
func (e *EditorOverlay) Err() string { return e.err }

// Update handles navigation, submission and text entry.
func (e *EditorOverlay) Update(msg tea.Msg, _ types.StateProvider, _ types.ActionHandler) (types.Overlay, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
		return e, cmd
	}

	switch keyMsg.String() {
	case keyEsc, keyCtrlC:
		return nil, nil
	case keyTab, keyDown:
		return e, e.setFocus((e.focus + 1) % fieldCount)
	case keyShiftTab, keyUp:
		return e, e.setFocus((e.focus + fieldCount - 1) % fieldCount)
	case keyCtrlS:
		return e.submit()
	case keyEnter:
		if e.focus == fieldAge {
			return e.submit()
		}
		return e, e.setFocus(e.focus + 1)
	}

	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)
	return e, cmd
}

func (e *EditorOverlay) setFocus(i int) tea.Cmd {
	e.inputs[e.focus].Blur()
	e.focus = i
	return e.inputs[e.focus].Focus()
}

// Contact builds a contact from the form, checking the age field and the
// contact constraints.
func (e *EditorOverlay) Contact() (contact.Contact, error) {
	age, err := strconv.Atoi(strings.TrimSpace(e.inputs[fieldAge].Value()))
	if err != nil {
		return contact.Contact{}, ErrAgeNotNumber
	}

	c := contact.Contact{
		FirstName: e.inputs[fieldFirstName].Value(),
		LastName:  e.inputs[fieldLastName].Value(),
		Address:   e.inputs[fieldAddress].Value(),
		Phone:     e.inputs[fieldPhone].Value(),
		Age:       age,
	}.Trimmed()
	if err := c.Validate(); err != nil {
		return contact.Contact{}, err
	}
	return c, nil
}

func (e *EditorOverlay) submit() (types.Overlay, tea.Cmd) {
	c, err := e.Contact()
	if err != nil {
		e.err = strings.TrimPrefix(err.Error(), "contact: ")
		return e, nil
	}

	saved := types.ContactSavedMsg{Index: e.index, Contact: c}
	return nil, func() tea.Msg { return saved }
}

// View renders the form
func (e *EditorOverlay) View() string {
	var sb strings.Builder
	sb.WriteString(types.OverlayTitleStyle.Render(e.title))
	sb.WriteString("\n\n")

	for i := range e.inputs {
		label := editorLabelStyle
		if i == e.focus {
			label = editorFocusedLabelStyle
		}
		sb.WriteString(label.Render(fieldLabels[i]))
		sb.WriteString(e.inputs[i].View())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if e.err != "" {
		sb.WriteString(types.OverlayErrorStyle.Render(e.err))
		sb.WriteString("\n")
	}
	sb.WriteString(types.OverlayHelpStyle.Render("Tab/Shift+Tab: Move • Ctrl+S: Save • ESC: Cancel"))

	return types.CreateOverlayContainerStyle(e.width).Render(sb.String())
}

// Width returns the overlay width
func (e *EditorOverlay) Width() int { return e.width }

// Height returns the overlay height
func (e *EditorOverlay) Height() int { return e.height }

// SetDimensions updates the overlay dimensions
func (e *EditorOverlay) SetDimensions(width, height int) {
	e.width = width
	e.height = height
}

// Focused returns whether this overlay should handle input
func (e *EditorOverlay) Focused() bool { return e.focused }

// SetFocused sets the focus state
func (e *EditorOverlay) SetFocused(focused bool) { e.focused = focused }
