package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/rubrica/pkg/config"
	"github.com/entrhq/rubrica/pkg/contact"
	"github.com/entrhq/rubrica/pkg/store"
)

// Logger is the logging surface the TUI writes to.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// settings are the UI preferences the model reads.
type settings struct {
	confirmDelete bool
	toastDuration time.Duration
	searchMode    string
}

func defaultSettings() settings {
	return settingsFrom(config.NewUISection())
}

func settingsFrom(ui *config.UISection) settings {
	return settings{
		confirmDelete: ui.ShouldConfirmDelete(),
		toastDuration: ui.GetToastDuration(),
		searchMode:    ui.GetSearchMode(),
	}
}

// toastExpiredMsg triggers a redraw once a toast has run its course.
type toastExpiredMsg struct{}

// model is the Bubble Tea model of the contact list screen.
type model struct {
	store    store.ContactStore
	log      Logger
	settings settings
	copyText func(string) error

	// contacts is the authoritative list; the table only mirrors it.
	contacts []contact.Contact
	// visible maps table rows to indices into contacts.
	visible []int

	table     table.Model
	search    textinput.Model
	searching bool
	keys      keyMap

	overlay *overlayState
	toast   *toastNotification

	// readOnly is set when the index could not be read; contacts is then
	// partial and must not be saved over the book.
	readOnly bool

	width      int
	height     int
	ready      bool
	shouldQuit bool
}

func newModel(st store.ContactStore, contacts []contact.Contact, s settings, log Logger, copyText func(string) error) *model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search name, surname or phone"
	search.CharLimit = 64

	t := table.New(
		table.WithColumns(columnsFor(80)),
		table.WithFocused(true),
		table.WithKeyMap(tableKeyMap()),
		table.WithStyles(tableStyles()),
	)

	m := &model{
		store:    st,
		log:      log,
		settings: s,
		copyText: copyText,
		contacts: contacts,
		table:    t,
		search:   search,
		keys:     defaultKeyMap(),
		overlay:  newOverlayState(),
		toast:    &toastNotification{},
	}
	m.refilter()
	return m
}

// Init implements tea.Model
func (m *model) Init() tea.Cmd {
	return nil
}

func columnsFor(width int) []table.Column {
	usable := max(width-8, 30)
	name := usable * 3 / 10
	return []table.Column{
		{Title: "Nome", Width: name},
		{Title: "Cognome", Width: name},
		{Title: "Telefono", Width: usable - 2*name},
	}
}

// matcher builds the filter for the current search query. An invalid glob
// falls back to substring matching so typing a half-finished pattern never
// empties the list.
func (m *model) matcher() contact.Matcher {
	query := m.search.Value()
	if m.settings.searchMode == config.SearchModeGlob {
		if match, err := contact.MatchGlob(query); err == nil {
			return match
		}
	}
	return contact.MatchSubstring(query)
}

// refilter recomputes the visible rows from contacts and the search query,
// keeping the cursor in range.
func (m *model) refilter() {
	match := m.matcher()

	m.visible = m.visible[:0]
	rows := make([]table.Row, 0, len(m.contacts))
	for i, c := range m.contacts {
		if !match(c) {
			continue
		}
		m.visible = append(m.visible, i)
		rows = append(rows, table.Row{c.FirstName, c.LastName, c.Phone})
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	} else if cursor < 0 {
		m.table.SetCursor(0)
	}
}

// selectedIndex returns the contacts index under the cursor.
func (m *model) selectedIndex() (int, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return 0, false
	}
	return m.visible[cursor], true
}

// selectIndex moves the cursor onto contacts[i] if it is visible.
func (m *model) selectIndex(i int) {
	for row, idx := range m.visible {
		if idx == i {
			m.table.SetCursor(row)
			return
		}
	}
}

// identityTaken reports whether another contact than contacts[self] has id.
func (m *model) identityTaken(id contact.Identity, self int) bool {
	for i, c := range m.contacts {
		if i != self && c.Identity() == id {
			return true
		}
	}
	return false
}

// writable reports whether the list may be changed, telling the user why not.
func (m *model) writable() bool {
	if !m.readOnly {
		return true
	}
	m.log.Warnf("Ignoring change in a read-only session")
	m.ShowToast("Read-only session", "The contact index could not be read, so changes are disabled.", "✗", true)
	return false
}
