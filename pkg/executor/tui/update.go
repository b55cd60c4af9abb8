package tui

import (
	"errors"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/rubrica/pkg/contact"
	"github.com/entrhq/rubrica/pkg/executor/tui/overlay"
	"github.com/entrhq/rubrica/pkg/executor/tui/types"
)

// Update implements tea.Model
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.shouldQuit {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case types.ContactSavedMsg:
		m.handleContactSaved(msg)
	case types.DeleteConfirmedMsg:
		m.deleteAt(msg.Index)
	case types.EditRequestMsg:
		m.openEditor(msg.Index)
	case types.ToastMsg:
		m.ShowToast(msg.Message, msg.Details, msg.Icon, msg.IsError)
	case toastExpiredMsg:
		if !m.toast.visible(time.Now()) {
			m.toast.active = false
		}
	default:
		cmd = m.forward(msg)
	}

	if m.shouldQuit {
		return m, tea.Quit
	}
	return m, tea.Batch(cmd, m.scheduleToast())
}

// scheduleToast returns the tick that clears a freshly shown toast.
func (m *model) scheduleToast() tea.Cmd {
	if !m.toast.active || m.toast.scheduled {
		return nil
	}
	m.toast.scheduled = true
	return tea.Tick(time.Until(m.toast.showUntil), func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

// forward passes non-key messages (cursor blink and the like) to whichever
// component has focus.
func (m *model) forward(msg tea.Msg) tea.Cmd {
	if m.overlay.isActive() {
		return m.updateOverlay(msg)
	}
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return cmd
	}
	return nil
}

func (m *model) updateOverlay(msg tea.Msg) tea.Cmd {
	updated, cmd := m.overlay.overlay.Update(msg, m, m)
	if updated == nil {
		m.ClearOverlay()
	} else {
		m.overlay.overlay = updated
	}
	return cmd
}

func (m *model) handleWindowResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.search.Width = max(msg.Width-10, 10)
	m.table.SetColumns(columnsFor(msg.Width))
	m.table.SetWidth(max(msg.Width-2, 20))
	// title, search box (3 lines), status bar, tips and spacing
	m.table.SetHeight(max(msg.Height-9, 3))
}

func (m *model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if m.overlay.isActive() {
		return m.updateOverlay(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quit()
		return nil
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.table.Blur()
		return m.search.Focus()
	case key.Matches(msg, m.keys.New):
		m.openEditor(types.NewContactIndex)
	case key.Matches(msg, m.keys.View):
		if i, ok := m.selectedIndex(); ok {
			m.SetOverlay(types.OverlayModeDetail, overlay.NewDetailOverlay(i, m.contacts[i]))
		}
	case key.Matches(msg, m.keys.Edit):
		if i, ok := m.selectedIndex(); ok {
			m.openEditor(i)
		}
	case key.Matches(msg, m.keys.Delete):
		m.requestDelete()
	case key.Matches(msg, m.keys.CopyPhone):
		m.copyPhone()
	case key.Matches(msg, m.keys.CopyCard):
		m.copyCard()
	case key.Matches(msg, m.keys.Help):
		m.SetOverlay(types.OverlayModeHelp, overlay.NewHelpOverlay("Rubrica keys", m.keys.bindings()))
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}
	return nil
}

// handleSearchKey edits the query. Enter keeps the filter and returns to the
// list, esc clears it.
func (m *model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		m.Quit()
		return nil
	case "esc":
		m.search.SetValue("")
		m.leaveSearch()
		return nil
	case "enter", "down", "up":
		m.leaveSearch()
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.table.SetCursor(0)
		m.refilter()
	}
	return cmd
}

func (m *model) leaveSearch() {
	m.searching = false
	m.search.Blur()
	m.table.Focus()
	m.refilter()
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.overlay.isActive() || msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.table.MoveUp(1)
	case tea.MouseButtonWheelDown:
		m.table.MoveDown(1)
	}
}

// openEditor shows the form for contacts[index], or an empty form for
// types.NewContactIndex.
func (m *model) openEditor(index int) {
	if !m.writable() {
		return
	}
	var c contact.Contact
	if index != types.NewContactIndex {
		if index < 0 || index >= len(m.contacts) {
			return
		}
		c = m.contacts[index]
	}
	m.SetOverlay(types.OverlayModeEditor, overlay.NewEditorOverlay(index, c))
}

// handleContactSaved applies an editor submission to the list and persists
// the whole list.
func (m *model) handleContactSaved(msg types.ContactSavedMsg) {
	if !m.writable() {
		return
	}
	c := msg.Contact
	shared := m.identityTaken(c.Identity(), msg.Index)

	switch {
	case msg.Index == types.NewContactIndex:
		m.contacts = append(m.contacts, c)
		msg.Index = len(m.contacts) - 1
	case msg.Index >= 0 && msg.Index < len(m.contacts):
		m.contacts[msg.Index] = c
	default:
		m.log.Warnf("Discarding save for stale index %d", msg.Index)
		return
	}

	err := m.store.SaveAll(m.contacts)
	m.refilter()
	m.selectIndex(msg.Index)

	switch {
	case err != nil:
		m.log.Errorf("Saving %s: %v", c.Identity(), err)
		m.ShowToast("Save failed", err.Error(), "✗", true)
	case shared:
		m.log.Warnf("%s shares its name with another contact", c.Identity())
		m.ShowToast("Saved "+c.Identity().String(),
			"Another contact has the same name; both now share one record file.", "⚠", false)
	default:
		m.log.Infof("Saved %s", c.Identity())
		m.ShowToast("Saved", c.Identity().String(), "✓", false)
	}
}

// requestDelete deletes the selected contact, asking first when configured to.
func (m *model) requestDelete() {
	i, ok := m.selectedIndex()
	if !ok || !m.writable() {
		return
	}
	if m.settings.confirmDelete {
		m.SetOverlay(types.OverlayModeConfirmDelete, overlay.NewConfirmDeleteOverlay(i, m.contacts[i]))
		return
	}
	m.deleteAt(i)
}

// deleteAt removes the contact's record file, drops it from the list and
// rewrites the index.
func (m *model) deleteAt(i int) {
	if !m.writable() {
		return
	}
	if i < 0 || i >= len(m.contacts) {
		m.log.Warnf("Discarding delete for stale index %d", i)
		return
	}
	c := m.contacts[i]

	delErr := m.store.DeletePersona(c)
	m.contacts = slices.Delete(m.contacts, i, i+1)
	saveErr := m.store.SaveAll(m.contacts)
	m.refilter()

	if err := errors.Join(delErr, saveErr); err != nil {
		m.log.Errorf("Deleting %s: %v", c.Identity(), err)
		m.ShowToast("Delete failed", err.Error(), "✗", true)
		return
	}
	m.log.Infof("Deleted %s", c.Identity())
	m.ShowToast("Deleted", c.Identity().String(), "✓", false)
}
