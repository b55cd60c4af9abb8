package tui

import (
	"fmt"

	"github.com/entrhq/rubrica/pkg/contact"
)

func (m *model) copyPhone() {
	i, ok := m.selectedIndex()
	if !ok {
		return
	}
	phone := m.contacts[i].Phone
	if phone == "" {
		m.ShowToast("No phone number", m.contacts[i].Identity().String(), "ℹ", false)
		return
	}
	m.copy("Phone number copied", phone)
}

func (m *model) copyCard() {
	i, ok := m.selectedIndex()
	if !ok {
		return
	}
	m.copy("Contact card copied", formatCard(m.contacts[i]))
}

func (m *model) copy(success, text string) {
	if err := m.copyText(text); err != nil {
		m.log.Warnf("Clipboard write failed: %v", err)
		m.ShowToast("Clipboard unavailable", err.Error(), "✗", true)
		return
	}
	m.ShowToast(success, text, "📋", false)
}

// formatCard renders c as plain text for the clipboard.
func formatCard(c contact.Contact) string {
	return fmt.Sprintf("%s\n%s\n%s\nEtà: %d", c.Identity(), c.Address, c.Phone, c.Age)
}
