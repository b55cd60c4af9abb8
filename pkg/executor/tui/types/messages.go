package types

import (
	"github.com/entrhq/rubrica/pkg/contact"
)

// NewContactIndex marks a ContactSavedMsg for a contact that is not in the
// list yet.
const NewContactIndex = -1

// ToastMsg is a message type for showing toast notifications
type ToastMsg struct {
	Message string
	Details string
	Icon    string
	IsError bool
}

// ContactSavedMsg is sent by the editor when the form is submitted.
// Index is the position in the contact list being replaced, or
// NewContactIndex to append.
type ContactSavedMsg struct {
	Index   int
	Contact contact.Contact
}

// DeleteConfirmedMsg is sent when the user confirms deleting the contact at
// Index.
type DeleteConfirmedMsg struct {
	Index int
}

// EditRequestMsg asks for the editor to open on the contact at Index.
type EditRequestMsg struct {
	Index int
}
