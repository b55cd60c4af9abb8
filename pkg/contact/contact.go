// Package contact defines the contact record, its on-disk text encoding and the
// structural identity used to recognise which record file belongs to which contact.
package contact

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Contact is a single address book entry.
//
// There is no surrogate identifier: two contacts denote the same record when
// their first and last names are byte-for-byte equal (see Identity).
type Contact struct {
	FirstName string `yaml:"first_name" validate:"required,excludesall=\r\n"`
	LastName  string `yaml:"last_name"  validate:"required,excludesall=\r\n"`
	Address   string `yaml:"address"    validate:"excludesall=\r\n"`
	Phone     string `yaml:"phone"      validate:"excludesall=\r\n"`
	Age       int    `yaml:"age"        validate:"gte=0"`
}

// Identity is the (first name, last name) pair that identifies a contact.
type Identity struct {
	FirstName string
	LastName  string
}

// Identity returns the structural identity of c.
func (c Contact) Identity() Identity {
	return Identity{FirstName: c.FirstName, LastName: c.LastName}
}

// String renders the identity as "First Last".
func (id Identity) String() string {
	return strings.TrimSpace(id.FirstName + " " + id.LastName)
}

// FileStem returns the base name used for the contact's record file,
// "{FirstName}-{LastName}". Path separators and NUL bytes are replaced with
// underscores so the stem always names a file inside the contacts directory;
// nothing else is normalized.
func (id Identity) FileStem() string {
	return stemReplacer.Replace(id.FirstName) + "-" + stemReplacer.Replace(id.LastName)
}

var stemReplacer = strings.NewReplacer("/", "_", "\\", "_", "\x00", "_")

// Trimmed returns c with surrounding whitespace removed from its text
// fields. Decode trims values, so this is the form a saved contact reads back as.
func (c Contact) Trimmed() Contact {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Address = strings.TrimSpace(c.Address)
	c.Phone = strings.TrimSpace(c.Phone)
	return c
}

// validate caches struct metadata for Contact.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the constraints the editor and command line enforce before
// a contact is handed to the store: both names present, no line breaks in any
// field (the record format cannot represent them) and a non-negative age.
func (c Contact) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("contact: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("contact: %s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	name := fieldLabels[fe.StructField()]
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "excludesall":
		return name + " must not contain line breaks"
	case "gte":
		return name + " must not be negative"
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}

var fieldLabels = map[string]string{
	"FirstName": "first name",
	"LastName":  "last name",
	"Address":   "address",
	"Phone":     "phone",
	"Age":       "age",
}
