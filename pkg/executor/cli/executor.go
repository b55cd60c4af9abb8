// Package cli provides non-interactive contact book operations for the
// command line. Every operation loads the whole book from the store, applies
// one change and saves the whole book back.
//
// Example usage:
//
//	st, _ := store.NewDirStore("contacts", "index.txt")
//	executor := cli.NewExecutor(st, cli.WithWriter(os.Stdout))
//	if err := executor.List("ros*"); err != nil {
//	    log.Fatal(err)
//	}
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/entrhq/rubrica/pkg/contact"
	"github.com/entrhq/rubrica/pkg/store"
)

// ErrNoSuchContact is returned when no contact has the requested identity.
var ErrNoSuchContact = errors.New("no contact with that name")

// Logger is the logging surface the executor reports changes to.
type Logger interface {
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Warnf(string, ...any) {}

// Executor runs single contact book operations against a store.
type Executor struct {
	store  store.ContactStore
	writer io.Writer
	log    Logger
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithLogger sets the logger changes are reported to.
func WithLogger(l Logger) ExecutorOption {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

// NewExecutor creates a new CLI executor over st.
func NewExecutor(st store.ContactStore, opts ...ExecutorOption) *Executor {
	e := &Executor{
		store:  st,
		writer: os.Stdout,
		log:    nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// exportDocument is the YAML layout of Export and Import.
type exportDocument struct {
	Contacts []contact.Contact `yaml:"contacts"`
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// List prints the contacts whose first name, last name or phone matches the
// glob pattern match, in book order. An empty pattern lists everything.
func (e *Executor) List(match string) error {
	matcher, err := contact.MatchGlob(match)
	if err != nil {
		return err
	}

	contacts, err := e.store.LoadAll()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		if matcher(c) {
			rows = append(rows, []string{c.FirstName, c.LastName, c.Phone, strconv.Itoa(c.Age)})
		}
	}

	if len(rows) == 0 {
		fmt.Fprintln(e.writer, "No contacts found.")
		return nil
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("NOME", "COGNOME", "TELEFONO", "ETÀ").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(e.writer, t.Render())
	fmt.Fprintf(e.writer, "%d of %d contacts\n", len(rows), len(contacts))
	return nil
}

// Show prints the card of the contact with the given identity.
func (e *Executor) Show(first, last string) error {
	contacts, err := e.store.LoadAll()
	if err != nil {
		return err
	}

	i := indexOf(contacts, contact.Identity{FirstName: first, LastName: last})
	if i < 0 {
		return fmt.Errorf("%w: %s %s", ErrNoSuchContact, first, last)
	}

	c := contacts[i]
	fmt.Fprintf(e.writer, "Nome:      %s\n", c.FirstName)
	fmt.Fprintf(e.writer, "Cognome:   %s\n", c.LastName)
	fmt.Fprintf(e.writer, "Indirizzo: %s\n", c.Address)
	fmt.Fprintf(e.writer, "Telefono:  %s\n", c.Phone)
	fmt.Fprintf(e.writer, "Età:       %d\n", c.Age)
	return nil
}

// Add validates c and appends it to the book. Surrounding whitespace is
// trimmed from its fields first. Adding a contact whose name is already taken
// is allowed; both then share one record file.
func (e *Executor) Add(c contact.Contact) error {
	c = c.Trimmed()
	if err := c.Validate(); err != nil {
		return err
	}

	contacts, err := e.store.LoadAll()
	if err != nil {
		return err
	}

	if indexOf(contacts, c.Identity()) >= 0 {
		e.log.Warnf("%s shares its name with another contact", c.Identity())
		fmt.Fprintf(e.writer, "Warning: another contact is named %s; both share one record file.\n", c.Identity())
	}

	contacts = append(contacts, c)
	if err := e.store.SaveAll(contacts); err != nil {
		return err
	}

	e.log.Infof("Added %s", c.Identity())
	fmt.Fprintf(e.writer, "Added %s.\n", c.Identity())
	return nil
}

// Edit replaces the first contact named first last with c, trimmed.
func (e *Executor) Edit(first, last string, c contact.Contact) error {
	c = c.Trimmed()
	if err := c.Validate(); err != nil {
		return err
	}

	contacts, err := e.store.LoadAll()
	if err != nil {
		return err
	}

	i := indexOf(contacts, contact.Identity{FirstName: first, LastName: last})
	if i < 0 {
		return fmt.Errorf("%w: %s %s", ErrNoSuchContact, first, last)
	}

	contacts[i] = c
	if err := e.store.SaveAll(contacts); err != nil {
		return err
	}

	e.log.Infof("Updated %s %s", first, last)
	fmt.Fprintf(e.writer, "Updated %s.\n", c.Identity())
	return nil
}

// Lookup returns the first contact named first last.
func (e *Executor) Lookup(first, last string) (contact.Contact, error) {
	contacts, err := e.store.LoadAll()
	if err != nil {
		return contact.Contact{}, err
	}
	i := indexOf(contacts, contact.Identity{FirstName: first, LastName: last})
	if i < 0 {
		return contact.Contact{}, fmt.Errorf("%w: %s %s", ErrNoSuchContact, first, last)
	}
	return contacts[i], nil
}

// Delete removes the record file of the first contact named first last,
// drops the contact from the book and saves it.
func (e *Executor) Delete(first, last string) error {
	contacts, err := e.store.LoadAll()
	if err != nil {
		return err
	}

	i := indexOf(contacts, contact.Identity{FirstName: first, LastName: last})
	if i < 0 {
		return fmt.Errorf("%w: %s %s", ErrNoSuchContact, first, last)
	}

	delErr := e.store.DeletePersona(contacts[i])
	contacts = slices.Delete(contacts, i, i+1)
	if err := errors.Join(delErr, e.store.SaveAll(contacts)); err != nil {
		return err
	}

	e.log.Infof("Deleted %s %s", first, last)
	fmt.Fprintf(e.writer, "Deleted %s %s.\n", first, last)
	return nil
}

// Export writes the whole book to w as a YAML document, in book order.
func (e *Executor) Export(w io.Writer) error {
	contacts, err := e.store.LoadAll()
	if err != nil {
		return err
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exportDocument{Contacts: contacts}); err != nil {
		return fmt.Errorf("failed to encode contacts: %w", err)
	}
	return enc.Close()
}

// Import reads a YAML document written by Export and appends its contacts
// to the book, or replaces the book with them when replace is set. Every
// contact is trimmed and validated before anything is saved.
func (e *Executor) Import(r io.Reader, replace bool) error {
	var doc exportDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode contacts: %w", err)
	}

	for i, c := range doc.Contacts {
		c = c.Trimmed()
		doc.Contacts[i] = c
		if err := c.Validate(); err != nil {
			return fmt.Errorf("contact %d: %w", i+1, err)
		}
	}

	var contacts []contact.Contact
	if !replace {
		existing, err := e.store.LoadAll()
		if err != nil {
			return err
		}
		contacts = existing
	}
	contacts = append(contacts, doc.Contacts...)

	if err := e.store.SaveAll(contacts); err != nil {
		return err
	}

	e.log.Infof("Imported %d contacts (replace=%t)", len(doc.Contacts), replace)
	fmt.Fprintf(e.writer, "Imported %d contacts, %d in the book.\n", len(doc.Contacts), len(contacts))
	return nil
}

func indexOf(contacts []contact.Contact, id contact.Identity) int {
	return slices.IndexFunc(contacts, func(c contact.Contact) bool {
		return c.Identity() == id
	})
}
