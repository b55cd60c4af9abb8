// Package tui provides the interactive terminal interface of the contact
// book: a searchable contact table with overlays to show, add, edit and
// delete contacts.
//
// The TUI codebase is split into multiple files:
// - executor.go: Executor and program lifecycle
// - model.go: model state, filtering and selection
// - model_actions.go: the StateProvider and ActionHandler overlays talk to
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and rendering
// - overlay.go: overlay state, overlay and toast rendering
// - helpers.go: clipboard helpers
// - keys.go: key bindings
// - styles.go: styling
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/rubrica/pkg/config"
	"github.com/entrhq/rubrica/pkg/logging"
	"github.com/entrhq/rubrica/pkg/store"
)

// Executor runs the contact book TUI against a ContactStore.
type Executor struct {
	store     store.ContactStore
	program   *tea.Program
	log       Logger
	settings  settings
	clipboard func(string) error
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger the TUI reports saves, deletes and failures to.
func WithLogger(l Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithUISettings applies the ui configuration section.
func WithUISettings(ui *config.UISection) Option {
	return func(e *Executor) {
		if ui != nil {
			e.settings = settingsFrom(ui)
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(e *Executor) {
		if write != nil {
			e.clipboard = write
		}
	}
}

// NewExecutor creates a TUI executor over st.
func NewExecutor(st store.ContactStore, opts ...Option) *Executor {
	e := &Executor{
		store:     st,
		log:       logging.Discard("tui"),
		settings:  defaultSettings(),
		clipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run loads the contact list and blocks until the user quits or ctx is
// cancelled. A manifest that cannot be read is reported in the UI and the
// session starts read-only with whatever could be loaded.
func (e *Executor) Run(ctx context.Context) error {
	m := e.loadModel()

	e.program = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := e.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}
	return nil
}

// loadModel builds the session model from the store. When the manifest
// cannot be read the list is partial, and saving it would sweep the unread
// records as orphans, so changes are disabled.
func (e *Executor) loadModel() *model {
	contacts, err := e.store.LoadAll()
	m := newModel(e.store, contacts, e.settings, e.log, e.clipboard)
	if err != nil {
		e.log.Errorf("Loading contacts: %v", err)
		e.log.Warnf("Session is read-only: %d contacts loaded from a partial index", len(contacts))
		m.readOnly = true
		m.ShowToast("Could not read the contact index", "Changes are disabled for this session: "+err.Error(), "✗", true)
		return m
	}
	e.log.Infof("Loaded %d contacts", len(contacts))
	return m
}
