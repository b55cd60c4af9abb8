// Package store persists an ordered contact list as a directory of record
// files plus a manifest that lists those files in order.
//
// The caller owns the authoritative in-memory list and hands the whole list
// to SaveAll after every change. SaveAll writes each contact, rewrites the
// manifest and then removes record files that no longer belong to anyone.
// The directory is only read back at startup through LoadAll.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/entrhq/rubrica/pkg/contact"
)

// ErrNotFound is returned when no record file holds a given identity.
var ErrNotFound = errors.New("store: record not found")

// ContactStore is the persistence surface the executors work against.
type ContactStore interface {
	LoadAll() ([]contact.Contact, error)
	SaveAll(contacts []contact.Contact) error
	DeletePersona(c contact.Contact) error
}

// Logger receives the store's diagnostics. *logging.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// DirStore keeps contacts in a contacts directory and a manifest file.
//
// It holds no state besides its paths. A DirStore is not safe for concurrent
// use, and SaveAll is not atomic: a crash part way through can leave the
// manifest and the record files out of step.
type DirStore struct {
	fs          afero.Fs
	contactsDir string
	indexPath   string
	log         Logger
}

var _ ContactStore = (*DirStore)(nil)

// Option configures a DirStore.
type Option func(*DirStore)

// WithFs sets the filesystem the store operates on. The default is the OS
// filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(s *DirStore) {
		s.fs = fsys
	}
}

// WithLogger sets the diagnostics sink. The default discards everything.
func WithLogger(l Logger) Option {
	return func(s *DirStore) {
		if l != nil {
			s.log = l
		}
	}
}

// NewDirStore returns a store rooted at contactsDir with its manifest at
// indexPath. The contacts directory is created if it does not exist.
func NewDirStore(contactsDir, indexPath string, opts ...Option) (*DirStore, error) {
	s := &DirStore{
		fs:          afero.NewOsFs(),
		contactsDir: contactsDir,
		indexPath:   indexPath,
		log:         nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.fs.MkdirAll(contactsDir, 0o755); err != nil {
		return nil, fmt.Errorf("store: init directory %s: %w", contactsDir, err)
	}
	return s, nil
}

// ContactsDir returns the directory holding the record files.
func (s *DirStore) ContactsDir() string { return s.contactsDir }

// IndexPath returns the manifest path.
func (s *DirStore) IndexPath() string { return s.indexPath }

// LoadAll reads the contacts listed in the manifest, in manifest order.
//
// A missing manifest yields an empty list. Entries whose record file is
// missing or unreadable are skipped. The error is non-nil only when the
// manifest exists but cannot be read; contacts parsed before the failure are
// still returned.
func (s *DirStore) LoadAll() ([]contact.Contact, error) {
	names, err := readManifest(s.fs, s.indexPath)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debugf("store: no manifest at %s, starting empty", s.indexPath)
		return []contact.Contact{}, nil
	}

	contacts := make([]contact.Contact, 0, len(names))
	for _, name := range names {
		c, ok := s.loadRecord(name)
		if ok {
			contacts = append(contacts, c)
		}
	}

	if err != nil {
		s.log.Errorf("%v", err)
	}
	return contacts, err
}

func (s *DirStore) loadRecord(name string) (contact.Contact, bool) {
	path := filepath.Join(s.contactsDir, name)

	f, err := s.fs.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debugf("store: skipping missing record %s", name)
		return contact.Contact{}, false
	}
	if err != nil {
		s.log.Warnf("store: skipping unreadable record %s: %v", name, err)
		return contact.Contact{}, false
	}
	defer f.Close()

	c, err := contact.Decode(f, contact.WithAgeErrorHandler(func(value string, _ error) {
		s.log.Warnf("store: invalid age %q in %s, using 0", value, name)
	}))
	if err != nil {
		s.log.Warnf("store: skipping unreadable record %s: %v", name, err)
		return contact.Contact{}, false
	}
	return c, true
}

// SaveAll makes the directory reflect contacts.
//
// Each contact is written to the file AllocateFilename picks for it, in
// order, the manifest is replaced with the written filenames, and every
// record file that existed before the call but was not written is removed.
// A record whose write fails keeps its manifest entry and is not swept, so
// the previous copy on disk survives. Failures are logged and the remaining
// work carries on; the returned error joins every failure and is nil when
// everything succeeded.
func (s *DirStore) SaveAll(contacts []contact.Contact) error {
	var errs []error

	existing, err := s.recordFiles()
	if err != nil {
		s.log.Errorf("%v", err)
		errs = append(errs, err)
	}

	manifest := make([]string, 0, len(contacts))
	written := make(map[string]struct{}, len(contacts))
	for _, c := range contacts {
		name, err := s.writeRecord(c)
		if err != nil {
			s.log.Errorf("%v", err)
			errs = append(errs, err)
			if name == "" {
				continue
			}
		}
		manifest = append(manifest, name)
		written[name] = struct{}{}
	}

	if err := writeManifest(s.fs, s.indexPath, manifest); err != nil {
		s.log.Errorf("%v", err)
		errs = append(errs, err)
	}

	for _, name := range existing {
		if _, ok := written[name]; ok {
			continue
		}
		if err := s.fs.Remove(filepath.Join(s.contactsDir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("store: remove orphan %s: %w", name, err)
			s.log.Warnf("%v", err)
			errs = append(errs, err)
			continue
		}
		s.log.Debugf("store: removed orphan record %s", name)
	}

	return errors.Join(errs...)
}

// writeRecord encodes c into the file allocated for it. The name is returned
// even when the write fails; it is empty only when allocation failed.
func (s *DirStore) writeRecord(c contact.Contact) (string, error) {
	name, err := AllocateFilename(s.fs, s.contactsDir, c)
	if err != nil {
		return "", fmt.Errorf("store: allocate filename for %s: %w", c.Identity(), err)
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.contactsDir, name), contact.Encode(c), 0o644); err != nil {
		return name, fmt.Errorf("store: write record %s: %w", name, err)
	}
	return name, nil
}

// recordFiles lists the *.txt files currently in the contacts directory.
func (s *DirStore) recordFiles() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.contactsDir)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", s.contactsDir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != recordExt {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// DeletePersona removes the record file holding c's identity. It does not
// touch the manifest; the caller is expected to follow up with SaveAll.
// Deleting a contact that has no record file is not an error.
func (s *DirStore) DeletePersona(c contact.Contact) error {
	name, err := FindFilenameForIdentity(s.fs, s.contactsDir, c)
	if errors.Is(err, ErrNotFound) {
		s.log.Debugf("store: no record for %s, nothing to delete", c.Identity())
		return nil
	}
	if err != nil {
		s.log.Errorf("%v", err)
		return err
	}

	if err := s.fs.Remove(filepath.Join(s.contactsDir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("store: delete %s: %w", name, err)
		s.log.Errorf("%v", err)
		return err
	}
	return nil
}
