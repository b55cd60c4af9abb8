package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// SectionIDStorage is the identifier for the storage section.
	SectionIDStorage = "storage"

	defaultBaseDir     = "."
	defaultContactsDir = "contacts"
	defaultIndexFile   = "index.txt"
)

// StorageSection says where the contact book lives on disk: a base directory
// holding the manifest file and the contacts directory.
type StorageSection struct {
	BaseDir     string `json:"base_dir"`
	ContactsDir string `json:"contacts_dir"`
	IndexFile   string `json:"index_file"`
	mu          sync.RWMutex
}

// NewStorageSection creates a storage section with default settings.
func NewStorageSection() *StorageSection {
	return &StorageSection{
		BaseDir:     defaultBaseDir,
		ContactsDir: defaultContactsDir,
		IndexFile:   defaultIndexFile,
	}
}

// ID returns the section identifier.
func (s *StorageSection) ID() string {
	return SectionIDStorage
}

// Title returns the section title.
func (s *StorageSection) Title() string {
	return "Storage"
}

// Description returns the section description.
func (s *StorageSection) Description() string {
	return "Location of the contact records directory and the index file that orders them."
}

// Data returns the current configuration data.
func (s *StorageSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"base_dir":     s.BaseDir,
		"contacts_dir": s.ContactsDir,
		"index_file":   s.IndexFile,
	}
}

// SetData updates the configuration from the provided data.
func (s *StorageSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		var target *string
		switch key {
		case "base_dir":
			target = &s.BaseDir
		case "contacts_dir":
			target = &s.ContactsDir
		case "index_file":
			target = &s.IndexFile
		default:
			continue
		}

		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("invalid value type for %s: expected string, got %T", key, value)
		}
		*target = str
	}
	return nil
}

// Validate checks that every path is set and that the contacts directory and
// index file are plain names inside the base directory.
func (s *StorageSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(s.BaseDir) == "" {
		return fmt.Errorf("base_dir must not be empty")
	}
	if err := validateElement("contacts_dir", s.ContactsDir); err != nil {
		return err
	}
	if err := validateElement("index_file", s.IndexFile); err != nil {
		return err
	}
	if s.ContactsDir == s.IndexFile {
		return fmt.Errorf("contacts_dir and index_file must differ, both are %q", s.IndexFile)
	}
	return nil
}

func validateElement(key, value string) error {
	switch {
	case strings.TrimSpace(value) == "":
		return fmt.Errorf("%s must not be empty", key)
	case value == "." || value == "..":
		return fmt.Errorf("%s must name an entry, got %q", key, value)
	case strings.ContainsAny(value, `/\`):
		return fmt.Errorf("%s must be a single path element, got %q", key, value)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *StorageSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.BaseDir = defaultBaseDir
	s.ContactsDir = defaultContactsDir
	s.IndexFile = defaultIndexFile
}

// ContactsPath returns the contacts directory joined onto the base directory.
func (s *StorageSection) ContactsPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filepath.Join(s.BaseDir, s.ContactsDir)
}

// IndexPath returns the index file joined onto the base directory.
func (s *StorageSection) IndexPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filepath.Join(s.BaseDir, s.IndexFile)
}

// Override replaces any non-empty argument for the lifetime of the process,
// as command-line flags do.
func (s *StorageSection) Override(baseDir, contactsDir, indexFile string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if baseDir != "" {
		s.BaseDir = baseDir
	}
	if contactsDir != "" {
		s.ContactsDir = contactsDir
	}
	if indexFile != "" {
		s.IndexFile = indexFile
	}
}
