// Package config holds rubrica's persistent settings: a JSON file of named
// sections, the sections themselves and a process-wide manager.
package config

import (
	"sync"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates and loads the global configuration manager from
// configPath (DefaultPath when empty). Call it once at startup.
func Initialize(configPath string) error {
	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}
	return InitializeWithStore(store)
}

// InitializeWithStore is Initialize on an existing store.
func InitializeWithStore(store Store) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	manager := NewManager(store)

	if err := manager.RegisterSection(NewStorageSection()); err != nil {
		return err
	}
	if err := manager.RegisterSection(NewUISection()); err != nil {
		return err
	}

	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}

	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetStorage returns the storage section from global config.
// Returns nil if config is not initialized.
func GetStorage() *StorageSection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDStorage)
	if !ok {
		return nil
	}

	storage, ok := section.(*StorageSection)
	if !ok {
		return nil
	}
	return storage
}

// GetUI returns the UI section from global config.
// Returns nil if config is not initialized.
func GetUI() *UISection {
	if !IsInitialized() {
		return nil
	}

	section, ok := Global().GetSection(SectionIDUI)
	if !ok {
		return nil
	}

	ui, ok := section.(*UISection)
	if !ok {
		return nil
	}
	return ui
}
