package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDUI is the identifier for the UI settings section
	SectionIDUI = "ui"

	// SearchModeSubstring matches the query as a case-insensitive substring.
	SearchModeSubstring = "substring"
	// SearchModeGlob matches the query as a case-insensitive glob pattern.
	SearchModeGlob = "glob"

	defaultConfirmDelete = true
	defaultToastDuration = 3 * time.Second
	defaultSearchMode    = SearchModeSubstring

	minToastDuration = 500 * time.Millisecond
	maxToastDuration = 30 * time.Second
)

// UISection manages user interface configuration settings.
type UISection struct {
	ConfirmDelete bool          `json:"confirm_delete"`
	ToastDuration time.Duration `json:"toast_duration"`
	SearchMode    string        `json:"search_mode"`
	mu            sync.RWMutex
}

// NewUISection creates a new UI section with default settings.
func NewUISection() *UISection {
	return &UISection{
		ConfirmDelete: defaultConfirmDelete,
		ToastDuration: defaultToastDuration,
		SearchMode:    defaultSearchMode,
	}
}

// ID returns the section identifier.
func (s *UISection) ID() string {
	return SectionIDUI
}

// Title returns the section title.
func (s *UISection) Title() string {
	return "UI Settings"
}

// Description returns the section description.
func (s *UISection) Description() string {
	return "Delete confirmation, notification timing and how the search box matches contacts."
}

// Data returns the current configuration data.
func (s *UISection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"confirm_delete": s.ConfirmDelete,
		"toast_duration": s.ToastDuration.String(),
		"search_mode":    s.SearchMode,
	}
}

// SetData updates the configuration from the provided data.
func (s *UISection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "confirm_delete":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for confirm_delete: expected bool, got %T", value)
			}
			s.ConfirmDelete = enabled

		case "toast_duration":
			// Durations are written as strings; hand-edited files may use nanoseconds.
			switch v := value.(type) {
			case string:
				d, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("invalid duration string for toast_duration: %w", err)
				}
				s.ToastDuration = d
			case float64:
				s.ToastDuration = time.Duration(v)
			case int64:
				s.ToastDuration = time.Duration(v)
			default:
				return fmt.Errorf("invalid value type for toast_duration: expected string or number, got %T", value)
			}

		case "search_mode":
			mode, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for search_mode: expected string, got %T", value)
			}
			s.SearchMode = mode

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *UISection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ToastDuration < minToastDuration || s.ToastDuration > maxToastDuration {
		return fmt.Errorf("toast_duration must be between %v and %v, got %v", minToastDuration, maxToastDuration, s.ToastDuration)
	}
	if s.SearchMode != SearchModeSubstring && s.SearchMode != SearchModeGlob {
		return fmt.Errorf("search_mode must be %q or %q, got %q", SearchModeSubstring, SearchModeGlob, s.SearchMode)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *UISection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ConfirmDelete = defaultConfirmDelete
	s.ToastDuration = defaultToastDuration
	s.SearchMode = defaultSearchMode
}

// ShouldConfirmDelete reports whether deleting asks for confirmation first.
func (s *UISection) ShouldConfirmDelete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ConfirmDelete
}

// GetToastDuration returns how long notifications stay on screen.
func (s *UISection) GetToastDuration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ToastDuration
}

// GetSearchMode returns the configured search mode.
func (s *UISection) GetSearchMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SearchMode
}
