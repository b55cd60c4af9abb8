package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func newMemFileStore(t *testing.T, content string) (*FileStore, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if content != "" {
		if err := afero.WriteFile(fsys, "/home/.rubrica/config.json", []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	store, err := NewFileStore("/home/.rubrica/config.json", WithFileSystem(fsys))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return store, fsys
}

func TestNewFileStore(t *testing.T) {
	t.Run("creates store with custom path", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")

		store, err := NewFileStore(configPath)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		if store.Path() != configPath {
			t.Errorf("Expected path %s, got %s", configPath, store.Path())
		}
		if store.IsModified() {
			t.Error("New store should not be modified")
		}
	})

	t.Run("defaults to home directory", func(t *testing.T) {
		store, err := NewFileStore("", WithFileSystem(afero.NewMemMapFs()))
		if err != nil {
			t.Fatalf("NewFileStore with empty path failed: %v", err)
		}

		homeDir, _ := os.UserHomeDir()
		expected := filepath.Join(homeDir, ".rubrica", "config.json")
		if store.Path() != expected {
			t.Errorf("Expected default path %s, got %s", expected, store.Path())
		}
	})

	t.Run("loads existing config file", func(t *testing.T) {
		store, _ := newMemFileStore(t, `{"version":"1","sections":{"storage":{"base_dir":"/data"}}}`)

		section, err := store.GetSection("storage")
		if err != nil {
			t.Fatalf("GetSection failed: %v", err)
		}
		if section["base_dir"] != "/data" {
			t.Errorf("Expected base_dir=/data, got %v", section["base_dir"])
		}
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, "/c.json", []byte("{"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := NewFileStore("/c.json", WithFileSystem(fsys)); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("tolerates missing sections key", func(t *testing.T) {
		store, _ := newMemFileStore(t, `{"version":"1"}`)
		all, _ := store.GetAll()
		if len(all) != 0 {
			t.Errorf("Expected no sections, got %v", all)
		}
	})
}

func TestFileStore_Save(t *testing.T) {
	t.Run("writes versioned document", func(t *testing.T) {
		store, fsys := newMemFileStore(t, "")
		if err := store.SetSection("ui", map[string]any{"search_mode": "glob"}); err != nil {
			t.Fatal(err)
		}
		if !store.IsModified() {
			t.Error("SetSection should mark store modified")
		}

		if err := store.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if store.IsModified() {
			t.Error("Save should clear modified flag")
		}

		b, err := afero.ReadFile(fsys, store.Path())
		if err != nil {
			t.Fatalf("Failed to read saved file: %v", err)
		}
		var doc fileLayout
		if err := json.Unmarshal(b, &doc); err != nil {
			t.Fatalf("Saved file is not JSON: %v", err)
		}
		if doc.Version != currentVersion {
			t.Errorf("Expected version %q, got %q", currentVersion, doc.Version)
		}
		if doc.Sections["ui"]["search_mode"] != "glob" {
			t.Errorf("Unexpected sections %v", doc.Sections)
		}

		if exists, _ := afero.Exists(fsys, store.Path()+".tmp"); exists {
			t.Error("Temp file should be renamed away")
		}
	})

	t.Run("creates directory on real disk", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "dir", "config.json")
		store, err := NewFileStore(configPath)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := os.Stat(configPath); err != nil {
			t.Errorf("Config file not created: %v", err)
		}
	})

	t.Run("reload sees saved data", func(t *testing.T) {
		store, fsys := newMemFileStore(t, "")
		_ = store.SetSection("storage", map[string]any{"index_file": "order.txt"})
		if err := store.Save(); err != nil {
			t.Fatal(err)
		}

		reloaded, err := NewFileStore(store.Path(), WithFileSystem(fsys))
		if err != nil {
			t.Fatal(err)
		}
		section, _ := reloaded.GetSection("storage")
		if section["index_file"] != "order.txt" {
			t.Errorf("Expected order.txt, got %v", section["index_file"])
		}
	})
}

func TestFileStore_Copies(t *testing.T) {
	t.Run("GetSection returns a copy", func(t *testing.T) {
		store, _ := newMemFileStore(t, "")
		_ = store.SetSection("s", map[string]any{"k": "v"})

		got, _ := store.GetSection("s")
		got["k"] = "changed"

		again, _ := store.GetSection("s")
		if again["k"] != "v" {
			t.Error("GetSection leaked internal map")
		}
	})

	t.Run("SetSection stores a copy", func(t *testing.T) {
		store, _ := newMemFileStore(t, "")
		data := map[string]any{"k": "v"}
		_ = store.SetSection("s", data)
		data["k"] = "changed"

		got, _ := store.GetSection("s")
		if got["k"] != "v" {
			t.Error("SetSection kept caller's map")
		}
	})

	t.Run("GetAll and SetAll deep copy", func(t *testing.T) {
		store, _ := newMemFileStore(t, "")
		in := map[string]map[string]any{"a": {"x": 1.0}, "b": {"y": 2.0}}
		_ = store.SetAll(in)
		in["a"]["x"] = 9.0

		all, _ := store.GetAll()
		if len(all) != 2 || all["a"]["x"] != 1.0 {
			t.Errorf("Unexpected data %v", all)
		}
		all["b"]["y"] = 9.0

		b, _ := store.GetSection("b")
		if b["y"] != 2.0 {
			t.Error("GetAll leaked internal map")
		}
	})

	t.Run("unknown section is empty", func(t *testing.T) {
		store, _ := newMemFileStore(t, "")
		got, err := store.GetSection("nope")
		if err != nil || len(got) != 0 {
			t.Errorf("Expected empty section, got %v, %v", got, err)
		}
	})
}
