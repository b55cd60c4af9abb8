package store

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/entrhq/rubrica/pkg/contact"
)

const recordExt = ".txt"

// AllocateFilename picks the record filename for c inside dir.
//
// The base candidate "{First}-{Last}.txt" is used when it is free or already
// holds c's identity. Otherwise "{First}-{Last}-{n}.txt" is probed for
// n = 1, 2, ... with the same test until a usable name is found. The probe is
// unbounded. A file that cannot be read counts as belonging to someone else.
func AllocateFilename(fsys afero.Fs, dir string, c contact.Contact) (string, error) {
	stem := c.Identity().FileStem()

	name := stem + recordExt
	for n := 1; ; n++ {
		usable, err := candidateUsable(fsys, filepath.Join(dir, name), c)
		if err != nil {
			return "", err
		}
		if usable {
			return name, nil
		}
		name = stem + "-" + strconv.Itoa(n) + recordExt
	}
}

func candidateUsable(fsys afero.Fs, path string, c contact.Contact) (bool, error) {
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return false, fmt.Errorf("store: stat %s: %w", path, err)
	}
	if !exists {
		return true, nil
	}
	return fileMatches(fsys, path, c), nil
}

// FindFilenameForIdentity returns the name of the record file in dir that
// holds c's identity.
//
// Only entries whose name starts with "{First}-{Last}" are inspected, in
// directory listing order; the first whose stored names equal c's is
// returned. ErrNotFound is returned when none match.
func FindFilenameForIdentity(fsys afero.Fs, dir string, c contact.Contact) (string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return "", fmt.Errorf("store: list %s: %w", dir, err)
	}

	prefix := c.Identity().FileStem()
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		if fileMatches(fsys, filepath.Join(dir, e.Name()), c) {
			return e.Name(), nil
		}
	}
	return "", ErrNotFound
}

// fileMatches reports whether the record at path stores c's identity.
// Unreadable files and files missing a name key never match.
func fileMatches(fsys afero.Fs, path string, c contact.Contact) bool {
	f, err := fsys.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	id, ok, err := contact.ReadIdentity(f)
	if err != nil || !ok {
		return false
	}
	return contact.SameIdentity(id, c)
}
