package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// readManifest returns the record filenames listed in the manifest at path,
// in order. Lines are trimmed and blank lines skipped.
//
// A missing manifest is reported through the returned error so callers can
// test it with errors.Is(err, fs.ErrNotExist). On a read failure part way
// through, the names collected so far are returned along with the error.
func readManifest(fsys afero.Fs, path string) ([]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open manifest %s: %w", path, err)
	}
	defer f.Close()

	var names []string
	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return names, fmt.Errorf("store: read manifest %s: %w", path, err)
		}
	}
}

// writeManifest replaces the manifest at path with names, one per line.
// The content goes to a temporary sibling first and is renamed into place.
func writeManifest(fsys afero.Fs, path string, names []string) error {
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte('\n')
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(fsys, tmp, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("store: write manifest: %w", err)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("store: replace manifest %s: %w", path, err)
	}
	return nil
}
