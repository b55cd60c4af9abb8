package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/rubrica/pkg/contact"
)

const (
	testContactsDir = "/book/contacts"
	testIndexPath   = "/book/index.txt"
)

type recordingLogger struct {
	debug, warn, errs []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

func newMemStore(t *testing.T) (*DirStore, afero.Fs, *recordingLogger) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	log := &recordingLogger{}
	s, err := NewDirStore(testContactsDir, testIndexPath, WithFs(fsys), WithLogger(log))
	require.NoError(t, err)
	return s, fsys, log
}

func listRecords(t *testing.T, fsys afero.Fs) []string {
	t.Helper()
	entries, err := afero.ReadDir(fsys, testContactsDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func readManifestLines(t *testing.T, fsys afero.Fs) []string {
	t.Helper()
	b, err := afero.ReadFile(fsys, testIndexPath)
	require.NoError(t, err)
	return strings.Fields(string(b))
}

var (
	mario = contact.Contact{FirstName: "Mario", LastName: "Rossi", Address: "Via A", Phone: "000", Age: 30}
	anna  = contact.Contact{FirstName: "Anna", LastName: "Bianchi", Address: "Via B", Phone: "111", Age: 25}
	luca  = contact.Contact{FirstName: "Luca", LastName: "Verdi", Address: "Via C", Phone: "222", Age: 41}
)

func TestNewDirStore_CreatesContactsDir(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, err := NewDirStore(testContactsDir, testIndexPath, WithFs(fsys))
	require.NoError(t, err)

	ok, err := afero.DirExists(fsys, testContactsDir)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoadAll_MissingManifest(t *testing.T) {
	s, _, _ := newMemStore(t)

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadAll_SkipsMissingRecordsAndBlankLines(t *testing.T) {
	s, fsys, log := newMemStore(t)

	require.NoError(t, afero.WriteFile(fsys, filepath.Join(testContactsDir, "Mario-Rossi.txt"), contact.Encode(mario), 0o644))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(testContactsDir, "Anna-Bianchi.txt"), contact.Encode(anna), 0o644))
	require.NoError(t, afero.WriteFile(fsys, testIndexPath, []byte("Anna-Bianchi.txt\r\n\n  Ghost-Entry.txt  \n  Mario-Rossi.txt"), 0o644))

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{anna, mario}, got)
	assert.Contains(t, strings.Join(log.debug, "\n"), "Ghost-Entry.txt")
}

func TestLoadAll_InvalidAgeIsLogged(t *testing.T) {
	s, fsys, log := newMemStore(t)

	record := "Nome: Mario\nCognome: Rossi\nEta: old\n"
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(testContactsDir, "Mario-Rossi.txt"), []byte(record), 0o644))
	require.NoError(t, afero.WriteFile(fsys, testIndexPath, []byte("Mario-Rossi.txt\n"), 0o644))

	got, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Age)
	require.Len(t, log.warn, 1)
	assert.Contains(t, log.warn[0], `"old"`)
}

func TestSaveAll_RoundTrip(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	contacts := []contact.Contact{mario, anna, luca}

	require.NoError(t, s.SaveAll(contacts))

	assert.Equal(t, []string{"Mario-Rossi.txt", "Anna-Bianchi.txt", "Luca-Verdi.txt"}, readManifestLines(t, fsys))

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, contacts, got)
}

func TestSaveAll_LongFieldLoadsBack(t *testing.T) {
	s, _, log := newMemStore(t)

	long := mario
	long.Address = strings.Repeat("x", 70000)
	require.NoError(t, long.Validate())
	require.NoError(t, s.SaveAll([]contact.Contact{long, anna}))

	loaded, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{long, anna}, loaded)
	assert.Empty(t, log.warn)
}

func TestSaveAll_Empty(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	require.NoError(t, s.SaveAll([]contact.Contact{mario}))

	require.NoError(t, s.SaveAll(nil))

	b, err := afero.ReadFile(fsys, testIndexPath)
	require.NoError(t, err)
	assert.Empty(t, b)
	assert.Empty(t, listRecords(t, fsys))
}

func TestSaveAll_Idempotent(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	contacts := []contact.Contact{mario, anna}

	require.NoError(t, s.SaveAll(contacts))
	firstManifest := readManifestLines(t, fsys)
	firstFiles := listRecords(t, fsys)

	require.NoError(t, s.SaveAll(contacts))
	assert.Equal(t, firstManifest, readManifestLines(t, fsys))
	assert.Equal(t, firstFiles, listRecords(t, fsys))
}

func TestSaveAll_OrphanCleanup(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(testContactsDir, "notes.md"), []byte("keep me"), 0o644))

	require.NoError(t, s.SaveAll([]contact.Contact{mario, anna, luca}))
	require.NoError(t, s.SaveAll([]contact.Contact{anna}))

	assert.Equal(t, []string{"Anna-Bianchi.txt", "notes.md"}, listRecords(t, fsys))
	assert.Equal(t, []string{"Anna-Bianchi.txt"}, readManifestLines(t, fsys))
}

func TestSaveAll_PreservesOrderChanges(t *testing.T) {
	s, fsys, _ := newMemStore(t)

	require.NoError(t, s.SaveAll([]contact.Contact{mario, anna}))
	require.NoError(t, s.SaveAll([]contact.Contact{anna, mario}))

	assert.Equal(t, []string{"Anna-Bianchi.txt", "Mario-Rossi.txt"}, readManifestLines(t, fsys))
}

// Editing a contact's non-identity fields overwrites its file in place.
func TestSaveAll_EditOverwritesSameFile(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	require.NoError(t, s.SaveAll([]contact.Contact{mario}))

	edited := mario
	edited.Phone = "999"
	edited.Age = 31
	require.NoError(t, s.SaveAll([]contact.Contact{edited}))

	assert.Equal(t, []string{"Mario-Rossi.txt"}, listRecords(t, fsys))
	assert.Equal(t, []string{"Mario-Rossi.txt"}, readManifestLines(t, fsys))

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{edited}, got)
}

// Renaming a contact moves it to a new file and removes the old one.
func TestSaveAll_RenameMovesFile(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	require.NoError(t, s.SaveAll([]contact.Contact{mario}))

	renamed := mario
	renamed.LastName = "Neri"
	require.NoError(t, s.SaveAll([]contact.Contact{renamed}))

	assert.Equal(t, []string{"Mario-Neri.txt"}, listRecords(t, fsys))
}

func TestSaveAll_SameIdentityAliasesOneFile(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	twin := mario
	twin.Phone = "555"

	require.NoError(t, s.SaveAll([]contact.Contact{mario, twin}))

	assert.Equal(t, []string{"Mario-Rossi.txt"}, listRecords(t, fsys))
	assert.Equal(t, []string{"Mario-Rossi.txt", "Mario-Rossi.txt"}, readManifestLines(t, fsys))

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{twin, twin}, got, "last write wins")
}

func TestSaveAll_CollisionGetsSuffix(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	// Both stems render as "A-B-C".
	first := contact.Contact{FirstName: "A-B", LastName: "C"}
	second := contact.Contact{FirstName: "A", LastName: "B-C"}

	require.NoError(t, s.SaveAll([]contact.Contact{first, second}))
	assert.Equal(t, []string{"A-B-C.txt", "A-B-C-1.txt"}, readManifestLines(t, fsys))

	require.NoError(t, s.SaveAll([]contact.Contact{first, second}))
	assert.Equal(t, []string{"A-B-C-1.txt", "A-B-C.txt"}, listRecords(t, fsys))

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{first, second}, got)
}

func TestSaveAll_SanitizedStemsStayDistinct(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	slash := contact.Contact{FirstName: "a/b", LastName: "c"}
	underscore := contact.Contact{FirstName: "a_b", LastName: "c"}

	require.NoError(t, s.SaveAll([]contact.Contact{slash, underscore}))

	assert.Equal(t, []string{"a_b-c.txt", "a_b-c-1.txt"}, readManifestLines(t, fsys))
	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{slash, underscore}, got)
}

func TestDeletePersona(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	require.NoError(t, s.SaveAll([]contact.Contact{mario, anna}))

	require.NoError(t, s.DeletePersona(mario))

	assert.Equal(t, []string{"Anna-Bianchi.txt"}, listRecords(t, fsys))
	assert.Equal(t, []string{"Mario-Rossi.txt", "Anna-Bianchi.txt"}, readManifestLines(t, fsys),
		"manifest is left for the following save")

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{anna}, got)
}

func TestDeletePersona_NotFound(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	require.NoError(t, s.SaveAll([]contact.Contact{anna}))

	require.NoError(t, s.DeletePersona(mario))
	assert.Equal(t, []string{"Anna-Bianchi.txt"}, listRecords(t, fsys))
}

func TestDeletePersona_PicksMatchingCollisionFile(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	first := contact.Contact{FirstName: "A-B", LastName: "C"}
	second := contact.Contact{FirstName: "A", LastName: "B-C"}
	require.NoError(t, s.SaveAll([]contact.Contact{first, second}))

	require.NoError(t, s.DeletePersona(second))

	assert.Equal(t, []string{"A-B-C.txt"}, listRecords(t, fsys))
}

func TestDeleteThenSave(t *testing.T) {
	s, fsys, _ := newMemStore(t)
	contacts := []contact.Contact{mario, anna, luca}
	require.NoError(t, s.SaveAll(contacts))

	require.NoError(t, s.DeletePersona(anna))
	contacts = []contact.Contact{mario, luca}
	require.NoError(t, s.SaveAll(contacts))

	assert.Equal(t, []string{"Luca-Verdi.txt", "Mario-Rossi.txt"}, listRecords(t, fsys))
	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, contacts, got)
}

// The full add, edit, delete cycle a user performs from the UI.
func TestMarioRossiScenario(t *testing.T) {
	s, fsys, _ := newMemStore(t)

	contacts := []contact.Contact{mario}
	require.NoError(t, s.SaveAll(contacts))
	assert.Equal(t, "Nome: Mario\nCognome: Rossi\nIndirizzo: Via A\nTelefono: 000\nEta: 30\n",
		mustReadFile(t, fsys, filepath.Join(testContactsDir, "Mario-Rossi.txt")))

	contacts[0].Phone = "111"
	require.NoError(t, s.SaveAll(contacts))
	assert.Equal(t, []string{"Mario-Rossi.txt"}, listRecords(t, fsys), "no -1 file after an edit")
	assert.Contains(t, mustReadFile(t, fsys, filepath.Join(testContactsDir, "Mario-Rossi.txt")), "Telefono: 111")

	require.NoError(t, s.DeletePersona(contacts[0]))
	contacts = contacts[:0]
	require.NoError(t, s.SaveAll(contacts))

	assert.Empty(t, listRecords(t, fsys))
	b, err := afero.ReadFile(fsys, testIndexPath)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func mustReadFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	b, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(b)
}

// failingFs refuses to open one file for writing.
type failingFs struct {
	afero.Fs
	name string
}

func (f failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if filepath.Base(name) == f.name && flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: errors.New("permission denied")}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestSaveAll_WriteFailureContinues(t *testing.T) {
	mem := afero.NewMemMapFs()
	log := &recordingLogger{}
	s, err := NewDirStore(testContactsDir, testIndexPath, WithFs(failingFs{Fs: mem, name: "Anna-Bianchi.txt"}), WithLogger(log))
	require.NoError(t, err)

	err = s.SaveAll([]contact.Contact{mario, anna, luca})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Anna-Bianchi.txt")
	assert.NotEmpty(t, log.errs)

	assert.Equal(t, []string{"Mario-Rossi.txt", "Anna-Bianchi.txt", "Luca-Verdi.txt"}, readManifestLines(t, mem))
	assert.Equal(t, []string{"Luca-Verdi.txt", "Mario-Rossi.txt"}, listRecords(t, mem))
}

func TestSaveAll_FailedRewriteKeepsPreviousRecord(t *testing.T) {
	mem := afero.NewMemMapFs()
	s, err := NewDirStore(testContactsDir, testIndexPath, WithFs(mem))
	require.NoError(t, err)
	require.NoError(t, s.SaveAll([]contact.Contact{mario, anna, luca}))

	failing, err := NewDirStore(testContactsDir, testIndexPath, WithFs(failingFs{Fs: mem, name: "Anna-Bianchi.txt"}))
	require.NoError(t, err)

	edited := anna
	edited.Phone = "999"
	err = failing.SaveAll([]contact.Contact{mario, edited, luca})
	require.Error(t, err)

	assert.Equal(t, []string{"Anna-Bianchi.txt", "Luca-Verdi.txt", "Mario-Rossi.txt"}, listRecords(t, mem))
	assert.Equal(t, []string{"Mario-Rossi.txt", "Anna-Bianchi.txt", "Luca-Verdi.txt"}, readManifestLines(t, mem))

	loaded, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{mario, anna, luca}, loaded, "previous copy of the failed record survives")
}

func TestDirStore_OsFs(t *testing.T) {
	base := t.TempDir()
	contactsDir := filepath.Join(base, "contacts")
	indexPath := filepath.Join(base, "index.txt")

	s, err := NewDirStore(contactsDir, indexPath)
	require.NoError(t, err)

	require.NoError(t, s.SaveAll([]contact.Contact{mario, anna}))

	b, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	assert.Equal(t, "Mario-Rossi.txt\nAnna-Bianchi.txt\n", string(b))

	_, err = os.Stat(indexPath + ".tmp")
	assert.True(t, errors.Is(err, os.ErrNotExist), "temporary manifest is renamed away")

	reopened, err := NewDirStore(contactsDir, indexPath)
	require.NoError(t, err)
	got, err := reopened.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []contact.Contact{mario, anna}, got)
}
