package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the package at a temporary log directory and resets the
// once-guarded globals, restoring them when the test ends.
func setupTestDir(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()

	origOverride := logDirOverride
	origLogDir := logDir
	origInitErr := initErr
	origSessionID := sessionID

	logDirOverride = tempDir
	logDir = ""
	initErr = nil
	initOnce = sync.Once{}
	sessionID = ""
	sessionIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDirOverride = origOverride
		logDir = origLogDir
		initErr = origInitErr
		initOnce = sync.Once{}
		sessionID = origSessionID
		sessionIDOnce = sync.Once{}
	})
	return tempDir
}

func TestNewLogger(t *testing.T) {
	dir := setupTestDir(t)

	logger, err := NewLogger("store")
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, "store", logger.component)
	assert.NotEmpty(t, logger.SessionID())
	assert.Equal(t, dir, filepath.Dir(logger.LogPath()))
	assert.FileExists(t, logger.LogPath())
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)

	logger.Printf("Test message %d", 123)
	logger.Debugf("Debug message")
	logger.Infof("Info message")
	logger.Warnf("Warning message")
	logger.Errorf("Error message")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	for _, pattern := range []string{
		"[test] [INFO] Test message 123",
		"[test] [DEBUG] Debug message",
		"[test] [INFO] Info message",
		"[test] [WARN] Warning message",
		"[test] [ERROR] Error message",
	} {
		assert.Contains(t, string(content), pattern)
	}
}

func TestMultipleComponentsShareFile(t *testing.T) {
	setupTestDir(t)

	logger1, err := NewLogger("tui")
	require.NoError(t, err)
	defer logger1.Close()

	logger2, err := NewLogger("store")
	require.NoError(t, err)
	defer logger2.Close()

	assert.Equal(t, logger1.SessionID(), logger2.SessionID())
	assert.Equal(t, logger1.LogPath(), logger2.LogPath())

	logger1.Infof("from tui")
	logger2.Infof("from store")

	content, err := os.ReadFile(logger1.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[tui]")
	assert.Contains(t, string(content), "[store]")
}

func TestNew_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New("cli", &buf)

	logger.Warnf("disk %s", "full")

	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}\] \[cli\] \[WARN\] disk full\n$`, buf.String())
	assert.Empty(t, logger.LogPath())
	assert.Same(t, &buf, logger.Writer())
	assert.NoError(t, logger.Close())
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("cli", &buf)
	logger.SetLevel(LevelWarn)

	logger.Debugf("hidden")
	logger.Infof("hidden too")
	logger.Warnf("shown")
	logger.Errorf("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestDiscard(t *testing.T) {
	logger := Discard("quiet")
	logger.Errorf("nobody hears this")
	assert.NoError(t, logger.Close())
}

func TestGetSessionID(t *testing.T) {
	setupTestDir(t)

	id1 := GetSessionID()
	id2 := GetSessionID()
	assert.Equal(t, id1, id2)
	assert.NotEmpty(t, id1)
}

func TestGetLogDirectory(t *testing.T) {
	want := setupTestDir(t)

	dir, err := GetLogDirectory()
	require.NoError(t, err)
	assert.Equal(t, want, dir)
	assert.DirExists(t, dir)
}

func TestLoggerClose(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close(), "second close is a no-op")
}

func TestLogPathFormat(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)
	defer logger.Close()

	fileName := filepath.Base(logger.LogPath())
	require.True(t, strings.HasSuffix(fileName, "-rubrica.log"), fileName)
	assert.Equal(t, logger.SessionID(), strings.TrimSuffix(fileName, "-rubrica.log"))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "LEVEL(9)", Level(9).String())
}
