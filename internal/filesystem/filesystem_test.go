package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEnv(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", tempDir)
	} else {
		t.Setenv("HOME", tempDir)
	}
	return tempDir
}

func TestEnsureAppDirectory(t *testing.T) {
	tempHome := setupTestEnv(t)
	fs := NewAppFilesystem()

	appDir, err := fs.EnsureAppDirectory()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempHome, ".bambooclaw"), appDir)

	info, err := os.Stat(appDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second call is a no-op.
	again, err := fs.EnsureAppDirectory()
	require.NoError(t, err)
	assert.Equal(t, appDir, again)
}

func TestEnsureAllPaths(t *testing.T) {
	setupTestEnv(t)
	fs := NewAppFilesystem()

	paths, err := fs.EnsureAllPaths()
	require.NoError(t, err)

	for _, dirKey := range []PathType{AppDirectory, CacheDirectory, LogsDirectory, DataDirectory} {
		require.NotEmpty(t, paths[dirKey], "missing path for %s", dirKey)
		info, err := os.Stat(paths[dirKey])
		require.NoError(t, err, "directory for %s should exist", dirKey)
		assert.True(t, info.IsDir())
	}

	assert.Equal(t, filepath.Join(paths[AppDirectory], "config.toml"), paths[ConfigFilePath])
	assert.Equal(t, filepath.Join(paths[LogsDirectory], "clawctl.log"), paths[LogsFilePath])
	assert.Equal(t, filepath.Join(paths[DataDirectory], "journal.db"), paths[JournalDBPath])
}

func TestDaemonBinaryPath(t *testing.T) {
	tempHome := setupTestEnv(t)
	fs := NewAppFilesystem()

	path, err := fs.DaemonBinaryPath("bambooclaw")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempHome, ".bambooclaw", "bambooclaw"), path)
}
