// Package filesystem owns the companion's on-disk layout under the
// user's home directory.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

type PathType string

const (
	AppDirectory   PathType = "app"
	CacheDirectory PathType = "cache"
	LogsDirectory  PathType = "logs"
	LogsFilePath   PathType = "log_file"
	DataDirectory  PathType = "data"
	ConfigFilePath PathType = "config_file"
	JournalDBPath  PathType = "journal_db"
)

const (
	appDirName      = ".bambooclaw"
	configFileName  = "config.toml"
	logFileName     = "clawctl.log"
	journalFileName = "journal.db"
)

// Filesystem resolves and creates the application's directory tree.
type Filesystem struct {
	paths map[PathType]string
}

// NewAppFilesystem creates a new Filesystem instance.
func NewAppFilesystem() *Filesystem {
	return &Filesystem{}
}

// EnsureAllPaths creates the application directory tree and returns the
// resolved paths. File-type paths are resolved but not created; their
// owners create them on first write.
func (s *Filesystem) EnsureAllPaths() (map[PathType]string, error) {
	paths := map[PathType]string{}

	appDirectory, err := s.EnsureAppDirectory()
	if err != nil {
		return paths, err
	}
	paths[AppDirectory] = appDirectory

	for _, sub := range []struct {
		key  PathType
		name string
	}{
		{CacheDirectory, "cache"},
		{LogsDirectory, "logs"},
		{DataDirectory, "data"},
	} {
		dir := filepath.Join(appDirectory, sub.name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return paths, fmt.Errorf("failed to create %s directory: %w", sub.name, err)
		}
		paths[sub.key] = dir
	}

	paths[ConfigFilePath] = filepath.Join(appDirectory, configFileName)
	paths[LogsFilePath] = filepath.Join(paths[LogsDirectory], logFileName)
	paths[JournalDBPath] = filepath.Join(paths[DataDirectory], journalFileName)

	s.paths = paths
	return paths, nil
}

// EnsureAppDirectory creates ~/.bambooclaw if absent and returns it.
func (s *Filesystem) EnsureAppDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}

	appDir := filepath.Join(homeDir, appDirName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create app directory: %w", err)
	}
	return appDir, nil
}

// DaemonBinaryPath returns where the agent binary lives inside the app
// directory. binaryName carries the platform suffix already.
func (s *Filesystem) DaemonBinaryPath(binaryName string) (string, error) {
	appDir, err := s.EnsureAppDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, binaryName), nil
}
