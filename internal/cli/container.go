// Package cli wires the application's shared dependencies into one
// container handed to every command constructor.
package cli

import (
	"fmt"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/config"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/filesystem"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/platform"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/theme"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.AppConfig
	Filesystem  *filesystem.Filesystem
	Paths       map[filesystem.PathType]string
	Logger      logger.Logger
	ThemeMgr    *theme.Manager
	Adapter     platform.Adapter
	ConfigStore *config.Store
}

// InitOptions contains options for initialization
type InitOptions struct {
	Version  string
	Commit   string
	Date     string
	LogLevel logger.LogLevel
}

// NewContainer creates and initializes all application dependencies.
// An unsupported platform fails here, at startup, before any command runs.
func NewContainer(opts InitOptions) (*Container, error) {
	if opts.Version == "" {
		return nil, fmt.Errorf("version is required")
	}
	if opts.LogLevel == "" {
		opts.LogLevel = logger.InfoLevel
	}

	adapter, err := platform.New()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve platform: %w", err)
	}

	container := &Container{
		Config: &config.AppConfig{
			Name: "BambooClaw",
			Repository: config.Repository{
				Owner: "Enigmara-Technologies",
				Repo:  "bambooclaw-core",
			},
			Version: config.Version{
				Version: opts.Version,
				Commit:  opts.Commit,
				Date:    opts.Date,
			},
		},
		Adapter:  adapter,
		ThemeMgr: theme.NewManager(theme.NewDefaultTheme()),
	}

	container.Filesystem = filesystem.NewAppFilesystem()
	container.Paths, err = container.Filesystem.EnsureAllPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to ensure application paths: %w", err)
	}

	container.ConfigStore = config.NewStore(container.Paths[filesystem.ConfigFilePath])

	container.Logger, err = logger.NewZapLogger(logger.Config{
		FilePath: container.Paths[filesystem.LogsFilePath],
		LogLevel: opts.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return container, nil
}
