package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/filesystem"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/journal"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/proctable"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/supervisor"
)

// newSupervisor builds a supervisor against the live OS process backend.
func newSupervisor(c *cli.Container) (*supervisor.Supervisor, error) {
	binPath, err := c.Filesystem.DaemonBinaryPath(c.Adapter.DaemonExecutable())
	if err != nil {
		return nil, err
	}
	return supervisor.New(
		c.Adapter,
		proctable.NewSystemTable(),
		supervisor.NewExecLauncher(c.Adapter),
		supervisor.Config{
			BinaryPath: binPath,
			Args:       []string{"daemon"},
			Logger:     c.Logger,
		},
	), nil
}

// commandContext returns a context canceled by Ctrl-C or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// recordEvent appends a journal entry, best-effort: a broken journal
// must never fail the command that did the real work.
func recordEvent(c *cli.Container, kind, detail string) {
	j, err := journal.Open(c.Paths[filesystem.JournalDBPath])
	if err != nil {
		c.Logger.Warn("failed to open journal", logger.Fields{"error": err.Error()})
		return
	}
	defer j.Close()
	if err := j.Record(context.Background(), kind, detail); err != nil {
		c.Logger.Warn("failed to record journal event", logger.Fields{"error": err.Error()})
	}
}
