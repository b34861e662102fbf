// Package shell provides the synchronous run-one-command primitive used
// by the prerequisite probes. Invocations are hidden on platforms where
// a child would otherwise flash a console window.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/platform"
)

// Runner executes short-lived commands and captures their output.
type Runner struct {
	adapter platform.Adapter
	log     logger.Logger
}

// NewRunner constructs a Runner.
func NewRunner(adapter platform.Adapter, log logger.Logger) *Runner {
	if log == nil {
		log = logger.Discard
	}
	return &Runner{adapter: adapter, log: log}
}

// Run executes name with args, bounded by ctx, and returns the trimmed
// stdout. A non-zero exit returns an error carrying the exit status and
// stderr.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	r.adapter.Hide(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debug("running command", logger.Fields{"command": name, "args": args})
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg != "" {
			return "", fmt.Errorf("command %s failed: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("command %s failed: %w", name, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
