// Package platform resolves OS-specific facts about the BambooClaw agent:
// the daemon executable name, process spawn attributes, the auxiliary
// kill-list and the scratch directory. All divergence between operating
// systems lives behind the Adapter interface so the rest of the
// application is platform-agnostic.
package platform

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrUnsupportedPlatform is returned by New when the current operating
// system is not one the companion knows how to manage the agent on.
// It is a configuration-time failure, not a runtime one.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// scratchDirName is the dedicated subdirectory of the system temp root
// owned by the agent. EmergencyFlush wipes this directory and nothing else.
const scratchDirName = "bambooclaw"

// Adapter provides the platform-dependent facts the supervisor and the
// emergency flush need. Implementations are pure: no side effects, no
// runtime failure modes.
type Adapter interface {
	// OS returns the platform identity (runtime.GOOS value).
	OS() string

	// DaemonExecutable returns the canonical agent binary name including
	// the platform suffix convention (".exe" on Windows).
	DaemonExecutable() string

	// KillList returns the ordered list of auxiliary process names that
	// are unsafe to leave running after an emergency flush.
	KillList() []string

	// ScratchDir returns the scratch/temp directory owned by the agent.
	ScratchDir() string

	// Detach configures cmd so the spawned child outlives the parent and
	// does not inherit a visible console or window.
	Detach(cmd *exec.Cmd)

	// Hide configures cmd for a short-lived synchronous invocation that
	// must not flash a terminal window.
	Hide(cmd *exec.Cmd)
}

func scratchDir() string {
	return filepath.Join(os.TempDir(), scratchDirName)
}
