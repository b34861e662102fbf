//go:build !windows
// +build !windows

package platform

import (
	"os/exec"
	"runtime"
	"syscall"
)

type unixAdapter struct{}

// New returns the Adapter for the current operating system.
func New() (Adapter, error) {
	switch runtime.GOOS {
	case "linux", "darwin":
		return unixAdapter{}, nil
	default:
		return nil, ErrUnsupportedPlatform
	}
}

func (unixAdapter) OS() string {
	return runtime.GOOS
}

func (unixAdapter) DaemonExecutable() string {
	return "bambooclaw"
}

func (unixAdapter) KillList() []string {
	return []string{"bambooclaw", "python3", "python"}
}

func (unixAdapter) ScratchDir() string {
	return scratchDir()
}

// Detach places the child in its own process group so it survives the
// parent exiting and is not reached by terminal signals.
func (unixAdapter) Detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
}

// Hide is a no-op on Unix-like systems; there is no console window to hide.
func (unixAdapter) Hide(cmd *exec.Cmd) {}
