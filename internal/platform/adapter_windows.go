//go:build windows
// +build windows

package platform

import (
	"os/exec"
	"runtime"
	"syscall"
)

// CREATE_NO_WINDOW keeps console subsystem children from opening a
// visible terminal window.
const createNoWindow = 0x08000000

type windowsAdapter struct{}

// New returns the Adapter for the current operating system.
func New() (Adapter, error) {
	return windowsAdapter{}, nil
}

func (windowsAdapter) OS() string {
	return runtime.GOOS
}

func (windowsAdapter) DaemonExecutable() string {
	return "bambooclaw.exe"
}

func (windowsAdapter) KillList() []string {
	return []string{"bambooclaw.exe", "python.exe", "pythonw.exe", "cmd.exe", "powershell.exe"}
}

func (windowsAdapter) ScratchDir() string {
	return scratchDir()
}

// Detach starts the child in a new process group without a console window
// so it keeps running after the companion exits.
func (windowsAdapter) Detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | createNoWindow,
	}
}

// Hide suppresses the console window for synchronous invocations.
func (windowsAdapter) Hide(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
