package supervisor

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// SpawnError reports that the daemon binary could not be started: the
// executable is missing, not executable, or the OS refused to create the
// process. It is fatal to the Start call that produced it only.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn daemon %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// PermissionError reports that the OS rejected a termination request for
// one process table entry. It is aggregated by Stop and the emergency
// flush, never fatal to the remaining entries.
type PermissionError struct {
	PID  int32
	Name string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied terminating %s (pid %d): %v", e.Name, e.PID, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

func isPermissionDenied(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM)
}
