package supervisor

import (
	"context"
	"os/exec"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/platform"
)

// Process is an exclusively-owned reference to a child the supervisor
// spawned itself.
type Process interface {
	Pid() int32
	Kill() error
	Wait(ctx context.Context) error
}

// Launcher spawns the daemon binary detached from the companion. It is a
// seam: tests substitute a fake implementation so no real process is ever
// created.
type Launcher interface {
	Launch(ctx context.Context, path string, args ...string) (Process, error)
}

// ExecLauncher launches real OS processes via os/exec with the platform's
// detach attributes applied.
type ExecLauncher struct {
	adapter platform.Adapter
}

var _ Launcher = (*ExecLauncher)(nil)

// NewExecLauncher returns a Launcher backed by os/exec.
func NewExecLauncher(adapter platform.Adapter) *ExecLauncher {
	return &ExecLauncher{adapter: adapter}
}

// Launch starts path detached. The child deliberately does not inherit
// stdio and is not bound to ctx: a detached daemon must outlive the
// command that started it.
func (l *ExecLauncher) Launch(ctx context.Context, path string, args ...string) (Process, error) {
	cmd := exec.Command(path, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	l.adapter.Detach(cmd)

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: cmd}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Pid() int32 {
	if p.cmd.Process == nil {
		return 0
	}
	return int32(p.cmd.Process.Pid)
}

func (p *execProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

// Wait reaps the child, bounded by ctx so a hung exit cannot stall the
// caller forever.
func (p *execProcess) Wait(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- p.cmd.Wait()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
