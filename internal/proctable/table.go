// Package proctable provides a point-in-time, read-only view of the OS
// process table plus termination requests against individual entries.
package proctable

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

// Record is one process table entry. Records are transient snapshots and
// are never persisted; a PID may be reused by the OS at any time after the
// snapshot is taken.
type Record struct {
	PID     int32
	Name    string
	Cmdline []string
}

// Table enumerates running processes and issues termination requests.
type Table interface {
	// Snapshot returns the current process table. Entries that disappear
	// mid-enumeration are silently skipped.
	Snapshot(ctx context.Context) ([]Record, error)

	// Terminate requests a graceful stop of the process (SIGTERM on Unix).
	Terminate(ctx context.Context, pid int32) error

	// Kill forcibly terminates the process (SIGKILL on Unix).
	Kill(ctx context.Context, pid int32) error
}

// SystemTable is the live OS-backed Table implementation.
type SystemTable struct{}

var _ Table = (*SystemTable)(nil)

// NewSystemTable returns a Table backed by the running operating system.
func NewSystemTable() *SystemTable {
	return &SystemTable{}
}

// Snapshot enumerates all running processes. Name or command line lookups
// that fail (the process exited, or access was denied) drop the entry
// rather than failing the whole snapshot.
func (t *SystemTable) Snapshot(ctx context.Context) ([]Record, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate processes: %w", err)
	}

	records := make([]Record, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		// Cmdline is best-effort; some entries deny access to it.
		args, _ := p.CmdlineSliceWithContext(ctx)
		records = append(records, Record{
			PID:     p.Pid,
			Name:    name,
			Cmdline: args,
		})
	}
	return records, nil
}

// Terminate sends a graceful termination request to pid.
func (t *SystemTable) Terminate(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return fmt.Errorf("process %d not found: %w", pid, err)
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		return fmt.Errorf("failed to terminate process %d: %w", pid, err)
	}
	return nil
}

// Kill forcibly terminates pid.
func (t *SystemTable) Kill(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return fmt.Errorf("process %d not found: %w", pid, err)
	}
	if err := p.KillWithContext(ctx); err != nil {
		return fmt.Errorf("failed to kill process %d: %w", pid, err)
	}
	return nil
}

// FilterByName returns the records whose executable name matches name
// exactly. Exact matching avoids the substring false-positives a loose
// "contains" scan would terminate.
func FilterByName(records []Record, name string) []Record {
	var matches []Record
	for _, r := range records {
		if r.Name == name {
			matches = append(matches, r)
		}
	}
	return matches
}
