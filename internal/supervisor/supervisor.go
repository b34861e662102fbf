// Package supervisor owns the lifecycle of the BambooClaw agent daemon:
// start, stop and status. The supervisor reconciles its own spawned
// handle against the OS process table on every query, because the
// companion can be closed and reopened while the detached daemon keeps
// running.
package supervisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/platform"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/proctable"
)

// State of the daemon as resolved by the supervisor.
type State string

const (
	// StateStopped means no owned handle and no matching table entry.
	StateStopped State = "stopped"
	// StateStarting is the transient state while the spawn is in flight.
	StateStarting State = "starting"
	// StateRunning means an owned handle or an adopted table entry is alive.
	StateRunning State = "running"
	// StateStopping is the transient state while termination is in flight.
	StateStopping State = "stopping"
	// StateUnknown is the transient diagnostic state reached when the local
	// handle is empty but the table holds a matching process. It resolves
	// immediately to StateRunning by adopting the record unowned.
	StateUnknown State = "unknown"
)

// DefaultStopTimeout bounds how long Stop waits for an owned child to exit.
const DefaultStopTimeout = 10 * time.Second

// handle is the supervisor's reference to the daemon. owned is true only
// when this supervisor spawned the process itself; an adopted handle has
// a PID discovered in the process table and no Process.
type handle struct {
	pid   int32
	owned bool
	proc  Process
}

// Config configures a Supervisor.
type Config struct {
	// BinaryPath is the full path of the daemon executable to spawn.
	BinaryPath string
	// Args are passed to the daemon on spawn.
	Args []string
	// StopTimeout bounds the wait for an owned child to exit after kill.
	StopTimeout time.Duration
	// Logger receives lifecycle events. Defaults to logger.Discard.
	Logger logger.Logger
}

// Supervisor manages the single daemon instance for this companion. All
// operations serialize on one mutex scoped to the handle, so concurrent
// start/stop/status calls never race on the same logical daemon.
type Supervisor struct {
	mu       sync.Mutex
	adapter  platform.Adapter
	table    proctable.Table
	launcher Launcher
	cfg      Config
	handle   *handle
	state    State
	log      logger.Logger
}

// New constructs a Supervisor. The process backend (table, launcher) is
// injected so tests can run against fakes.
func New(adapter platform.Adapter, table proctable.Table, launcher Launcher, cfg Config) *Supervisor {
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard
	}
	return &Supervisor{
		adapter:  adapter,
		table:    table,
		launcher: launcher,
		cfg:      cfg,
		state:    StateStopped,
		log:      cfg.Logger,
	}
}

// StartResult reports the outcome of a Start call.
type StartResult struct {
	State          State
	PID            int32
	AlreadyRunning bool
	Message        string
}

// StopResult reports the outcome of a Stop call. NotRunning is a soft
// condition, never an error. Failures collects per-process termination
// errors when Stop falls back to a table sweep.
type StopResult struct {
	NotRunning bool
	StoppedPID []int32
	Failures   []error
	Message    string
}

// Status describes the daemon's resolved state.
type Status struct {
	State State
	PID   int32
	Owned bool
}

// Start spawns the daemon unless one is already running. Starting an
// already-running daemon is success, not an error.
func (s *Supervisor) Start(ctx context.Context) (StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.resolveLocked(ctx)
	if err != nil {
		return StartResult{}, err
	}
	if status.State == StateRunning {
		s.log.Info("daemon already running", logger.Fields{"pid": status.PID, "owned": status.Owned})
		return StartResult{
			State:          StateRunning,
			PID:            status.PID,
			AlreadyRunning: true,
			Message:        fmt.Sprintf("daemon is already running (pid %d)", status.PID),
		}, nil
	}

	s.state = StateStarting
	s.log.Info("starting daemon", logger.Fields{"binary": s.cfg.BinaryPath})

	proc, err := s.launcher.Launch(ctx, s.cfg.BinaryPath, s.cfg.Args...)
	if err != nil {
		s.state = StateStopped
		return StartResult{}, &SpawnError{Path: s.cfg.BinaryPath, Err: err}
	}

	s.handle = &handle{pid: proc.Pid(), owned: true, proc: proc}
	s.state = StateRunning
	s.log.Info("daemon started", logger.Fields{"pid": proc.Pid()})

	return StartResult{
		State:   StateRunning,
		PID:     proc.Pid(),
		Message: fmt.Sprintf("daemon started (pid %d)", proc.Pid()),
	}, nil
}

// Stop terminates the daemon. An owned handle is killed and reaped; with
// no owned handle the process table is swept by exact executable name.
// Per-process termination failures are collected, not fatal: remaining
// matches are still attempted. Nothing running is a soft result.
func (s *Supervisor) Stop(ctx context.Context) (StopResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil && s.handle.owned && s.handle.proc != nil {
		return s.stopOwnedLocked(ctx)
	}

	// No owned child: discover by exact name and terminate every match.
	s.state = StateStopping
	snapshot, err := s.table.Snapshot(ctx)
	if err != nil {
		s.state = StateUnknown
		return StopResult{}, fmt.Errorf("failed to scan process table: %w", err)
	}

	matches := proctable.FilterByName(snapshot, s.adapter.DaemonExecutable())
	if len(matches) == 0 {
		s.handle = nil
		s.state = StateStopped
		return StopResult{NotRunning: true, Message: "daemon is not running"}, nil
	}

	var result StopResult
	for _, rec := range matches {
		if err := s.table.Terminate(ctx, rec.PID); err != nil {
			termErr := error(&PermissionError{PID: rec.PID, Name: rec.Name, Err: err})
			if !isPermissionDenied(err) {
				termErr = fmt.Errorf("failed to terminate %s (pid %d): %w", rec.Name, rec.PID, err)
			}
			s.log.Warn("termination failed, continuing", logger.Fields{"pid": rec.PID, "error": err.Error()})
			result.Failures = append(result.Failures, termErr)
			continue
		}
		result.StoppedPID = append(result.StoppedPID, rec.PID)
	}

	s.handle = nil
	s.state = StateStopped
	result.Message = fmt.Sprintf("stopped %d of %d daemon process(es)", len(result.StoppedPID), len(matches))
	s.log.Info("daemon stop sweep finished", logger.Fields{
		"stopped": len(result.StoppedPID),
		"failed":  len(result.Failures),
	})
	return result, nil
}

func (s *Supervisor) stopOwnedLocked(ctx context.Context) (StopResult, error) {
	h := s.handle
	s.state = StateStopping
	s.log.Info("stopping owned daemon", logger.Fields{"pid": h.pid})

	var result StopResult
	if err := h.proc.Kill(); err != nil {
		if isPermissionDenied(err) {
			result.Failures = append(result.Failures, &PermissionError{PID: h.pid, Name: s.adapter.DaemonExecutable(), Err: err})
		} else {
			// The child most likely exited on its own already.
			s.log.Warn("kill returned error", logger.Fields{"pid": h.pid, "error": err.Error()})
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.StopTimeout)
	defer cancel()
	if err := h.proc.Wait(waitCtx); err != nil && waitCtx.Err() != nil {
		result.Failures = append(result.Failures, fmt.Errorf("timed out waiting for pid %d to exit: %w", h.pid, err))
	}

	s.handle = nil
	s.state = StateStopped
	result.StoppedPID = []int32{h.pid}
	result.Message = fmt.Sprintf("daemon stopped (pid %d)", h.pid)
	return result, nil
}

// Status resolves the daemon's current state. Beyond refreshing the
// process table snapshot it has no side effects.
func (s *Supervisor) Status(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked(ctx)
}

// resolveLocked reconciles the local handle against the OS-observed
// state. Caller must hold s.mu.
func (s *Supervisor) resolveLocked(ctx context.Context) (Status, error) {
	snapshot, err := s.table.Snapshot(ctx)
	if err != nil {
		return Status{State: StateUnknown}, fmt.Errorf("failed to scan process table: %w", err)
	}
	matches := proctable.FilterByName(snapshot, s.adapter.DaemonExecutable())

	if s.handle != nil {
		for _, rec := range matches {
			if rec.PID == s.handle.pid {
				s.state = StateRunning
				return Status{State: StateRunning, PID: s.handle.pid, Owned: s.handle.owned}, nil
			}
		}
		// Handle is stale: the process exited behind our back.
		s.log.Debug("releasing stale daemon handle", logger.Fields{"pid": s.handle.pid})
		s.handle = nil
	}

	if len(matches) > 0 {
		// Unknown resolves to Running by adopting the discovered record
		// as an unowned reference.
		s.handle = &handle{pid: matches[0].PID, owned: false}
		s.state = StateRunning
		return Status{State: StateRunning, PID: matches[0].PID, Owned: false}, nil
	}

	s.state = StateStopped
	return Status{State: StateStopped}, nil
}
