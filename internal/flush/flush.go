// Package flush implements the emergency kill-switch: stop the daemon,
// force-terminate every auxiliary process the agent may have left behind,
// and reset the agent's scratch directory. Every sub-step is best-effort;
// the operation exists precisely to make forward progress when normal
// operations are failing, so it always runs to completion and reports an
// aggregate outcome.
package flush

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/platform"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/proctable"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/supervisor"
)

// DaemonStopper is the slice of the supervisor the flusher needs.
type DaemonStopper interface {
	Stop(ctx context.Context) (supervisor.StopResult, error)
}

// StepFailure records one failed sub-step without aborting the rest.
type StepFailure struct {
	Step   string
	Target string
	Err    error
}

func (f StepFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Step, f.Target, f.Err)
}

// Report is the aggregate outcome of one flush. A non-empty Failures
// list means partial failure; the flush itself never fails as a whole.
type Report struct {
	DaemonStopped bool
	KilledPIDs    []int32
	ScratchReset  bool
	Failures      []StepFailure
}

// OK reports whether every sub-step fully succeeded.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// Summary renders a single human-readable outcome line.
func (r Report) Summary() string {
	if r.OK() {
		return fmt.Sprintf("flush complete: %d auxiliary process(es) terminated, scratch directory reset", len(r.KilledPIDs))
	}
	return fmt.Sprintf("flush finished with %d failure(s): %d process(es) terminated, scratch reset=%v",
		len(r.Failures), len(r.KilledPIDs), r.ScratchReset)
}

// Config configures a Flusher.
type Config struct {
	// ScratchDir overrides the adapter's scratch directory. Empty means
	// use the adapter's.
	ScratchDir string
	// SelfPID and SelfName identify this very application so the sweep
	// never terminates its own process. They default to the current
	// process.
	SelfPID  int32
	SelfName string
	Logger   logger.Logger
}

// Flusher executes the emergency flush. Safe to invoke repeatedly.
type Flusher struct {
	adapter platform.Adapter
	table   proctable.Table
	stopper DaemonStopper
	cfg     Config
	log     logger.Logger
}

// New constructs a Flusher.
func New(adapter platform.Adapter, table proctable.Table, stopper DaemonStopper, cfg Config) *Flusher {
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = adapter.ScratchDir()
	}
	if cfg.SelfPID == 0 {
		cfg.SelfPID = int32(os.Getpid())
	}
	if cfg.SelfName == "" {
		if exe, err := os.Executable(); err == nil {
			cfg.SelfName = filepath.Base(exe)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard
	}
	return &Flusher{
		adapter: adapter,
		table:   table,
		stopper: stopper,
		cfg:     cfg,
		log:     cfg.Logger,
	}
}

// Flush runs the full sequence: daemon stop, kill-list sweep, scratch
// reset. Sub-step failures are collected into the report; none of them
// stops the remaining steps.
func (f *Flusher) Flush(ctx context.Context) Report {
	var report Report

	f.stopDaemon(ctx, &report)
	f.sweepKillList(ctx, &report)
	f.resetScratch(&report)

	f.log.Info("emergency flush finished", logger.Fields{
		"killed":   len(report.KilledPIDs),
		"failures": len(report.Failures),
	})
	return report
}

func (f *Flusher) stopDaemon(ctx context.Context, report *Report) {
	result, err := f.stopper.Stop(ctx)
	if err != nil {
		report.Failures = append(report.Failures, StepFailure{Step: "stop daemon", Target: f.adapter.DaemonExecutable(), Err: err})
		return
	}
	// "Not running" is exactly what a flush wants; both outcomes count
	// as the daemon being down.
	report.DaemonStopped = true
	for _, stopErr := range result.Failures {
		report.Failures = append(report.Failures, StepFailure{Step: "stop daemon", Target: f.adapter.DaemonExecutable(), Err: stopErr})
	}
}

func (f *Flusher) sweepKillList(ctx context.Context, report *Report) {
	snapshot, err := f.table.Snapshot(ctx)
	if err != nil {
		report.Failures = append(report.Failures, StepFailure{Step: "scan process table", Target: "", Err: err})
		return
	}

	for _, name := range f.adapter.KillList() {
		for _, rec := range proctable.FilterByName(snapshot, name) {
			if rec.PID == f.cfg.SelfPID || rec.Name == f.cfg.SelfName {
				// The supervisor must never terminate itself.
				f.log.Debug("skipping own process in kill sweep", logger.Fields{"pid": rec.PID})
				continue
			}
			if err := f.table.Kill(ctx, rec.PID); err != nil {
				report.Failures = append(report.Failures, StepFailure{
					Step:   "kill process",
					Target: fmt.Sprintf("%s (pid %d)", rec.Name, rec.PID),
					Err:    err,
				})
				continue
			}
			report.KilledPIDs = append(report.KilledPIDs, rec.PID)
		}
	}
}

func (f *Flusher) resetScratch(report *Report) {
	dir := f.cfg.ScratchDir
	if err := os.RemoveAll(dir); err != nil {
		report.Failures = append(report.Failures, StepFailure{Step: "remove scratch dir", Target: dir, Err: err})
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		report.Failures = append(report.Failures, StepFailure{Step: "recreate scratch dir", Target: dir, Err: err})
		return
	}
	report.ScratchReset = true
}
