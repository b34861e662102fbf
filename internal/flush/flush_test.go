package flush

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/proctable"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/supervisor"
)

type fakeAdapter struct {
	scratch  string
	killList []string
}

func (a fakeAdapter) OS() string               { return "testos" }
func (a fakeAdapter) DaemonExecutable() string { return "fakeclaw" }

func (a fakeAdapter) KillList() []string {
	if a.killList != nil {
		return a.killList
	}
	return []string{"fakeclaw", "python3", "helper-shell"}
}

func (a fakeAdapter) ScratchDir() string   { return a.scratch }
func (a fakeAdapter) Detach(cmd *exec.Cmd) {}
func (a fakeAdapter) Hide(cmd *exec.Cmd)   {}

type fakeTable struct {
	mu      sync.Mutex
	records []proctable.Record
	killErr map[int32]error
	killed  []int32
}

func (t *fakeTable) Snapshot(ctx context.Context) ([]proctable.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]proctable.Record, len(t.records))
	copy(out, t.records)
	return out, nil
}

func (t *fakeTable) Terminate(ctx context.Context, pid int32) error {
	return t.Kill(ctx, pid)
}

func (t *fakeTable) Kill(ctx context.Context, pid int32) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err, ok := t.killErr[pid]; ok {
		return err
	}
	kept := t.records[:0]
	for _, r := range t.records {
		if r.PID != pid {
			kept = append(kept, r)
		}
	}
	t.records = kept
	t.killed = append(t.killed, pid)
	return nil
}

type fakeStopper struct {
	result supervisor.StopResult
	err    error
	calls  int
}

func (s *fakeStopper) Stop(ctx context.Context) (supervisor.StopResult, error) {
	s.calls++
	return s.result, s.err
}

func newTestFlusher(t *testing.T, table *fakeTable, stopper *fakeStopper) (*Flusher, string) {
	t.Helper()
	scratch := filepath.Join(t.TempDir(), "scratch")
	f := New(fakeAdapter{scratch: scratch}, table, stopper, Config{
		ScratchDir: scratch,
		SelfPID:    999,
		SelfName:   "clawctl",
	})
	return f, scratch
}

func TestFlushHappyPath(t *testing.T) {
	table := &fakeTable{
		records: []proctable.Record{
			{PID: 10, Name: "python3"},
			{PID: 11, Name: "helper-shell"},
			{PID: 12, Name: "unrelated"},
		},
		killErr: map[int32]error{},
	}
	stopper := &fakeStopper{result: supervisor.StopResult{NotRunning: true}}
	f, scratch := newTestFlusher(t, table, stopper)

	report := f.Flush(context.Background())

	assert.True(t, report.OK(), "report: %+v", report)
	assert.True(t, report.DaemonStopped, "a not-running daemon still counts as stopped")
	assert.ElementsMatch(t, []int32{10, 11}, report.KilledPIDs)
	assert.Equal(t, 1, stopper.calls)

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err, "scratch dir must exist after flush")
	assert.Empty(t, entries, "scratch dir must be empty after flush")
}

func TestFlushIsIdempotent(t *testing.T) {
	table := &fakeTable{killErr: map[int32]error{}}
	stopper := &fakeStopper{result: supervisor.StopResult{NotRunning: true}}
	f, scratch := newTestFlusher(t, table, stopper)

	// Pre-populate the scratch dir so the first flush has something to wipe.
	require.NoError(t, os.MkdirAll(scratch, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(scratch, "leftover.py"), []byte("x"), 0644))

	first := f.Flush(context.Background())
	second := f.Flush(context.Background())

	assert.True(t, first.OK())
	assert.True(t, second.OK())

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFlushNeverKillsSelf(t *testing.T) {
	table := &fakeTable{
		records: []proctable.Record{
			{PID: 999, Name: "python3"}, // own PID, different name
			{PID: 50, Name: "clawctl"},  // own image name, different PID
			{PID: 51, Name: "fakeclaw"}, // legitimate target
		},
		killErr: map[int32]error{},
	}
	stopper := &fakeStopper{result: supervisor.StopResult{NotRunning: true}}
	scratch := filepath.Join(t.TempDir(), "scratch")
	// A kill list that names the companion's own image must still never
	// terminate the companion.
	adapter := fakeAdapter{scratch: scratch, killList: []string{"fakeclaw", "python3", "clawctl"}}
	f := New(adapter, table, stopper, Config{
		ScratchDir: scratch,
		SelfPID:    999,
		SelfName:   "clawctl",
	})

	report := f.Flush(context.Background())

	assert.NotContains(t, report.KilledPIDs, int32(999))
	assert.NotContains(t, report.KilledPIDs, int32(50))
	assert.Contains(t, report.KilledPIDs, int32(51))
}

func TestFlushAggregatesFailures(t *testing.T) {
	table := &fakeTable{
		records: []proctable.Record{
			{PID: 60, Name: "python3"},
			{PID: 61, Name: "python3"},
		},
		killErr: map[int32]error{60: syscall.EPERM},
	}
	stopper := &fakeStopper{err: errors.New("supervisor wedged")}
	f, scratch := newTestFlusher(t, table, stopper)

	report := f.Flush(context.Background())

	assert.False(t, report.OK())
	require.Len(t, report.Failures, 2, "stop failure and one kill failure")
	assert.False(t, report.DaemonStopped)
	assert.Equal(t, []int32{61}, report.KilledPIDs, "sweep continues past a failed kill")
	assert.True(t, report.ScratchReset, "scratch reset still runs after earlier failures")

	_, err := os.Stat(scratch)
	assert.NoError(t, err)
}

func TestReportSummary(t *testing.T) {
	ok := Report{KilledPIDs: []int32{1, 2}, ScratchReset: true, DaemonStopped: true}
	assert.Contains(t, ok.Summary(), "flush complete")

	bad := Report{Failures: []StepFailure{{Step: "kill process", Target: "python3 (pid 7)", Err: syscall.EPERM}}}
	assert.Contains(t, bad.Summary(), "1 failure(s)")
}
