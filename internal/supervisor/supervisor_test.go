package supervisor

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/proctable"
)

const fakeDaemonName = "fakeclaw"

type fakeAdapter struct{}

func (fakeAdapter) OS() string               { return "testos" }
func (fakeAdapter) DaemonExecutable() string { return fakeDaemonName }
func (fakeAdapter) KillList() []string       { return []string{fakeDaemonName, "python3"} }
func (fakeAdapter) ScratchDir() string       { return "/tmp/fakeclaw" }
func (fakeAdapter) Detach(cmd *exec.Cmd)     {}
func (fakeAdapter) Hide(cmd *exec.Cmd)       {}

// fakeTable is an in-memory process table the fake launcher registers
// spawned processes into.
type fakeTable struct {
	mu      sync.Mutex
	records []proctable.Record
	termErr map[int32]error
	snapErr error
}

func (t *fakeTable) Snapshot(ctx context.Context) ([]proctable.Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.snapErr != nil {
		return nil, t.snapErr
	}
	out := make([]proctable.Record, len(t.records))
	copy(out, t.records)
	return out, nil
}

func (t *fakeTable) Terminate(ctx context.Context, pid int32) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err, ok := t.termErr[pid]; ok {
		return err
	}
	t.removeLocked(pid)
	return nil
}

func (t *fakeTable) Kill(ctx context.Context, pid int32) error {
	return t.Terminate(ctx, pid)
}

func (t *fakeTable) add(rec proctable.Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(t.records, rec)
}

func (t *fakeTable) remove(pid int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(pid)
}

func (t *fakeTable) removeLocked(pid int32) {
	kept := t.records[:0]
	for _, r := range t.records {
		if r.PID != pid {
			kept = append(kept, r)
		}
	}
	t.records = kept
}

type fakeProcess struct {
	pid   int32
	table *fakeTable
}

func (p *fakeProcess) Pid() int32 { return p.pid }

func (p *fakeProcess) Kill() error {
	p.table.remove(p.pid)
	return nil
}

func (p *fakeProcess) Wait(ctx context.Context) error { return nil }

type fakeLauncher struct {
	mu         sync.Mutex
	table      *fakeTable
	nextPID    int32
	spawnCount int
	launchErr  error
}

func (l *fakeLauncher) Launch(ctx context.Context, path string, args ...string) (Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	l.spawnCount++
	l.nextPID++
	pid := l.nextPID + 1000
	l.table.add(proctable.Record{PID: pid, Name: fakeDaemonName, Cmdline: append([]string{path}, args...)})
	return &fakeProcess{pid: pid, table: l.table}, nil
}

func newTestSupervisor(t *testing.T) (*Supervisor, *fakeTable, *fakeLauncher) {
	t.Helper()
	table := &fakeTable{termErr: map[int32]error{}}
	launcher := &fakeLauncher{table: table}
	sup := New(fakeAdapter{}, table, launcher, Config{BinaryPath: "/opt/fakeclaw/fakeclaw", Args: []string{"daemon"}})
	return sup, table, launcher
}

func TestStartIsIdempotent(t *testing.T) {
	sup, _, launcher := newTestSupervisor(t)
	ctx := context.Background()

	first, err := sup.Start(ctx)
	require.NoError(t, err)
	assert.False(t, first.AlreadyRunning)
	assert.Equal(t, StateRunning, first.State)

	for i := 0; i < 3; i++ {
		again, err := sup.Start(ctx)
		require.NoError(t, err)
		assert.True(t, again.AlreadyRunning, "repeated start must be a soft success")
		assert.Equal(t, first.PID, again.PID)
	}

	assert.Equal(t, 1, launcher.spawnCount, "only one process may ever be spawned")
}

func TestStartSpawnFailure(t *testing.T) {
	sup, _, launcher := newTestSupervisor(t)
	launcher.launchErr = errors.New("no such file or directory")

	_, err := sup.Start(context.Background())
	require.Error(t, err)

	var spawnErr *SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, "/opt/fakeclaw/fakeclaw", spawnErr.Path)

	status, err := sup.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateStopped, status.State, "failed spawn must leave state Stopped")
}

func TestStopWithNothingRunning(t *testing.T) {
	sup, _, _ := newTestSupervisor(t)

	result, err := sup.Stop(context.Background())
	require.NoError(t, err, "absence must not be treated as failure")
	assert.True(t, result.NotRunning)
	assert.Empty(t, result.Failures)
}

func TestStopOwnedDaemon(t *testing.T) {
	sup, table, _ := newTestSupervisor(t)
	ctx := context.Background()

	started, err := sup.Start(ctx)
	require.NoError(t, err)

	result, err := sup.Stop(ctx)
	require.NoError(t, err)
	assert.False(t, result.NotRunning)
	assert.Equal(t, []int32{started.PID}, result.StoppedPID)

	snapshot, err := table.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, proctable.FilterByName(snapshot, fakeDaemonName))
}

func TestStopSweepsTableByExactName(t *testing.T) {
	sup, table, _ := newTestSupervisor(t)
	table.add(proctable.Record{PID: 201, Name: fakeDaemonName})
	table.add(proctable.Record{PID: 202, Name: fakeDaemonName})
	table.add(proctable.Record{PID: 203, Name: fakeDaemonName + "-helper"})

	result, err := sup.Stop(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []int32{201, 202}, result.StoppedPID)

	snapshot, _ := table.Snapshot(context.Background())
	require.Len(t, snapshot, 1, "non-matching names must be untouched")
	assert.Equal(t, int32(203), snapshot[0].PID)
}

func TestStopContinuesAfterPermissionDenied(t *testing.T) {
	sup, table, _ := newTestSupervisor(t)
	table.add(proctable.Record{PID: 301, Name: fakeDaemonName})
	table.add(proctable.Record{PID: 302, Name: fakeDaemonName})
	table.termErr[301] = syscall.EPERM

	result, err := sup.Stop(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	var permErr *PermissionError
	require.ErrorAs(t, result.Failures[0], &permErr)
	assert.Equal(t, int32(301), permErr.PID)

	assert.Equal(t, []int32{302}, result.StoppedPID, "remaining matches must still be attempted")
}

func TestStatusAdoptsExternalDaemon(t *testing.T) {
	sup, table, launcher := newTestSupervisor(t)
	table.add(proctable.Record{PID: 401, Name: fakeDaemonName})

	status, err := sup.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateRunning, status.State)
	assert.Equal(t, int32(401), status.PID)
	assert.False(t, status.Owned, "discovered record is adopted unowned")

	// Start against the adopted daemon must not spawn a second one.
	result, err := sup.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, result.AlreadyRunning)
	assert.Equal(t, 0, launcher.spawnCount)
}

func TestStatusReleasesStaleHandle(t *testing.T) {
	sup, table, _ := newTestSupervisor(t)
	ctx := context.Background()

	started, err := sup.Start(ctx)
	require.NoError(t, err)

	// The daemon dies behind the supervisor's back.
	table.remove(started.PID)

	status, err := sup.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateStopped, status.State)
}

func TestStartStopStatusRoundTrip(t *testing.T) {
	sup, _, _ := newTestSupervisor(t)
	ctx := context.Background()

	_, err := sup.Start(ctx)
	require.NoError(t, err)

	status, err := sup.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, status.State)
	assert.True(t, status.Owned)

	_, err = sup.Stop(ctx)
	require.NoError(t, err)

	status, err = sup.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateStopped, status.State)
}

func TestConcurrentStartsSpawnOnce(t *testing.T) {
	sup, _, launcher := newTestSupervisor(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sup.Start(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, launcher.spawnCount)
}
