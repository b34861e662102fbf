package prereq

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	out  string
	err  error
	runs [][]string
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	r.runs = append(r.runs, append([]string{name}, args...))
	return r.out, r.err
}

func TestCheckUnknownName(t *testing.T) {
	checker := NewChecker(&fakeRunner{}, nil)

	_, err := checker.Check(context.Background(), "fortran")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prerequisite")
}

func TestKnownIsSorted(t *testing.T) {
	checker := NewChecker(&fakeRunner{}, nil)
	assert.Equal(t, []string{"bambooclaw", "cargo", "rustc", "vs_build_tools"}, checker.Known())
}

func TestVersionProbeInvokesRunner(t *testing.T) {
	runner := &fakeRunner{out: "rustc 1.79.0"}
	checker := NewChecker(runner, nil)

	detail, err := checker.Check(context.Background(), "rustc")
	require.NoError(t, err)
	assert.Equal(t, "rustc 1.79.0", detail)
	require.Len(t, runner.runs, 1)
	assert.Equal(t, []string{"rustc", "--version"}, runner.runs[0])
}

func TestVersionProbePropagatesFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("executable file not found")}
	checker := NewChecker(runner, nil)

	_, err := checker.Check(context.Background(), "cargo")
	assert.Error(t, err)
}

func TestPathProbeMissingBinary(t *testing.T) {
	checker := NewChecker(&fakeRunner{}, nil)
	// The agent binary is certainly not on PATH in the test environment.
	_, err := checker.Check(context.Background(), "bambooclaw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}

func TestRegisterOverridesProbe(t *testing.T) {
	checker := NewChecker(&fakeRunner{}, nil)
	checker.Register("bambooclaw", func(ctx context.Context, runner CommandRunner) (string, error) {
		return "found at: /opt/bambooclaw", nil
	})

	detail, err := checker.Check(context.Background(), "bambooclaw")
	require.NoError(t, err)
	assert.Equal(t, "found at: /opt/bambooclaw", detail)
}
