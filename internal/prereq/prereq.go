// Package prereq dispatches named prerequisite probes used by the setup
// wizard and the doctor command: is the Rust toolchain present, is the
// agent binary on PATH, are the Windows build tools installed.
package prereq

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sort"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
)

// CommandRunner is the slice of the shell runner the probes need.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Probe checks one prerequisite and returns a human-readable detail line.
type Probe func(ctx context.Context, runner CommandRunner) (string, error)

// Checker dispatches probes by name.
type Checker struct {
	runner CommandRunner
	probes map[string]Probe
	log    logger.Logger
}

// NewChecker constructs a Checker with the built-in probe set.
func NewChecker(runner CommandRunner, log logger.Logger) *Checker {
	if log == nil {
		log = logger.Discard
	}
	c := &Checker{
		runner: runner,
		probes: make(map[string]Probe),
		log:    log,
	}
	c.Register("rustc", versionProbe("rustc"))
	c.Register("cargo", versionProbe("cargo"))
	c.Register("bambooclaw", pathProbe("bambooclaw"))
	c.Register("vs_build_tools", vsBuildToolsProbe)
	return c
}

// Register adds or replaces a probe.
func (c *Checker) Register(name string, probe Probe) {
	c.probes[name] = probe
}

// Known returns the sorted list of probe names.
func (c *Checker) Known() []string {
	names := make([]string, 0, len(c.probes))
	for name := range c.probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check runs the probe registered under name. An unknown name is an error.
func (c *Checker) Check(ctx context.Context, name string) (string, error) {
	probe, ok := c.probes[name]
	if !ok {
		return "", fmt.Errorf("unknown prerequisite: %s", name)
	}
	detail, err := probe(ctx, c.runner)
	if err != nil {
		c.log.Warn("prerequisite check failed", logger.Fields{"name": name, "error": err.Error()})
		return "", err
	}
	c.log.Debug("prerequisite check passed", logger.Fields{"name": name, "detail": detail})
	return detail, nil
}

func versionProbe(binary string) Probe {
	return func(ctx context.Context, runner CommandRunner) (string, error) {
		return runner.Run(ctx, binary, "--version")
	}
}

func pathProbe(binary string) Probe {
	return func(ctx context.Context, runner CommandRunner) (string, error) {
		path, err := exec.LookPath(binary)
		if err != nil {
			return "", fmt.Errorf("%s not found in PATH", binary)
		}
		return fmt.Sprintf("found at: %s", path), nil
	}
}

// vsBuildToolsProbe looks for the MSVC linker on Windows and is a no-op
// everywhere else.
func vsBuildToolsProbe(ctx context.Context, runner CommandRunner) (string, error) {
	if runtime.GOOS != "windows" {
		return "not required on this platform", nil
	}
	out, err := runner.Run(ctx, "cmd", "/C", "where", "cl.exe")
	if err != nil {
		return "", fmt.Errorf("visual studio build tools not found: %w", err)
	}
	return out, nil
}
