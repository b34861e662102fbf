// Package theme styles the companion's terminal output.
package theme

import (
	"github.com/fatih/color"
)

// Theme groups the output styles used by the command layer.
type Theme interface {
	// Primary returns the primary style
	Primary() *Style

	// Success returns the success style
	Success() *Style

	// Error returns the error style
	Error() *Style

	// Warning returns the warning style
	Warning() *Style

	// Info returns the info style
	Info() *Style

	// Subtle returns the subtle style
	Subtle() *Style
}

// DefaultTheme is the standard color set, respecting NO_COLOR via the
// color package.
type DefaultTheme struct {
	primary *Style
	success *Style
	error   *Style
	warning *Style
	info    *Style
	subtle  *Style
}

var _ Theme = (*DefaultTheme)(nil)

// NewDefaultTheme creates the default theme.
func NewDefaultTheme() *DefaultTheme {
	return &DefaultTheme{
		primary: NewStyle(color.FgHiCyan, color.Bold),
		success: NewStyle(color.FgGreen, color.Bold),
		error:   NewStyle(color.FgRed, color.Bold),
		warning: NewStyle(color.FgYellow),
		info:    NewStyle(color.FgWhite),
		subtle:  NewStyle(color.FgHiBlack),
	}
}

// Primary returns the primary style
func (t *DefaultTheme) Primary() *Style { return t.primary }

// Success returns the success style
func (t *DefaultTheme) Success() *Style { return t.success }

// Error returns the error style
func (t *DefaultTheme) Error() *Style { return t.error }

// Warning returns the warning style
func (t *DefaultTheme) Warning() *Style { return t.warning }

// Info returns the info style
func (t *DefaultTheme) Info() *Style { return t.info }

// Subtle returns the subtle style
func (t *DefaultTheme) Subtle() *Style { return t.subtle }

// Manager handles theme selection.
type Manager struct {
	currentTheme Theme
}

// NewManager creates a new theme manager.
func NewManager(t Theme) *Manager {
	return &Manager{currentTheme: t}
}

// GetCurrentTheme returns the currently active theme.
func (m *Manager) GetCurrentTheme() Theme {
	return m.currentTheme
}
