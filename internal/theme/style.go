package theme

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Style represents a named color style bound to a writer.
type Style struct {
	printer *color.Color
	writer  io.Writer
}

// NewStyle creates a new style from color attributes.
func NewStyle(attrs ...color.Attribute) *Style {
	return &Style{
		printer: color.New(attrs...),
		writer:  os.Stdout,
	}
}

// WithWriter returns a copy of the style bound to w.
func (s *Style) WithWriter(w io.Writer) *Style {
	return &Style{printer: s.printer, writer: w}
}

// Print prints text using the style.
func (s *Style) Print(a ...interface{}) {
	fmt.Fprint(s.writer, s.printer.Sprint(a...))
}

// Printf prints formatted text using the style.
func (s *Style) Printf(format string, a ...interface{}) {
	fmt.Fprint(s.writer, s.printer.Sprintf(format, a...))
}

// Println prints text using the style followed by a newline.
func (s *Style) Println(a ...interface{}) {
	fmt.Fprintln(s.writer, s.printer.Sprint(a...))
}
