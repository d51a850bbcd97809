// Package console implements the interactive terminal front end of the planner.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Renderer styles console output. Implementations ignore write errors on the terminal.
type Renderer interface {
	// Header prints a banner with a centered title.
	Header(title string)
	// Section prints a title with an underline.
	Section(title string)
	Line(format string, args ...any)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
}

const width = 80

func center(s string) string {
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s
	}
	left := pad / 2 //nolint:mnd // half.
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// ANSIRenderer colors output with ANSI escape codes. It colors regardless of color.NoColor;
// callers pick it only for terminals.
type ANSIRenderer struct {
	w       io.Writer
	header  *color.Color
	section *color.Color
	rule    *color.Color
	success *color.Color
	warn    *color.Color
	err     *color.Color
}

func NewANSIRenderer(w io.Writer) *ANSIRenderer {
	return &ANSIRenderer{
		w:       w,
		header:  forcedColor(color.FgHiMagenta, color.Bold),
		section: forcedColor(color.FgHiCyan, color.Bold),
		rule:    forcedColor(color.FgHiCyan),
		success: forcedColor(color.FgHiGreen, color.Bold),
		warn:    forcedColor(color.FgHiYellow),
		err:     forcedColor(color.FgHiRed),
	}
}

func forcedColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

func (r *ANSIRenderer) Header(title string) {
	banner := strings.Repeat("=", width)
	_, _ = fmt.Fprintln(r.w)
	_, _ = r.header.Fprintln(r.w, banner)
	_, _ = r.header.Fprintln(r.w, center(title))
	_, _ = r.header.Fprintln(r.w, banner)
	_, _ = fmt.Fprintln(r.w)
}

func (r *ANSIRenderer) Section(title string) {
	_, _ = fmt.Fprintln(r.w)
	_, _ = r.section.Fprintln(r.w, title)
	_, _ = r.rule.Fprintln(r.w, strings.Repeat("-", width))
}

func (r *ANSIRenderer) Line(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *ANSIRenderer) Success(msg string) { _, _ = r.success.Fprintln(r.w, "✓ "+msg) }
func (r *ANSIRenderer) Warn(msg string)    { _, _ = r.warn.Fprintln(r.w, msg) }
func (r *ANSIRenderer) Error(msg string)   { _, _ = r.err.Fprintln(r.w, "Error: "+msg) }

// PlainRenderer writes unstyled text for pipes and tests.
type PlainRenderer struct {
	w io.Writer
}

func NewPlainRenderer(w io.Writer) *PlainRenderer {
	return &PlainRenderer{w: w}
}

func (r *PlainRenderer) Header(title string) {
	banner := strings.Repeat("=", width)
	_, _ = fmt.Fprintf(r.w, "\n%s\n%s\n%s\n\n", banner, center(title), banner)
}

func (r *PlainRenderer) Section(title string) {
	_, _ = fmt.Fprintf(r.w, "\n%s\n%s\n", title, strings.Repeat("-", width))
}

func (r *PlainRenderer) Line(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *PlainRenderer) Success(msg string) { _, _ = fmt.Fprintln(r.w, "✓ "+msg) }
func (r *PlainRenderer) Warn(msg string)    { _, _ = fmt.Fprintln(r.w, msg) }
func (r *PlainRenderer) Error(msg string)   { _, _ = fmt.Fprintln(r.w, "Error: "+msg) }
