package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/gymplan/internal/console"
)

func colored(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s) + "\n"
}

func TestANSIRenderer(t *testing.T) {
	// Piped test output disables colors globally; the renderer must color anyway.
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var out bytes.Buffer
	r := console.NewANSIRenderer(&out)
	r.Section("Progress")
	r.Line("Total workouts: %d", 3)
	r.Success("Saved")
	r.Warn("Rest today")
	r.Error("disk full")

	want := "\n" +
		colored("Progress", color.FgHiCyan, color.Bold) +
		colored(strings.Repeat("-", 80), color.FgHiCyan) +
		"Total workouts: 3\n" +
		colored("✓ Saved", color.FgHiGreen, color.Bold) +
		colored("Rest today", color.FgHiYellow) +
		colored("Error: disk full", color.FgHiRed)
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "\x1b[92;1m✓ Saved") {
		t.Errorf("success line is not bright green and bold: %q", out.String())
	}
}

func TestANSIRenderer_Header(t *testing.T) {
	var out bytes.Buffer
	console.NewANSIRenderer(&out).Header("GYM PLANNER")

	lines := strings.Split(out.String(), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6: %q", len(lines), out.String())
	}
	if lines[0] != "" || lines[4] != "" {
		t.Errorf("header is not padded with blank lines: %q", out.String())
	}
	for _, line := range lines[1:4] {
		if !strings.HasPrefix(line, "\x1b[95;1m") {
			t.Errorf("line %q is not bright magenta and bold", line)
		}
	}
	if !strings.Contains(lines[2], "GYM PLANNER") {
		t.Errorf("title line = %q", lines[2])
	}
}

func TestPlainRenderer(t *testing.T) {
	var out bytes.Buffer
	r := console.NewPlainRenderer(&out)
	r.Success("Saved")
	r.Warn("Rest today")
	r.Error("disk full")

	want := "✓ Saved\nRest today\nError: disk full\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
