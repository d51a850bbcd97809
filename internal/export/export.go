// Package export renders a generated workout plan as plain text, Markdown or HTML and writes it to files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/myrjola/gymplan/internal/workout"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownFormat is returned by ParseFormats for unsupported format names.
var ErrUnknownFormat = errors.New("unknown export format")

// Format of an exported plan.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return "txt"
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	default:
		return string(f)
	}
}

// ParseFormats parses a format name. "all" selects every format.
func ParseFormats(name string) ([]Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "all":
		return []Format{FormatText, FormatMarkdown, FormatHTML}, nil
	case FormatText, FormatMarkdown, FormatHTML:
		return []Format{f}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Report is everything an exported plan shows.
type Report struct {
	Profile   workout.Profile
	Plan      workout.Plan
	Generated time.Time
}

const (
	bannerWidth     = 80
	generatedLayout = "2006-01-02 15:04:05"
	closingLine     = "Keep up the great work! Stay consistent and track your progress."
)

func title(p workout.Profile) string {
	return strings.ToUpper(p.Name) + "'S PERSONALIZED WORKOUT PLAN"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Text renders the report in the fixed-width text layout.
func Text(r Report) string {
	var (
		b        strings.Builder
		heavy    = strings.Repeat("=", bannerWidth)
		light    = strings.Repeat("-", bannerWidth)
		p        = r.Profile
		writeln  = func(s string) { b.WriteString(s + "\n") }
		writelnf = func(format string, args ...any) { fmt.Fprintf(&b, format+"\n", args...) }
	)

	writeln(heavy)
	writeln(title(p))
	writeln(heavy)
	writeln("")

	writeln("Profile Information:")
	writelnf("  Name: %s", p.Name)
	writelnf("  Age: %d years", p.Age)
	writelnf("  Gender: %s", capitalize(string(p.Gender)))
	writelnf("  Goal: %s", p.GoalName())
	writelnf("  Training Days: %d days per week", p.TrainingDays)
	writelnf("  Generated: %s", r.Generated.Format(generatedLayout))
	writeln("")

	if r.Plan.AgeReduction > 0 {
		writelnf("Note: Workouts adjusted by %d%% for age", r.Plan.AgeReduction)
		writeln("")
	}

	for _, day := range r.Plan.Days {
		writeln(light)
		writelnf("DAY %d", day.Day)
		writeln(light)
		writeln(day.Workout)
		writeln("")
	}

	writeln(heavy)
	writeln(closingLine)
	writeln(heavy)
	return b.String()
}

// DayMarkdown renders a single plan day with its title as a heading.
func DayMarkdown(day workout.DayPlan) string {
	_, body, _ := strings.Cut(day.Workout, "\n")
	return fmt.Sprintf("## Day %d: %s\n\n%s\n", day.Day, day.Title(), strings.TrimSpace(body))
}

// Markdown renders the report as a Markdown document.
func Markdown(r Report) string {
	var b strings.Builder
	p := r.Profile
	fmt.Fprintf(&b, "# %s\n\n", title(p))
	b.WriteString("## Profile Information\n\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", p.Name)
	fmt.Fprintf(&b, "- **Age:** %d years\n", p.Age)
	fmt.Fprintf(&b, "- **Gender:** %s\n", capitalize(string(p.Gender)))
	fmt.Fprintf(&b, "- **Goal:** %s\n", p.GoalName())
	fmt.Fprintf(&b, "- **Training Days:** %d days per week\n", p.TrainingDays)
	fmt.Fprintf(&b, "- **Generated:** %s\n\n", r.Generated.Format(generatedLayout))
	if r.Plan.AgeReduction > 0 {
		fmt.Fprintf(&b, "> Note: Workouts adjusted by %d%% for age\n\n", r.Plan.AgeReduction)
	}
	for _, day := range r.Plan.Days {
		b.WriteString(DayMarkdown(day))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "*%s*\n", closingLine)
	return b.String()
}

//nolint:gochecknoglobals // goldmark instances are safe for concurrent use.
var markdownRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkhtml.WithHardWraps(),
	),
)

// RenderMarkdown converts Markdown to an HTML fragment. Raw HTML in the input is escaped.
func RenderMarkdown(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

const htmlDocument = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// HTML renders the report as a standalone HTML document.
func HTML(r Report) (string, error) {
	body, err := RenderMarkdown(Markdown(r))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(htmlDocument, html.EscapeString(title(r.Profile)), body), nil
}

// Render renders the report in format f.
func Render(r Report, f Format) (string, error) {
	switch f {
	case FormatText:
		return Text(r), nil
	case FormatMarkdown:
		return Markdown(r), nil
	case FormatHTML:
		return HTML(r)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Filename returns workout_plan_<name with underscores>_<YYYYMMDD_HHMMSS>.<ext>.
func Filename(name, ext string, t time.Time) string {
	return fmt.Sprintf("workout_plan_%s_%s.%s", strings.ReplaceAll(name, " ", "_"), t.Format("20060102_150405"), ext)
}

// WriteFiles renders the report in every format concurrently and writes the files to dir. The returned paths
// follow the order of formats.
func WriteFiles(ctx context.Context, dir string, r Report, formats []Format) ([]string, error) {
	paths := make([]string, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			content, err := Render(r, f)
			if err != nil {
				return err
			}
			if err = ctx.Err(); err != nil {
				return err //nolint:wrapcheck // context errors are returned as-is.
			}
			path := filepath.Join(dir, Filename(r.Profile.Name, f.Extension(), r.Generated))
			if err = os.WriteFile(path, []byte(content), 0o600); err != nil { //nolint:mnd // owner read-write.
				return fmt.Errorf("write %s export: %w", f, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // errors are wrapped in the goroutines.
	}
	return paths, nil
}
