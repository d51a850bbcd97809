package export_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/gymplan/internal/export"
	"github.com/myrjola/gymplan/internal/workout"
)

func newReport(t *testing.T, age, trainingDays int) export.Report {
	t.Helper()
	p := workout.Profile{
		Name:         "Alex Doe",
		Age:          age,
		Gender:       workout.GenderMale,
		Goal:         workout.GoalLoseWeight,
		TrainingDays: trainingDays,
		ProgressLog:  nil,
		WeightLog:    nil,
	}
	plan, err := workout.GeneratePlan(p)
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}
	return export.Report{
		Profile:   p,
		Plan:      plan,
		Generated: time.Date(2024, time.March, 15, 18, 4, 5, 0, time.UTC),
	}
}

func TestText(t *testing.T) {
	heavy := strings.Repeat("=", 80)
	light := strings.Repeat("-", 80)
	want := heavy + "\n" +
		"ALEX DOE'S PERSONALIZED WORKOUT PLAN\n" +
		heavy + "\n" +
		"\n" +
		"Profile Information:\n" +
		"  Name: Alex Doe\n" +
		"  Age: 25 years\n" +
		"  Gender: Male\n" +
		"  Goal: Losing Weight\n" +
		"  Training Days: 1 days per week\n" +
		"  Generated: 2024-03-15 18:04:05\n" +
		"\n" +
		light + "\n" +
		"DAY 1\n" +
		light + "\n" +
		workout.TemplateAt(0) + "\n" +
		"\n" +
		heavy + "\n" +
		"Keep up the great work! Stay consistent and track your progress.\n" +
		heavy + "\n"

	if diff := cmp.Diff(want, export.Text(newReport(t, 25, 1))); diff != "" {
		t.Errorf("Text() mismatch (-want +got):\n%s", diff)
	}
}

func TestText_AgeNote(t *testing.T) {
	got := export.Text(newReport(t, 70, 3))
	if !strings.Contains(got, "\nNote: Workouts adjusted by 15% for age\n\n") {
		t.Errorf("Text() does not contain the age note:\n%s", got)
	}
	if n := strings.Count(got, "\nDAY "); n != 3 {
		t.Errorf("Text() has %d day sections, want 3", n)
	}
	if strings.Contains(export.Text(newReport(t, 30, 3)), "Note:") {
		t.Error("Text() contains an age note without age reduction")
	}
}

func TestHTML(t *testing.T) {
	document, err := export.HTML(newReport(t, 70, 3))
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		t.Fatalf("parse HTML: %v", err)
	}

	if got, want := doc.Find("title").Text(), "ALEX DOE'S PERSONALIZED WORKOUT PLAN"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
	if got := doc.Find("h1").Text(); got != "ALEX DOE'S PERSONALIZED WORKOUT PLAN" {
		t.Errorf("h1 = %q", got)
	}
	var headings []string
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, s.Text())
	})
	wantHeadings := []string{
		"Profile Information",
		"Day 1: Gym workout for fat loss",
		"Day 2: Gym workout for a male at least 18 years old",
		"Day 3: Gym workout for fat loss",
	}
	if diff := cmp.Diff(wantHeadings, headings); diff != "" {
		t.Errorf("h2 mismatch (-want +got):\n%s", diff)
	}
	if n := doc.Find("li").Length(); n != 6 {
		t.Errorf("profile list has %d items, want 6", n)
	}
	if got := doc.Find("blockquote").Text(); !strings.Contains(got, "adjusted by 15%") {
		t.Errorf("blockquote = %q, want age note", got)
	}
	// Hard wraps keep one exercise per line.
	if n := doc.Find("p br").Length(); n == 0 {
		t.Error("expected line breaks between exercises")
	}
}

func TestFilename(t *testing.T) {
	got := export.Filename("Mary Jane Watson", "txt", time.Date(2024, time.March, 5, 7, 8, 9, 0, time.UTC))
	if want := "workout_plan_Mary_Jane_Watson_20240305_070809.txt"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		want    []export.Format
		wantErr error
	}{
		{name: "all", want: []export.Format{export.FormatText, export.FormatMarkdown, export.FormatHTML}, wantErr: nil},
		{name: "HTML", want: []export.Format{export.FormatHTML}, wantErr: nil},
		{name: "pdf", want: nil, wantErr: export.ErrUnknownFormat},
	}
	for _, tt := range tests {
		got, err := export.ParseFormats(tt.name)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseFormats(%q) error = %v, want %v", tt.name, err, tt.wantErr)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseFormats(%q) mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	r := newReport(t, 25, 2)
	formats, err := export.ParseFormats("all")
	if err != nil {
		t.Fatalf("ParseFormats() error = %v", err)
	}

	paths, err := export.WriteFiles(t.Context(), dir, r, formats)
	if err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}
	want := []string{
		filepath.Join(dir, "workout_plan_Alex_Doe_20240315_180405.txt"),
		filepath.Join(dir, "workout_plan_Alex_Doe_20240315_180405.md"),
		filepath.Join(dir, "workout_plan_Alex_Doe_20240315_180405.html"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("WriteFiles() paths mismatch (-want +got):\n%s", diff)
	}
	text, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(text) != export.Text(r) {
		t.Error("text export differs from Text()")
	}

	if _, err = export.WriteFiles(t.Context(), filepath.Join(dir, "missing"), r, formats); err == nil {
		t.Error("WriteFiles() into a missing directory succeeded")
	}
}
