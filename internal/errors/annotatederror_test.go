package errors_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"testing"

	"github.com/myrjola/gymplan/internal/errors"
	"github.com/myrjola/gymplan/internal/testhelpers"
)

func TestAnnotatedError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "sentinel",
			err:  errors.NewSentinel("profile not found"),
			want: "profile not found",
		},
		{
			name: "new with annotations",
			err:  errors.New("invalid training days", slog.Int("training_days", 9)),
			want: "invalid training days",
		},
		{
			name: "wrapped",
			err:  errors.Wrap(errors.NewSentinel("profile not found"), "load profile", slog.String("path", "x.json")),
			want: "load profile: profile not found",
		},
		{
			name: "nested",
			err: errors.Wrap(
				errors.Wrap(errors.NewSentinel("disk full"), "write profile"),
				"log workout",
			),
			want: "log workout: write profile: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := errors.Wrap(nil, "nothing to wrap"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestIsAndUnwrap(t *testing.T) {
	rootErr := errors.NewSentinel("root error")
	wrappedErr := errors.Wrap(rootErr, "context")

	if !errors.Is(wrappedErr, rootErr) {
		t.Errorf("Is() = false, want true for wrapped error")
	}
	if errors.Is(wrappedErr, errors.NewSentinel("root error")) {
		t.Errorf("Is() = true, want false for a different sentinel with the same text")
	}
	if unwrapped := errors.Unwrap(fmt.Errorf("context: %w", rootErr)); !errors.Is(unwrapped, rootErr) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, rootErr)
	}
}

type parseError struct {
	line string
}

func (e *parseError) Error() string {
	return "cannot parse " + e.line
}

func TestAs(t *testing.T) {
	rootErr := &parseError{line: "Squats (x reps x 3 sets)"}
	wrappedErr := errors.Wrap(rootErr, "adjust line")

	var target *parseError
	if !errors.As(wrappedErr, &target) {
		t.Fatal("As() = false, want true")
	}
	if target != rootErr {
		t.Errorf("As() target = %v, want %v", target, rootErr)
	}
}

func TestSlogError(t *testing.T) {
	annotations := []slog.Attr{slog.String("store", "json"), slog.Int("entries", 3)}
	_, file, line, _ := runtime.Caller(0)
	err := errors.Wrap(errors.NewSentinel("root cause"), "save profile", annotations...)
	wantSource := fmt.Sprintf("%s:%d", file, line+1)

	var buf bytes.Buffer
	l := testhelpers.NewLogger(&buf)
	l.Info("test", errors.SlogError(err))
	logLine := buf.String()

	for _, content := range []string{
		"error.annotations.store=json",
		"error.annotations.entries=3",
		"error.message=\"save profile: root cause\"",
		wantSource,
	} {
		if !strings.Contains(logLine, content) {
			t.Errorf("expected log line %s to contain %s", logLine, content)
		}
	}

	if strings.Contains(logLine, "annotatederror.go") {
		t.Fatal("expected annotatederror.go NOT to be in log line")
	}

	// None of these may panic.
	errors.SlogError(nil)
	errors.SlogError(errors.Join(nil, nil, errors.NewSentinel("sentinel"), errors.New("test")))
	errors.SlogError(fmt.Errorf("test: %w", errors.NewSentinel("sentinel")))
	errors.SlogError(errors.Wrap(errors.Join(nil, nil), "wrap error"))
}

func TestDecoratePanic(t *testing.T) {
	var panicLine int
	defer func() {
		err := errors.DecoratePanic(recover())
		if err == nil {
			t.Fatal("expected error")
		}
		if got, want := err.Error(), "panic: template index out of range"; got != want {
			t.Errorf("err.Error(): got %q, want %q", got, want)
		}
		attr := errors.SlogError(err)
		if contains := fmt.Sprintf("annotatederror_test.go:%d", panicLine); !strings.Contains(attr.String(), contains) {
			t.Errorf("attr.String(): expected %q to contain %q", attr.String(), contains)
		}
	}()
	_, _, panicLine, _ = runtime.Caller(0)
	panicLine++
	panic("template index out of range")
}

func TestDecoratePanicNil(t *testing.T) {
	if err := errors.DecoratePanic(nil); err != nil {
		t.Errorf("DecoratePanic(nil) = %v, want nil", err)
	}
}
