// Package errors is a drop-in replacement for the standard library errors package that records where an error was
// created or wrapped together with structured [slog.Attr] annotations.
//
// Use [SlogError] to log the error with all annotations flattened into the log record.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"strings"
)

// ErrUnsupported re-exports [stderrors.ErrUnsupported].
var ErrUnsupported = stderrors.ErrUnsupported

type annotatedError struct {
	msg         string
	err         error
	source      string
	annotations []slog.Attr
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// callerSource returns file:line of the caller skip frames above callerSource.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// New creates a new error annotated with the call site and the given attributes.
//
// Prefer [NewSentinel] for package level sentinel errors since the call site is meaningless for those.
func New(msg string, annotations ...slog.Attr) error {
	return &annotatedError{
		msg:         msg,
		err:         nil,
		source:      callerSource(1),
		annotations: annotations,
	}
}

// NewSentinel creates a plain error meant to be compared with [Is].
func NewSentinel(msg string) error {
	return stderrors.New(msg) //nolint:err113 // this is the sentinel constructor.
}

// Wrap annotates err with msg, the call site and the given attributes. Wrapping a nil error returns nil.
func Wrap(err error, msg string, annotations ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return &annotatedError{
		msg:         msg,
		err:         err,
		source:      callerSource(1),
		annotations: annotations,
	}
}

// Is re-exports [stderrors.Is].
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As re-exports [stderrors.As].
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap re-exports [stderrors.Unwrap].
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join re-exports [stderrors.Join].
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// SlogError turns err into an "error" group attribute containing the message, the source location of the innermost
// annotated error and all annotations collected along the wrap chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	var (
		source      string
		annotations []any
		stack       string
	)
	for current := err; current != nil; current = stderrors.Unwrap(current) {
		var annotated *annotatedError
		if ae, ok := current.(*annotatedError); ok { //nolint:errorlint // we walk the chain manually.
			annotated = ae
		}
		if annotated == nil {
			continue
		}
		source = annotated.source
		for _, a := range annotated.annotations {
			if a.Key == stackAttrKey {
				stack = a.Value.String()
				continue
			}
			annotations = append(annotations, a)
		}
	}

	attrs := []any{slog.String("message", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if stack != "" {
		attrs = append(attrs, slog.String(stackAttrKey, stack))
	}
	return slog.Group("error", attrs...)
}

const stackAttrKey = "stack"

// DecoratePanic converts a recovered panic value into an error pointing at the line that panicked.
//
// It must be called from the deferred function that called recover. Returns nil if excp is nil.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}

	return &annotatedError{
		msg:         fmt.Sprintf("panic: %v", excp),
		err:         nil,
		source:      panicSource(),
		annotations: []slog.Attr{slog.String(stackAttrKey, string(debug.Stack()))},
	}
}

// panicSource finds the first frame after runtime.gopanic which is where the panic originated.
func panicSource() string {
	const maxDepth = 32
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	panicking := false
	for {
		frame, more := frames.Next()
		if panicking && !strings.HasPrefix(frame.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", frame.File, frame.Line)
		}
		if frame.Function == "runtime.gopanic" {
			panicking = true
		}
		if !more {
			break
		}
	}
	return "unknown"
}
