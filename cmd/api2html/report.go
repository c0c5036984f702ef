package main

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Console markers.
const (
	markSuccess = "✓"
	markFailure = "✗"
)

// reporter prints progress lines. Success lines go to stdout and are
// silenced by quiet; failures and warnings always go to stderr.
type reporter struct {
	stdout  io.Writer
	stderr  io.Writer
	now     func() time.Time
	quiet   bool
	verbose bool
	last    time.Time
}

func newReporter(env *Environment, quiet, verbose bool) *reporter {
	now := env.Now
	if now == nil {
		now = time.Now
	}
	return &reporter{
		stdout:  env.Stdout,
		stderr:  env.Stderr,
		now:     now,
		quiet:   quiet,
		verbose: verbose,
		last:    now(),
	}
}

// success prints a ✓ line. With verbose, the time since the previous line
// is appended.
func (r *reporter) success(msg string) {
	current := r.now()
	elapsed := current.Sub(r.last)
	r.last = current

	if r.quiet {
		return
	}
	if r.verbose {
		fmt.Fprintf(r.stdout, "%s %s (%s)\n", markSuccess, msg, elapsed.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(r.stdout, "%s %s\n", markSuccess, msg)
}

// failure prints a ✗ line for err. With verbose, the underlying cause of a
// stage error is printed too.
func (r *reporter) failure(err error) {
	fmt.Fprintf(r.stderr, "%s %s\n", markFailure, err)

	var se *stageError
	if r.verbose && errors.As(err, &se) && !se.detail && se.cause != nil {
		fmt.Fprintf(r.stderr, "  cause: %v\n", se.cause)
	}
}

// warn prints a warning line.
func (r *reporter) warn(msg string) {
	fmt.Fprintf(r.stderr, "warning: %s\n", msg)
}

// debugf prints a line only when verbose.
func (r *reporter) debugf(format string, args ...any) {
	if r.verbose {
		fmt.Fprintf(r.stderr, format+"\n", args...)
	}
}

// stageError is a pipeline failure with its user-facing message.
type stageError struct {
	message string
	cause   error
	detail  bool   // append the cause to the message
	hint    string // formatted by internal/hints
}

func (e *stageError) Error() string {
	msg := e.message
	if e.detail && e.cause != nil {
		msg += " " + e.cause.Error()
	}
	return msg + e.hint
}

func (e *stageError) Unwrap() error {
	return e.cause
}
