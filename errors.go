package clap

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Sentinel errors surfaced through ParseError.Unwrap so callers can use
// errors.Is/errors.As the way napalu-goopt's callers test against its
// Err* sentinel vars in definitions.go.
var (
	// ErrHelpRequested is returned when --help/-h (or the bare "help"
	// subcommand) short-circuited the parse. Not a user-facing mistake:
	// a terminal success path that exits 0.
	ErrHelpRequested = errors.New("help requested")
	// ErrVersionRequested is returned when --version/-v short-circuited
	// the parse. A terminal success path that exits 0.
	ErrVersionRequested = errors.New("version requested")

	ErrUnknownArgument   = errors.New("unknown argument")
	ErrUnknownValue      = errors.New("unknown value for argument")
	ErrMissingValue      = errors.New("argument requires a value but none was supplied")
	ErrRepeated          = errors.New("argument specified multiple times")
	ErrConflict          = errors.New("argument cannot be used with one or more of the other specified arguments")
	ErrMissingRequired   = errors.New("required arguments were not supplied")
	ErrUnknownSubcommand = errors.New("unknown subcommand")
)

// SchemaError reports a programmer mistake: a contradictory or duplicate
// declaration caught at registration or pre-flight time. Never reaches an
// end user; AddArgument/AddSubcommand/verifyPositionals panic with one of
// these instead of returning an error, mirroring the teacher's
// registration-time panics (command_config_funcs.go, and
// verify_positionals in original_source/src/app.rs).
type SchemaError struct {
	Command string
	Msg     string
}

func (e *SchemaError) Error() string {
	if e.Command == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Msg)
}

func schemaErrorf(cmd *Command, format string, args ...any) *SchemaError {
	return &SchemaError{Command: cmd.binName(), Msg: fmt.Sprintf(format, args...)}
}

// ParseError is a user-facing parse mistake: unknown argument, bad
// enumerated value, missing option value, a repeated non-multiple
// argument, a blacklist conflict, or a required argument/group left
// unsatisfied after the pass. Always returned, never panicked.
type ParseError struct {
	Command string
	Err     error
	Usage   string
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(cmd *Command, sentinel error, format string, args ...any) *ParseError {
	return &ParseError{
		Command: cmd.binName(),
		Err:     fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel),
		Usage:   cmd.Usage(),
	}
}

// ErrorReporter is the small surface the engine calls to surface a
// violation; pluggable for testing (spec §2 item 8).
type ErrorReporter interface {
	Report(err *ParseError)
}

// StderrReporter is the default ErrorReporter: it writes the message,
// optionally followed by the USAGE block and a hint to run --help, to an
// injected io.Writer (os.Stderr by default).
type StderrReporter struct {
	Out       io.Writer
	ShowUsage bool
	ShowHint  bool
}

// NewStderrReporter builds the default reporter used by cmd/clapdemo.
func NewStderrReporter() *StderrReporter {
	return &StderrReporter{Out: os.Stderr, ShowUsage: true, ShowHint: true}
}

func (r *StderrReporter) Report(err *ParseError) {
	out := r.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "error: %s\n", err.Error())
	if r.ShowUsage && err.Usage != "" {
		fmt.Fprintln(out, err.Usage)
	}
	if r.ShowHint {
		fmt.Fprintln(out, "For more information try --help")
	}
}
