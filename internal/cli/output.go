package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/seqnet/su/internal/fault"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // domain failure (broken chain, unknown id)
	ExitCommandError = 2 // command error (bad flags, unreadable config, store failure)
)

// ExitError carries a specific process exit code out of a command.
type ExitError struct {
	Code    int    // exit code (ExitFailure or ExitCommandError)
	Message string // error message
	Err     error  // underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Formatter handles JSON vs text output for CLI commands.
type Formatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // separate writer for verbose output (defaults to Writer)
	Verbose   bool
}

// Response is the JSON envelope every command emits in json format.
type Response struct {
	Status string         `json:"status"`          // "ok" or "error"
	Data   any            `json:"data,omitempty"`  // success payload, or partial results on failure
	Error  *ResponseError `json:"error,omitempty"` // failure details
}

// ResponseError carries the fault kind alongside the message so callers
// can branch without parsing message text.
type ResponseError struct {
	Kind    string `json:"kind,omitempty"` // NOT_FOUND, VALIDATION, ... (empty for untyped errors)
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format.
func (f *Formatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Fail outputs err in the configured format, tagged with its fault kind
// when it carries one. data rides along in the JSON envelope so partial
// results (per-process verification reports) survive a failing exit.
func (f *Formatter) Fail(err error, data any) error {
	kind := string(fault.KindOf(err))

	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status: "error",
			Data:   data,
			Error: &ResponseError{
				Kind:    kind,
				Message: err.Error(),
			},
		})
	}

	if kind != "" {
		fmt.Fprintf(f.Writer, "Error [%s]: %v\n", kind, err)
		return nil
	}
	fmt.Fprintf(f.Writer, "Error: %v\n", err)
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer. When format is
// JSON, verbose logs must go to ErrWriter to avoid corrupting the envelope.
func (f *Formatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// report renders err through the formatter, then hands it back unchanged
// so RunE can return it for the exit code. The root command silences
// cobra's own error printing; every failure a command produces goes
// through here exactly once.
func report(f *Formatter, err error) error {
	_ = f.Fail(err, nil)
	return err
}
