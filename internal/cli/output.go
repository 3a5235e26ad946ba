package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the query, clauses or scenarios were rejected
	ExitCommandError = 2 // the command could not run: config, input, database
)

// Error codes reported in CLIError.Code. E0xx are command problems, E1xx
// query problems and E2xx saved-search storage problems.
const (
	ErrCodeGeneric      = "E001"
	ErrCodeReadFailed   = "E002"
	ErrCodeInvalidInput = "E003" // not a JSON clause list
	ErrCodeConfig       = "E004"
	ErrCodeNotFound     = "E005" // file, directory or saved search
	ErrCodeWriteFailed  = "E007"

	ErrCodeSyntax    = "E101"
	ErrCodeCompile   = "E102"
	ErrCodeRoundTrip = "E103"
	ErrCodeScenario  = "E104" // one or more scenarios failed

	ErrCodeStore = "E201"
)

// ExitError carries the process exit code out of a command's RunE.
type ExitError struct {
	Code    int
	Message string
	Err     error
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

// NewExitError creates an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError creates an ExitError around err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps a command error to a process exit code. Errors that are
// not ExitErrors exit with ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as a JSON envelope or as text.
// Diagnostics (verbose logs, serializer warnings) go to ErrWriter so that
// stdout stays parseable.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // nil means Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope for every command.
type CLIResponse struct {
	Status string      `json:"status"` // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError describes a failure in a CLIResponse.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (f *OutputFormatter) isJSON() bool { return f.Format == "json" }

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// Render writes data as an "ok" envelope in JSON mode. In text mode it calls
// text, or prints data on its own line when text is nil.
func (f *OutputFormatter) Render(data interface{}, text func(w io.Writer) error) error {
	if f.isJSON() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	if text == nil {
		_, err := fmt.Fprintln(f.Writer, data)
		return err
	}
	return text(f.Writer)
}

// Error writes an error envelope, or an "Error [code]: message" line.
// Details are only printed in text mode when verbose.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.isJSON() {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports an error and returns the ExitError for RunE.
func (f *OutputFormatter) Fail(exitCode int, code, message string, details interface{}) error {
	_ = f.Error(code, message, details)
	return WrapExitError(exitCode, fmt.Sprintf("%s: %s", code, message), nil)
}

// Reject reports a result that is itself the failure, such as clauses that
// do not round-trip. JSON output carries both data and the error; text
// output is left to text.
func (f *OutputFormatter) Reject(exitCode int, code, message string, data interface{}, text func(w io.Writer) error) error {
	var err error
	if f.isJSON() {
		err = f.encode(CLIResponse{
			Status: "error",
			Data:   data,
			Error:  &CLIError{Code: code, Message: message},
		})
	} else {
		err = text(f.Writer)
	}
	if err != nil {
		return err
	}
	return NewExitError(exitCode, message)
}

// Warn prints a warning line to the diagnostics writer.
func (f *OutputFormatter) Warn(format string, args ...interface{}) {
	fmt.Fprintf(f.GetErrWriter(), "Warning: "+format+"\n", args...)
}

// VerboseLog prints to the diagnostics writer when verbose.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter, falling back to Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
