package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Domain failure (missing key, decode error)
	ExitCommandError = 2 // Command error (bad flags, store unreachable)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`    // "E_NOT_FOUND", "E_DECODE", etc.
	Message string `json:"message"` // human-readable message
}

// writeJSON encodes a CLIResponse with stable indentation.
func writeJSON(w io.Writer, resp CLIResponse) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}

// outputData writes a success payload: the JSON envelope when format is
// "json", otherwise each line of lines as plain text.
func outputData(w io.Writer, format string, data any, lines ...string) error {
	if format == "json" {
		return writeJSON(w, CLIResponse{Status: "ok", Data: data})
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}

// outputDomainError reports a domain failure (exit code 1) in the
// configured format and returns the matching ExitError.
func outputDomainError(w io.Writer, format, code, message string) error {
	if format == "json" {
		if err := writeJSON(w, CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	}
	return NewExitError(ExitFailure, message)
}
