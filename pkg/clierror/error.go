// Package clierror provides structured errors for CLI output with codes,
// exit codes, and remediation hints.
package clierror

import (
	"encoding/json"
	"fmt"
	"os"
)

// Exit codes reported to the shell.
const (
	ExitSuccess          = 0 // Operation completed successfully
	ExitGeneral          = 1 // Unknown/unhandled error
	ExitInvalidInput     = 2 // Malformed measurement data or arguments
	ExitInsufficientData = 3 // Not enough measurements to analyze
	ExitNotFound         = 4 // Resource doesn't exist
)

// Error codes (strings) for programmatic error handling.
const (
	CodeInvalidArgument          = "INVALID_ARGUMENT"
	CodeInvalidEncoding          = "INVALID_ENCODING"
	CodeLengthMismatch           = "LENGTH_MISMATCH"
	CodeInsufficientMeasurements = "INSUFFICIENT_MEASUREMENTS"
	CodeFileNotFound             = "FILE_NOT_FOUND"
	CodeDeviceNotFound           = "DEVICE_NOT_FOUND"
	CodeTokenNotFound            = "TOKEN_NOT_FOUND"
	CodeAlreadyExists            = "ALREADY_EXISTS"
	CodeInternalError            = "INTERNAL_ERROR"
)

// CLIError represents a structured error for CLI output.
type CLIError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Hint     string `json:"hint,omitempty"`
	ExitCode int    `json:"-"` // Not serialized, used for os.Exit
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// InvalidArgument creates an error for unusable flags or arguments.
func InvalidArgument(err error) *CLIError {
	return &CLIError{
		Code:     CodeInvalidArgument,
		Message:  err.Error(),
		ExitCode: ExitInvalidInput,
	}
}

// InvalidEncoding creates an error for malformed hexadecimal input.
func InvalidEncoding(err error) *CLIError {
	return &CLIError{
		Code:     CodeInvalidEncoding,
		Message:  fmt.Sprintf("malformed measurement encoding: %s", err),
		Hint:     "Measurement files contain one hexadecimal string per line with no header",
		ExitCode: ExitInvalidInput,
	}
}

// LengthMismatch creates an error for measurements of disagreeing widths.
func LengthMismatch(err error) *CLIError {
	return &CLIError{
		Code:     CodeLengthMismatch,
		Message:  fmt.Sprintf("measurement length mismatch: %s", err),
		Hint:     "All measurements in a session must come from the same SRAM region size",
		ExitCode: ExitInvalidInput,
	}
}

// InsufficientMeasurements creates an error for sets too small to analyze.
func InsufficientMeasurements(got int) *CLIError {
	return &CLIError{
		Code:     CodeInsufficientMeasurements,
		Message:  fmt.Sprintf("need at least 2 measurements to assess stability, got %d", got),
		Hint:     "Capture more power-up readings from the device and retry",
		ExitCode: ExitInsufficientData,
	}
}

// FileNotFound creates an error for a missing or unreadable input file.
func FileNotFound(path string, err error) *CLIError {
	return &CLIError{
		Code:     CodeFileNotFound,
		Message:  fmt.Sprintf("cannot read '%s': %s", path, err),
		Hint:     "Check the path passed to --input",
		ExitCode: ExitNotFound,
	}
}

// DeviceNotFound creates an error when a registered device doesn't exist.
func DeviceNotFound(id string) *CLIError {
	return &CLIError{
		Code:     CodeDeviceNotFound,
		Message:  fmt.Sprintf("device '%s' not found", id),
		Hint:     "Check registered devices with 'pufctl device list'",
		ExitCode: ExitNotFound,
	}
}

// TokenNotFound creates an error when a presented token matches no
// registered credential.
func TokenNotFound() *CLIError {
	return &CLIError{
		Code:     CodeTokenNotFound,
		Message:  "token does not match any registered device",
		Hint:     "Register the device with 'pufctl device add' or re-check the KDF parameters",
		ExitCode: ExitNotFound,
	}
}

// AlreadyExists creates an error when a credential is already registered.
func AlreadyExists(what string) *CLIError {
	return &CLIError{
		Code:     CodeAlreadyExists,
		Message:  fmt.Sprintf("%s already registered", what),
		Hint:     "Remove the existing entry first with 'pufctl device remove'",
		ExitCode: ExitGeneral,
	}
}

// InternalError creates an error for unexpected internal errors.
func InternalError(err error) *CLIError {
	msg := "an unexpected internal error occurred"
	if err != nil {
		msg = fmt.Sprintf("internal error: %s", err.Error())
	}
	return &CLIError{
		Code:     CodeInternalError,
		Message:  msg,
		ExitCode: ExitGeneral,
	}
}

// FormatError returns the error formatted for the given output format.
// Supported formats: "json" for JSON output, anything else for
// human-readable output.
func FormatError(err *CLIError, outputFormat string) string {
	if outputFormat == "json" {
		data, jsonErr := json.MarshalIndent(err, "", "  ")
		if jsonErr != nil {
			// Fallback to simple JSON if marshaling fails
			return fmt.Sprintf(`{"code":"%s","message":"%s"}`, err.Code, err.Message)
		}
		return string(data)
	}

	output := fmt.Sprintf("Error [%s]: %s", err.Code, err.Message)
	if err.Hint != "" {
		output += fmt.Sprintf("\nHint: %s", err.Hint)
	}
	return output
}

// PrintError prints the error to stderr in the appropriate format.
func PrintError(err *CLIError, outputFormat string) {
	fmt.Fprintln(os.Stderr, FormatError(err, outputFormat))
}
