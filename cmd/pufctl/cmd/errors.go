package cmd

import (
	"errors"
	"io/fs"

	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/bitstring"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/clierror"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/stability"
)

// wrapErr maps pipeline errors onto the structured CLI error taxonomy so
// the shell sees stable exit codes regardless of which package failed.
func wrapErr(path string, err error) *clierror.CLIError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return clierror.FileNotFound(path, err)
	case errors.Is(err, bitstring.ErrInvalidEncoding):
		return clierror.InvalidEncoding(err)
	case errors.Is(err, bitstring.ErrLengthMismatch), errors.Is(err, stability.ErrLengthMismatch):
		return clierror.LengthMismatch(err)
	default:
		return clierror.InternalError(err)
	}
}
