// Package clierror provides structured error handling for CLI commands.
//
// CLI errors carry an exit code, a user-facing message, and an optional
// remediation hint, separating internal error details from what gets shown
// to operators.
//
// # Usage
//
//	if err != nil {
//	    return clierror.InvalidEncoding(err)
//	}
package clierror
