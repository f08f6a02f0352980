// pufctl generates SRAM PUF challenges and manages verifier credentials.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/luisestrellar/esp32-sram-puf-authentication/cmd/pufctl/cmd"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/clierror"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var cliErr *clierror.CLIError
		if errors.As(err, &cliErr) {
			clierror.PrintError(cliErr, cmd.OutputFormat())
			os.Exit(cliErr.ExitCode)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(clierror.ExitGeneral)
	}
}
