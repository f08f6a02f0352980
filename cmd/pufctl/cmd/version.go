package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luisestrellar/esp32-sram-puf-authentication/internal/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pufctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pufctl %s\n", version.String())
	},
}
