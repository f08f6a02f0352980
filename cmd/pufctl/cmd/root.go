// Package cmd implements the pufctl CLI commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/luisestrellar/esp32-sram-puf-authentication/internal/version"
)

var (
	// Global flags
	outputFormat string
	dbPath       string
)

var rootCmd = &cobra.Command{
	Use:   "pufctl",
	Short: "SRAM PUF provisioning and analysis toolchain",
	Long: `pufctl derives device credentials from SRAM power-up measurements.

It analyzes repeated readings of the same SRAM region, identifies the bit
positions that reproduce reliably, and emits two artifacts: a challenge
mask for the device firmware and a derived API token for the verifier.
It also provides Hamming distance and weight diagnostics for judging PUF
quality before provisioning.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for pufctl.

To load completions:

Bash:
  # Add to ~/.bashrc:
  source <(pufctl completion bash)

Zsh:
  # Add to ~/.zshrc:
  source <(pufctl completion zsh)

Fish:
  # Add to ~/.config/fish/completions/:
  pufctl completion fish > ~/.config/fish/completions/pufctl.fish

PowerShell:
  # Add to your PowerShell profile:
  pufctl completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		default:
			return fmt.Errorf("unknown shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Credential database path (default: ~/.local/share/pufctl/pufctl.db)")
	rootCmd.AddCommand(completionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// OutputFormat returns the value of the global --output flag, for error
// formatting after Execute returns.
func OutputFormat() string {
	return outputFormat
}

// formatOutput handles output formatting based on the --output flag.
func formatOutput(data interface{}) error {
	switch outputFormat {
	case "json":
		return outputJSON(data)
	case "yaml":
		return outputYAML(data)
	default:
		// Table format is handled by each command
		return nil
	}
}

func outputJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func outputYAML(data interface{}) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
