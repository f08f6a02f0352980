package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/bitstring"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/clierror"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/keyderive"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/measure"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/provision"
)

func init() {
	rootCmd.AddCommand(challengeCmd)
	challengeCmd.AddCommand(challengeGenerateCmd)

	challengeGenerateCmd.Flags().StringP("input", "i", "", "Measurement file (one hex string per line)")
	challengeGenerateCmd.Flags().Int("challenge-size", provision.DefaultChallengeSize, "Challenge size in bits (multiple of 4)")
	challengeGenerateCmd.Flags().Int("iterations", keyderive.DefaultIterations, "PBKDF2 iteration count (must match device firmware)")
	challengeGenerateCmd.Flags().String("salt", keyderive.DefaultSalt, "KDF salt (must match device firmware)")
	challengeGenerateCmd.Flags().BoolP("verbose", "v", false, "Show mask, extracted material, and KDF parameters")
	challengeGenerateCmd.MarkFlagRequired("input")
}

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Generate PUF challenges and verifier tokens",
}

// generateReport is the JSON/YAML shape of a pipeline run.
type generateReport struct {
	Measurements     int     `json:"measurements" yaml:"measurements"`
	TotalBits        int     `json:"totalBits" yaml:"totalBits"`
	StableBits       int     `json:"stableBits" yaml:"stableBits"`
	StabilityPercent float64 `json:"stabilityPercent" yaml:"stabilityPercent"`
	ChallengeBits    int     `json:"challengeBits" yaml:"challengeBits"`
	Challenge        string  `json:"challenge" yaml:"challenge"`
	Token            string  `json:"token" yaml:"token"`
	Truncated        bool    `json:"truncated" yaml:"truncated"`
}

var challengeGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Derive a challenge and API token from a measurement file",
	Long: `Analyze repeated SRAM measurements, select the stable bit positions, and
derive the two provisioning artifacts:

  - the challenge: a hex bitmask embedded in device firmware
  - the API token: the PBKDF2-derived credential the verifier stores

The first measurement in the file is the reference the token material is
extracted from. Fewer stable bits than the requested challenge size is not
fatal: the challenge is truncated and a warning printed.

Examples:
  pufctl challenge generate -i measurements.txt
  pufctl challenge generate -i measurements.txt --challenge-size 256 -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		size, _ := cmd.Flags().GetInt("challenge-size")
		iterations, _ := cmd.Flags().GetInt("iterations")
		salt, _ := cmd.Flags().GetString("salt")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg := provision.Config{
			ChallengeSize: size,
			KDF:           keyderive.Params{Salt: []byte(salt), Iterations: iterations},
		}
		if err := cfg.Validate(); err != nil {
			return clierror.InvalidArgument(err)
		}

		ms, err := measure.ReadFile(input)
		if err != nil {
			return wrapErr(input, err)
		}
		if len(ms) < 2 {
			return clierror.InsufficientMeasurements(len(ms))
		}

		res, err := provision.Run(ms, cfg)
		if err != nil {
			return wrapErr(input, err)
		}

		report := generateReport{
			Measurements:     len(ms),
			TotalBits:        res.TotalBits,
			StableBits:       res.StableBits,
			StabilityPercent: res.StabilityPercent(),
			ChallengeBits:    res.Challenge.Len(),
			Challenge:        res.ChallengeHex(),
			Token:            res.SecretHex(),
			Truncated:        res.Truncated,
		}
		if outputFormat != "table" {
			return formatOutput(report)
		}

		fmt.Printf("Measurements:  %d (%d bits each)\n", len(ms), res.TotalBits)
		fmt.Printf("Stable bits:   %d/%d (%.2f%%)\n", res.StableBits, res.TotalBits, res.StabilityPercent())
		if res.Truncated {
			color.Yellow("Warning: only %d stable bits available, fewer than the requested %d", res.StableBits, size)
			color.Yellow("Warning: consider a smaller challenge size or more measurements")
		}

		if verbose {
			fmt.Printf("\nMask:          %s\n", bitsHex(res.Mask))
			fmt.Printf("Material:      %s (%d bytes)\n", hex.EncodeToString(res.Material), len(res.Material))
			fmt.Printf("KDF:           PBKDF2-HMAC-SHA256, %d iterations, salt %q\n", iterations, salt)
		}

		fmt.Printf("\n[DEVICE]  PUF challenge: %s\n", res.ChallengeHex())
		fmt.Printf("[SERVER]  API token:     %s\n", res.SecretHex())
		fmt.Println("\nFirmware constant:")
		fmt.Printf("  const char* pufChallenge = %q;\n", res.ChallengeHex())
		fmt.Println("\nRegister the verifier credential with:")
		fmt.Printf("  pufctl device add %s --device-id <name>\n", res.SecretHex())
		return nil
	},
}

// bitsHex renders a mask for display; mask widths are always whole nibbles.
func bitsHex(b bitstring.Bits) string {
	h, err := b.Hex()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return h
}
