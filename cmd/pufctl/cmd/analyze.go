package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/analysis"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/bitstring"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/clierror"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/measure"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzeDistanceCmd)
	analyzeCmd.AddCommand(analyzeWeightCmd)
	analyzeCmd.AddCommand(analyzeStabilityCmd)

	analyzeCmd.PersistentFlags().StringP("input", "i", "", "Measurement file (one hex string per line)")
	analyzeCmd.MarkPersistentFlagRequired("input")

	analyzeDistanceCmd.Flags().IntP("compare", "c", 0, "Compare all measurements to measurement number N")
	analyzeDistanceCmd.Flags().BoolP("rolling", "r", false, "Compare each measurement to the previous one")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "PUF quality diagnostics for one device",
	Long: `Read-only diagnostics over a measurement file. These reports guide
challenge sizing and device screening; they do not touch the credential
path. Healthy SRAM PUFs show low intra-device Hamming distance, near-50%
Hamming weight, and high bit stability.`,
}

func readInput(cmd *cobra.Command) ([]bitstring.Bits, string, error) {
	input, _ := cmd.Flags().GetString("input")
	ms, err := measure.ReadFile(input)
	if err != nil {
		return nil, input, wrapErr(input, err)
	}
	return ms, input, nil
}

var analyzeDistanceCmd = &cobra.Command{
	Use:   "distance",
	Short: "Hamming distance between measurements",
	Long: `Compute intra-device Hamming distances. By default every pair of
measurements is compared; --compare pins one reference measurement and
--rolling compares consecutive readings only (the same pairs stability
analysis inspects).

Examples:
  pufctl analyze distance -i data.txt
  pufctl analyze distance -i data.txt --compare 1
  pufctl analyze distance -i data.txt --rolling`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, _, err := readInput(cmd)
		if err != nil {
			return err
		}
		if len(ms) < 2 {
			return clierror.InsufficientMeasurements(len(ms))
		}

		ref, _ := cmd.Flags().GetInt("compare")
		rolling, _ := cmd.Flags().GetBool("rolling")

		var rows []analysis.Distance
		switch {
		case rolling:
			rows, err = analysis.Rolling(ms)
		case ref > 0:
			rows, err = analysis.CompareTo(ms, ref)
		default:
			rows, err = analysis.Matrix(ms)
		}
		if err != nil {
			return wrapErr("", err)
		}

		if outputFormat != "table" {
			return formatOutput(rows)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PAIR\tDISTANCE\tPERCENT")
		for _, r := range rows {
			fmt.Fprintf(w, "%d-%d\t%d\t%.2f%%\n", r.I, r.J, r.Bits, r.Percent)
		}
		return w.Flush()
	},
}

var analyzeWeightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Hamming weight of each measurement",
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, _, err := readInput(cmd)
		if err != nil {
			return err
		}

		rows := analysis.Weights(ms)
		if outputFormat != "table" {
			return formatOutput(rows)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MEASUREMENT\tWEIGHT\tPERCENT")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%d\t%.2f%%\n", r.N, r.Bits, r.Percent)
		}
		return w.Flush()
	},
}

var analyzeStabilityCmd = &cobra.Command{
	Use:   "stability",
	Short: "Share of bit positions stable across consecutive readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ms, _, err := readInput(cmd)
		if err != nil {
			return err
		}
		if len(ms) < 2 {
			return clierror.InsufficientMeasurements(len(ms))
		}

		sum, err := analysis.Stability(ms)
		if err != nil {
			return wrapErr("", err)
		}

		if outputFormat != "table" {
			return formatOutput(sum)
		}

		fmt.Printf("Measurements: %d\n", sum.Measurements)
		fmt.Printf("Stable bits:  %d/%d (%.2f%%)\n", sum.StableBits, sum.TotalBits, sum.Percent)
		return nil
	},
}
