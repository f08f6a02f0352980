package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/clierror"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/store"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/timeutil"
)

// credStore is shared by the device subcommands, opened in the parent's
// PersistentPreRunE.
var credStore *store.Store

func init() {
	rootCmd.AddCommand(deviceCmd)
	deviceCmd.AddCommand(deviceAddCmd)
	deviceCmd.AddCommand(deviceListCmd)
	deviceCmd.AddCommand(deviceRemoveCmd)
	deviceCmd.AddCommand(deviceVerifyCmd)

	deviceAddCmd.Flags().String("device-id", "", "Device identifier (default: random UUID)")
	deviceAddCmd.Flags().String("description", "", "Free-form device description")
}

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage verifier-side device credentials",
	Long: `Commands to register, list, and verify the API tokens that
'pufctl challenge generate' derives. The verifier authenticates a device by
looking up the token it presents.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := dbPath
		if path == "" {
			path = store.DefaultPath()
		}
		var err error
		credStore, err = store.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open credential database: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if credStore != nil {
			credStore.Close()
		}
	},
}

var deviceAddCmd = &cobra.Command{
	Use:   "add <token>",
	Short: "Register a derived API token for a device",
	Long: `Register the 64-hex-character token produced by 'pufctl challenge
generate'. The token is the lookup key: registering the same token twice is
rejected, since two devices sharing a credential would be
indistinguishable.

Examples:
  pufctl device add 8dd49ead... --device-id esp32-lab-01
  pufctl device add 8dd49ead... --device-id esp32-lab-01 --description "bench unit"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceID, _ := cmd.Flags().GetString("device-id")
		description, _ := cmd.Flags().GetString("description")
		if deviceID == "" {
			deviceID = uuid.New().String()
		}

		cred := store.Credential{
			Token:       args[0],
			DeviceID:    deviceID,
			Description: description,
		}
		if err := credStore.Add(cred); err != nil {
			if errors.Is(err, store.ErrDuplicateToken) {
				return clierror.AlreadyExists("token")
			}
			return clierror.InternalError(err)
		}

		if outputFormat != "table" {
			return formatOutput(map[string]any{"status": "registered", "deviceId": deviceID})
		}
		color.Green("Registered device '%s'", deviceID)
		return nil
	},
}

var deviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered device credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := credStore.List()
		if err != nil {
			return clierror.InternalError(err)
		}

		if outputFormat != "table" {
			if len(creds) == 0 {
				fmt.Println("[]")
				return nil
			}
			return formatOutput(creds)
		}

		if len(creds) == 0 {
			fmt.Println("No devices registered. Use 'pufctl device add' to register one.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DEVICE\tTOKEN\tREGISTERED\tDESCRIPTION")
		for _, c := range creds {
			fmt.Fprintf(w, "%s\t%s...\t%s\t%s\n",
				c.DeviceID, c.Token[:16], c.RegisteredAt.Format(time.RFC3339), c.Description)
		}
		return w.Flush()
	},
}

var deviceRemoveCmd = &cobra.Command{
	Use:   "remove <device-id>",
	Short: "Remove a device's credentials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := credStore.RemoveByDevice(args[0])
		if err != nil {
			return clierror.InternalError(err)
		}
		if n == 0 {
			return clierror.DeviceNotFound(args[0])
		}

		if outputFormat != "table" {
			return formatOutput(map[string]any{"status": "removed", "credentials": n})
		}
		fmt.Printf("Removed %d credential(s) for device '%s'\n", n, args[0])
		return nil
	},
}

var deviceVerifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Check whether a presented token matches a registered device",
	Long: `Look up a token the way the verifier does during authentication.
Exit code 0 means the token matches a registered device; exit code 4 means
it does not.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cred, err := credStore.GetByToken(args[0])
		if err != nil {
			return clierror.InternalError(err)
		}
		if cred == nil {
			return clierror.TokenNotFound()
		}

		if outputFormat != "table" {
			return formatOutput(cred)
		}
		color.Green("Token matches device '%s' (registered %s)",
			cred.DeviceID, timeutil.Relative(cred.RegisteredAt))
		return nil
	},
}
