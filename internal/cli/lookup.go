package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsixlabs/vsixforge/internal/config"
)

var lookupJSON bool

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "Print the resolved descriptor as JSON")
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <publisher.name>",
	Short: "Resolve an extension without downloading it",
	Long: `Query the marketplace gallery for an extension and print its display
name, latest version, and VSIX download URL. No files are written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		extensionID := args[0]
		out := cmd.OutOrStdout()

		config.Load()
		client := newGalleryClient()

		info, err := client.Lookup(extensionID)
		if err != nil {
			return fmt.Errorf("looking up %s: %w", extensionID, err)
		}

		if lookupJSON {
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling descriptor: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Extension: %s (%s)\n", info.DisplayName, info.ID)
		fmt.Fprintf(out, "Version:   %s\n", info.Version)
		fmt.Fprintf(out, "VSIX URL:  %s\n", info.DownloadURL)
		return nil
	},
}
