package cli

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/vsixlabs/vsixforge/internal/vsix"
)

var (
	patchEngine       string
	patchManifestPath string
)

func init() {
	patchCmd.Flags().StringVar(&patchEngine, "engine", ">=1.0.0", "New engines.vscode semver range")
	patchCmd.Flags().StringVar(&patchManifestPath, "manifest-path", vsix.DefaultManifestPath, "Manifest entry path inside the archive")
	rootCmd.AddCommand(patchCmd)
}

var patchCmd = &cobra.Command{
	Use:   "patch <src.vsix> <dst.vsix>",
	Short: "Patch a local VSIX without touching the network",
	Long: `Rewrite engines.vscode inside an already-downloaded VSIX. Every other
archive entry is copied byte-identical, in the original order.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst := args[0], args[1]
		out := cmd.OutOrStdout()

		if _, err := semver.NewConstraint(patchEngine); err != nil {
			return fmt.Errorf("invalid engine range %q: %w", patchEngine, err)
		}

		fmt.Fprintf(out, "Patching engines.vscode -> %s\n", patchEngine)
		if err := vsix.PatchManifestPath(src, dst, patchEngine, patchManifestPath); err != nil {
			return err
		}

		fmt.Fprintln(out, "Checksums:")
		fmt.Fprintf(out, "  original: %s\n", vsix.FileDigest(src))
		fmt.Fprintf(out, "  forced:   %s\n", vsix.FileDigest(dst))
		fmt.Fprintf(out, "Done. Forced VSIX: %s\n", dst)
		return nil
	},
}
