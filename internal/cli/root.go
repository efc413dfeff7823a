package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/vsixlabs/vsixforge/internal/branding"
	"github.com/vsixlabs/vsixforge/internal/config"
	"github.com/vsixlabs/vsixforge/internal/gallery"
	"github.com/vsixlabs/vsixforge/internal/installer"
	"github.com/vsixlabs/vsixforge/internal/report"
	"github.com/vsixlabs/vsixforge/internal/vsix"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	forceEngine    string
	forceOutDir    string
	forceInstall   bool
	forceInstaller string
	forceNotes     bool
	forceMetaJSON  string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <publisher.name>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` downloads an extension package from the marketplace gallery,
rewrites engines.vscode in its embedded manifest to a broader semver range,
and republishes the patched VSIX — optionally installing it via an editor CLI.

  ` + branding.CLIName() + ` github.vscode-pull-request-github --engine ">=1.0.0" --notes
  ` + branding.CLIName() + ` github.vscode-pull-request-github --install --installer agy`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runForce,
}

func init() {
	rootCmd.Flags().StringVar(&forceEngine, "engine", ">=1.0.0", "New engines.vscode semver range")
	rootCmd.Flags().StringVar(&forceOutDir, "out-dir", "dist", "Output directory for build artifacts")
	rootCmd.Flags().BoolVar(&forceInstall, "install", false, "Install the forced VSIX via the editor CLI")
	rootCmd.Flags().StringVar(&forceInstaller, "installer", branding.DefaultInstaller(), "Path to the editor CLI binary")
	rootCmd.Flags().BoolVar(&forceNotes, "notes", false, "Write release notes markdown into out-dir")
	rootCmd.Flags().StringVar(&forceMetaJSON, "meta-json", "", "Write build metadata JSON to this path")
}

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code. A failed --install propagates the
// installer's exit code.
func Execute(version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ec *exitCodeError
		if errors.As(err, &ec) {
			return ec.code
		}
		return 1
	}
	return 0
}

// exitCodeError carries a specific process exit code up through Cobra's
// error return.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// runForce executes the forward-only pipeline:
// resolve → fetch-if-absent → patch → hash → (notes) → (meta) → (install).
// Any step's failure aborts the remaining steps.
func runForce(cmd *cobra.Command, args []string) error {
	extensionID := args[0]
	out := cmd.OutOrStdout()

	config.Load()
	engineRange := resolveSetting(cmd, "engine", config.KeyEngine)
	outDir := resolveSetting(cmd, "out-dir", config.KeyOutDir)
	installerBin := resolveSetting(cmd, "installer", config.KeyInstaller)

	// Reject a malformed range before any network traffic.
	if _, err := semver.NewConstraint(engineRange); err != nil {
		return fmt.Errorf("invalid engine range %q: %w", engineRange, err)
	}

	outDir, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	client := newGalleryClient()

	fmt.Fprintf(out, "Looking up %s ...\n", extensionID)
	info, err := client.Lookup(extensionID)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", extensionID, err)
	}
	fmt.Fprintf(out, "Found %s version %s\n", info.DisplayName, info.Version)
	fmt.Fprintf(out, "VSIX URL: %s\n", info.DownloadURL)

	origPath := filepath.Join(outDir, fmt.Sprintf("%s-%s.vsix", info.ID, info.Version))
	forcedPath := filepath.Join(outDir, fmt.Sprintf("%s-%s.forced.vsix", info.ID, info.Version))
	notesPath := filepath.Join(outDir, fmt.Sprintf("%s-%s.RELEASE_NOTES.md", info.ID, info.Version))

	skipped, err := client.DownloadIfAbsent(info.DownloadURL, origPath)
	if err != nil {
		return fmt.Errorf("downloading VSIX: %w", err)
	}
	if skipped {
		fmt.Fprintf(out, "Using existing file %s\n", origPath)
	} else {
		fmt.Fprintf(out, "Downloaded %s\n", origPath)
	}

	fmt.Fprintf(out, "Patching engines.vscode -> %s\n", engineRange)
	if err := vsix.Patch(origPath, forcedPath, engineRange); err != nil {
		return err
	}

	rec := report.NewBuildRecord(info, engineRange, origPath, forcedPath)
	fmt.Fprintln(out, "Checksums:")
	fmt.Fprintf(out, "  original: %s\n", rec.OriginalSHA256)
	fmt.Fprintf(out, "  forced:   %s\n", rec.ForcedSHA256)

	if forceNotes {
		if err := report.WriteNotes(rec, notesPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote release notes: %s\n", notesPath)
	}

	if forceMetaJSON != "" {
		metaPath, err := filepath.Abs(forceMetaJSON)
		if err != nil {
			return fmt.Errorf("resolving metadata path: %w", err)
		}
		if err := report.WriteMeta(rec, metaPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote metadata: %s\n", metaPath)
	}

	if forceInstall {
		fmt.Fprintf(out, "Installing via %s ...\n", installerBin)
		if rc := installer.Install(installerBin, forcedPath); rc != 0 {
			return &exitCodeError{
				code: rc,
				msg:  fmt.Sprintf("install command failed with exit code %d", rc),
			}
		}
		fmt.Fprintln(out, "Install command completed. Restart the editor so the extension host reloads.")
	}

	fmt.Fprintf(out, "Done. Forced VSIX: %s\n", forcedPath)
	return nil
}

// resolveSetting picks a string setting using flag > env/config > flag
// default precedence. Environment variables are consulted by Viper through
// the VSIXFORGE prefix.
func resolveSetting(cmd *cobra.Command, flag, configKey string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := config.Get(configKey); v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// newGalleryClient builds a gallery client honoring a configured endpoint
// override (config key "gallery" or VSIXFORGE_GALLERY).
func newGalleryClient() *gallery.Client {
	var opts []gallery.Option
	if endpoint := config.Get(config.KeyGallery); endpoint != "" {
		opts = append(opts, gallery.WithEndpoint(endpoint))
	}
	return gallery.New(opts...)
}
