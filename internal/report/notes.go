package report

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RenderNotes produces the release-notes markdown for a build. The output is
// a pure function of the record.
func RenderNotes(rec BuildRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Forced VSIX build: %s\n\n", rec.ExtensionID)
	b.WriteString("**What this is:** A repack of the upstream VSIX with `extension/package.json -> engines.vscode`\n")
	b.WriteString("set to a broader semver range so stricter VS Code forks may load it.\n\n")
	fmt.Fprintf(&b, "- Extension: **%s** (`%s`)\n", rec.DisplayName, rec.ExtensionID)
	fmt.Fprintf(&b, "- Upstream version: **%s**\n", rec.Version)
	fmt.Fprintf(&b, "- Patched engines.vscode: **%s**\n", rec.EngineRange)
	fmt.Fprintf(&b, "- Build time (UTC): **%s**\n\n", rec.BuiltUTC)
	b.WriteString("## Files\n")
	fmt.Fprintf(&b, "- Original VSIX: `%s`\n", filepath.Base(rec.OriginalVSIX))
	fmt.Fprintf(&b, "  - SHA256: `%s`\n", rec.OriginalSHA256)
	fmt.Fprintf(&b, "- Forced VSIX: `%s`\n", filepath.Base(rec.ForcedVSIX))
	fmt.Fprintf(&b, "  - SHA256: `%s`\n\n", rec.ForcedSHA256)
	b.WriteString("## Compatibility notes\n")
	b.WriteString("- This bypasses *version gating* only.\n")
	b.WriteString("- If the extension uses APIs not present in your editor build, it may still malfunction at runtime.\n")

	return b.String()
}

// WriteNotes renders the release notes and writes them to path.
func WriteNotes(rec BuildRecord, path string) error {
	return writeFile(path, []byte(RenderNotes(rec)))
}
