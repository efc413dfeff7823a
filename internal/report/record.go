package report

import (
	"path/filepath"
	"time"

	"github.com/vsixlabs/vsixforge/internal/gallery"
	"github.com/vsixlabs/vsixforge/internal/vsix"
)

// builtTimeLayout matches the timestamps emitted into notes and metadata.
const builtTimeLayout = "2006-01-02 15:04:05Z"

// BuildRecord is a snapshot of one forced-build run: the resolved extension,
// the engine range applied, both artifact paths, and their digests. It is
// created once at the end of a successful run and never mutated.
type BuildRecord struct {
	ExtensionID    string `json:"extension_id"`
	DisplayName    string `json:"display_name"`
	Version        string `json:"version"`
	EngineRange    string `json:"engine_range"`
	OriginalVSIX   string `json:"original_vsix"`
	ForcedVSIX     string `json:"forced_vsix"`
	OriginalSHA256 string `json:"original_sha256"`
	ForcedSHA256   string `json:"forced_sha256"`
	BuiltUTC       string `json:"built_utc"`
}

// NewBuildRecord assembles a BuildRecord for the given run. Digests are
// computed leniently — a missing file yields the "unknown" sentinel — so a
// record can be produced even before every artifact is guaranteed to exist.
// Paths are made absolute where possible.
func NewBuildRecord(info *gallery.ExtensionInfo, engineRange, originalPath, forcedPath string) BuildRecord {
	if abs, err := filepath.Abs(originalPath); err == nil {
		originalPath = abs
	}
	if abs, err := filepath.Abs(forcedPath); err == nil {
		forcedPath = abs
	}

	return BuildRecord{
		ExtensionID:    info.ID,
		DisplayName:    info.DisplayName,
		Version:        info.Version,
		EngineRange:    engineRange,
		OriginalVSIX:   originalPath,
		ForcedVSIX:     forcedPath,
		OriginalSHA256: vsix.FileDigest(originalPath),
		ForcedSHA256:   vsix.FileDigest(forcedPath),
		BuiltUTC:       time.Now().UTC().Format(builtTimeLayout),
	}
}
