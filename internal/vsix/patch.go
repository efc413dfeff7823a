package vsix

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultManifestPath is where the extension manifest lives inside a VSIX.
const DefaultManifestPath = "extension/package.json"

// candidateLimit bounds the number of alternative manifest paths listed in a
// ManifestNotFoundError.
const candidateLimit = 50

// ManifestNotFoundError reports that the expected manifest path is absent
// from the archive. Candidates lists other entry paths ending in
// "package.json" to aid diagnosis.
type ManifestNotFoundError struct {
	ManifestPath string
	Candidates   []string
}

func (e *ManifestNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "could not find %s inside VSIX\nfound package.json candidates:\n", e.ManifestPath)
	if len(e.Candidates) == 0 {
		b.WriteString("(none)")
	} else {
		b.WriteString(strings.Join(e.Candidates, "\n"))
	}
	return b.String()
}

// Patch rewrites engines.vscode in the archive's manifest at
// DefaultManifestPath, writing the result to dst.
func Patch(src, dst, engineRange string) error {
	return PatchManifestPath(src, dst, engineRange, DefaultManifestPath)
}

// PatchManifestPath copies every entry from src into a newly created dst,
// preserving entry order and per-entry compression method. The single entry
// at manifestPath is parsed as JSON, engines.vscode is set to engineRange
// (creating the engines object if absent), and the entry is re-serialized
// with two-space indentation and a trailing newline. src is never modified;
// dst is overwritten if present.
func PatchManifestPath(src, dst, engineRange, manifestPath string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer zr.Close()

	found := false
	for _, f := range zr.File {
		if f.Name == manifestPath {
			found = true
			break
		}
	}
	if !found {
		var candidates []string
		for _, f := range zr.File {
			if strings.HasSuffix(f.Name, "package.json") {
				candidates = append(candidates, f.Name)
				if len(candidates) == candidateLimit {
					break
				}
			}
		}
		return &ManifestNotFoundError{ManifestPath: manifestPath, Candidates: candidates}
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range zr.File {
		if err := copyEntry(zw, f, manifestPath, engineRange); err != nil {
			zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", dst, err)
	}
	return out.Close()
}

// copyEntry writes one archive entry to zw, rewriting it when it is the
// manifest entry.
func copyEntry(zw *zip.Writer, f *zip.File, manifestPath, engineRange string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", f.Name, err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("reading entry %s: %w", f.Name, err)
	}

	if f.Name == manifestPath {
		data, err = setEngineRange(data, engineRange)
		if err != nil {
			return fmt.Errorf("patching %s: %w", f.Name, err)
		}
	}

	hdr := &zip.FileHeader{
		Name:     f.Name,
		Method:   f.Method,
		Modified: f.Modified,
	}
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("creating entry %s: %w", f.Name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing entry %s: %w", f.Name, err)
	}
	return nil
}

// setEngineRange sets engines.vscode in a package.json document. The engines
// object is created if absent; a non-object engines value is replaced.
func setEngineRange(data []byte, engineRange string) ([]byte, error) {
	var pkg map[string]interface{}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing manifest JSON: %w", err)
	}

	engines, ok := pkg["engines"].(map[string]interface{})
	if !ok {
		engines = make(map[string]interface{})
		pkg["engines"] = engines
	}
	engines["vscode"] = engineRange

	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing manifest JSON: %w", err)
	}
	return append(out, '\n'), nil
}
