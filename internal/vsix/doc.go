// Package vsix rewrites the embedded manifest of a VSIX package. A VSIX is a
// zip container with the extension manifest at extension/package.json; Patch
// streams every entry into a fresh archive, preserving entry order and
// per-entry compression, and rewrites only the manifest's engines.vscode
// range. The package also provides the SHA-256 digests used for provenance
// reporting.
package vsix
