// Package report renders the human-readable release notes and the
// machine-readable build metadata record for a forced VSIX build. The
// metadata record is validated against an embedded JSON schema before it is
// written, so CI consumers can rely on its shape.
package report
