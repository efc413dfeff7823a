// Package cli defines the Cobra command tree for the vsixforge CLI. The
// root command runs the full force-build pipeline; each other file registers
// one subcommand (lookup, patch, config, version) with the root command.
// Command implementations delegate to internal packages for business logic
// and only handle flag parsing, I/O formatting, and exit-code propagation.
package cli
