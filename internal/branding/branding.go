// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary. Every value has a hard default so a
// missing or partial file still produces a working binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	HomeDir          string `yaml:"home_dir"`
	EnvPrefix        string `yaml:"env_prefix"`
	UserAgent        string `yaml:"user_agent"`
	GalleryURL       string `yaml:"gallery_url"`
	DefaultInstaller string `yaml:"default_installer"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:          "vsixforge",
			DisplayName:      "VSIX Forge",
			Description:      "Repack marketplace extensions with a broadened engine range",
			HomeDir:          ".vsixforge",
			EnvPrefix:        "VSIXFORGE",
			UserAgent:        "vsixforge",
			GalleryURL:       "https://marketplace.visualstudio.com/_apis/public/gallery/extensionquery",
			DefaultInstaller: "agy",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "vsixforge").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".vsixforge").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "VSIXFORGE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// UserAgent returns the User-Agent header value for gallery requests.
func UserAgent() string { load(); return defaults.UserAgent }

// GalleryURL returns the default marketplace extension-query endpoint.
func GalleryURL() string { load(); return defaults.GalleryURL }

// DefaultInstaller returns the default editor CLI used for --install.
func DefaultInstaller() string { load(); return defaults.DefaultInstaller }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("GALLERY") → "VSIXFORGE_GALLERY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
