// Package config manages user-level settings stored at ~/.vsixforge/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the gallery endpoint override, the installer binary, and the default
// engine range and output directory.
package config
