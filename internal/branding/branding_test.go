package branding

import (
	"strings"
	"testing"
)

func TestIdentityValues(t *testing.T) {
	if CLIName() == "" {
		t.Error("CLIName is empty")
	}
	if HomeDir() == "" || !strings.HasPrefix(HomeDir(), ".") {
		t.Errorf("HomeDir = %q, want a dot-directory", HomeDir())
	}
	if !strings.HasPrefix(GalleryURL(), "https://") {
		t.Errorf("GalleryURL = %q, want an https endpoint", GalleryURL())
	}
	if DefaultInstaller() == "" {
		t.Error("DefaultInstaller is empty")
	}
}

func TestEnvVar(t *testing.T) {
	got := EnvVar("gallery")
	want := EnvPrefix() + "_GALLERY"
	if got != want {
		t.Errorf("EnvVar(gallery) = %q, want %q", got, want)
	}
}
