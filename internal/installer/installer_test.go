package installer

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeScript creates an executable shell script and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures are not portable to windows")
	}

	path := filepath.Join(t.TempDir(), "fake-agy")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInstallBinaryNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-binary")

	if rc := Install(missing, "whatever.vsix"); rc != ExitNotFound {
		t.Errorf("exit code = %d, want %d", rc, ExitNotFound)
	}
}

func TestInstallPropagatesExitCode(t *testing.T) {
	bin := writeScript(t, "exit 3")

	inv := &Invoker{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if rc := inv.Install(bin, "whatever.vsix"); rc != 3 {
		t.Errorf("exit code = %d, want 3", rc)
	}
}

func TestInstallPassesArguments(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	bin := writeScript(t, `printf '%s\n' "$@" > `+argsFile)

	var stdout bytes.Buffer
	inv := &Invoker{Stdout: &stdout, Stderr: &bytes.Buffer{}}
	if rc := inv.Install(bin, "/tmp/acme.widget-1.0.0.forced.vsix"); rc != 0 {
		t.Fatalf("exit code = %d, want 0", rc)
	}

	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	want := "--install-extension\n/tmp/acme.widget-1.0.0.forced.vsix\n"
	if string(data) != want {
		t.Errorf("installer arguments = %q, want %q", data, want)
	}
}

func TestInstallStreamsOutput(t *testing.T) {
	bin := writeScript(t, `echo installing; echo warning >&2`)

	var stdout, stderr bytes.Buffer
	inv := &Invoker{Stdout: &stdout, Stderr: &stderr}
	if rc := inv.Install(bin, "whatever.vsix"); rc != 0 {
		t.Fatalf("exit code = %d, want 0", rc)
	}

	if !strings.Contains(stdout.String(), "installing") {
		t.Errorf("stdout = %q, want child stdout streamed", stdout.String())
	}
	if !strings.Contains(stderr.String(), "warning") {
		t.Errorf("stderr = %q, want child stderr streamed", stderr.String())
	}
}
