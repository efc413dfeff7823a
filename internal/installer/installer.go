// Package installer shells out to an editor CLI (agy by default) to install
// a patched VSIX. Failures are reported through the exit code rather than a
// Go error so the caller can propagate them as the process exit status.
package installer

import (
	"errors"
	"io"
	"os"
	"os/exec"
)

// ExitNotFound is the sentinel exit code returned when the installer binary
// cannot be found or started.
const ExitNotFound = 127

// Invoker runs the external installer command.
type Invoker struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Install invokes `<bin> --install-extension <vsixPath>` synchronously,
// streaming the child's output, and returns its exit code. A missing or
// unstartable binary yields ExitNotFound.
func (i *Invoker) Install(bin, vsixPath string) int {
	stdout := i.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := i.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cmd := exec.Command(bin, "--install-extension", vsixPath)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return ExitNotFound
}

// Install runs the installer with default output streams.
func Install(bin, vsixPath string) int {
	return (&Invoker{}).Install(bin, vsixPath)
}
