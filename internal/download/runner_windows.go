//go:build windows

package download

import "os/exec"

// configureCommand kills the process outright; Windows has no SIGTERM.
func configureCommand(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
}

// killProcessGroup is a no-op: the child is started without a process
// group on Windows and Cancel already killed it.
func killProcessGroup(*exec.Cmd) {}
