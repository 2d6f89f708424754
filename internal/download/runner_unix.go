//go:build !windows

package download

import (
	"os"
	"os/exec"
	"syscall"
)

// configureCommand puts the child in its own process group so SIGTERM also
// reaches the ffmpeg processes yt-dlp spawns.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM); err != nil {
			if err == syscall.ESRCH {
				return os.ErrProcessDone
			}
			return cmd.Process.Signal(syscall.SIGTERM)
		}
		return nil
	}
}

// killProcessGroup kills whatever is left in the child's process group,
// including descendants that ignored SIGTERM or outlived the leader.
func killProcessGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
