package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// AppDirName is the per-user directory holding logs and managed binaries
const AppDirName = "ytdlp-manager"

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// GetAppDataDir returns the per-user application data directory
func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, AppDirName), nil
}

// OpenFileInManager reveals a downloaded file in the system file manager
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	cmd, err := revealCommand(runtime.GOOS, absPath)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// revealCommand builds the file manager invocation. Linux has no standard
// selection flag, so the parent directory is opened instead.
func revealCommand(goos, absPath string) (*exec.Cmd, error) {
	switch goos {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath), nil
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam+absPath), nil
	case OSLinux:
		return exec.Command(XDGOpenCommand, filepath.Dir(absPath)), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
