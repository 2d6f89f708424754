package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"github.com/ytget/ytdlp-manager/internal/platform"
)

// Options are process-level settings taken from flags and the environment.
// They are not user preferences and are never persisted.
type Options struct {
	LogDir      string        `arg:"--log-dir,env:YTDM_LOG_DIR" help:"directory for log.txt"`
	BinDir      string        `arg:"--bin-dir,env:YTDM_BIN_DIR" help:"directory holding app-managed yt-dlp and ffmpeg"`
	KillTimeout time.Duration `arg:"--kill-timeout,env:YTDM_KILL_TIMEOUT" default:"5s" help:"grace period between terminate and kill"`
	Debug       bool          `arg:"--debug,env:YTDM_DEBUG" help:"enable debug logging"`
	URLs        []string      `arg:"positional" help:"URLs to queue on startup"`

	PlaylistTimeout time.Duration `arg:"--playlist-timeout,env:YTDM_PLAYLIST_TIMEOUT" default:"60s" help:"time limit for listing a playlist"`
}

// Description implements arg.Described
func (Options) Description() string {
	return "ytdlp-manager queues and runs yt-dlp downloads"
}

// LoadEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ParseOptions parses args (without the program name) and fills in
// directory defaults under the per-user app data directory.
func ParseOptions(args []string) (Options, error) {
	var opts Options
	parser, err := arg.NewParser(arg.Config{Program: "ytdlp-manager"}, &opts)
	if err != nil {
		return Options{}, err
	}
	if err := parser.Parse(args); err != nil {
		return Options{}, err
	}

	if opts.KillTimeout <= 0 {
		return Options{}, fmt.Errorf("kill timeout must be positive, got %s", opts.KillTimeout)
	}
	if opts.PlaylistTimeout <= 0 {
		return Options{}, fmt.Errorf("playlist timeout must be positive, got %s", opts.PlaylistTimeout)
	}

	if opts.LogDir == "" || opts.BinDir == "" {
		appDir, err := platform.GetAppDataDir()
		if err != nil {
			return Options{}, fmt.Errorf("failed to locate app data directory: %w", err)
		}
		if opts.LogDir == "" {
			opts.LogDir = filepath.Join(appDir, "logs")
		}
		if opts.BinDir == "" {
			opts.BinDir = filepath.Join(appDir, "bin")
		}
	}
	return opts, nil
}

// WriteHelp prints usage for the command-line options
func WriteHelp(w io.Writer) {
	var opts Options
	parser, err := arg.NewParser(arg.Config{Program: "ytdlp-manager"}, &opts)
	if err != nil {
		return
	}
	parser.WriteHelp(w)
}
