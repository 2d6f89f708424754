// Package logger builds the application logger. Lines written to the log
// file look like
//
//	[2006-01-02 15:04:05.000] [INFO] message
//
// The logger is an explicit value handed to every component that logs;
// there is no package-level instance.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FileName is the log file created inside the log directory
	FileName = "log.txt"

	// TimeLayout is the timestamp layout of file log lines
	TimeLayout = "2006-01-02 15:04:05.000"

	filePermissions = 0o644
	dirPermissions  = 0o755
)

// Options configures New
type Options struct {
	// Dir is the directory holding the log file. Empty means console only.
	Dir string
	// Debug enables debug level output
	Debug bool
}

// Logger couples a zap logger with the file it appends to
type Logger struct {
	*zap.SugaredLogger
	path string
	file *os.File
}

// New builds a logger that appends to <Dir>/log.txt and mirrors to stderr.
// When the file cannot be opened it falls back to stderr only; it never
// fails.
func New(opts Options) *Logger {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		zapcore.AddSync(colorable.NewColorableStderr()),
		level,
	)

	l := &Logger{}
	cores := []zapcore.Core{consoleCore}

	var openErr error
	if opts.Dir != "" {
		l.file, openErr = openLogFile(opts.Dir)
		if openErr == nil {
			l.path = l.file.Name()
			cores = append(cores, zapcore.NewCore(
				zapcore.NewConsoleEncoder(FileEncoderConfig()),
				zapcore.AddSync(l.file),
				level,
			))
		}
	}

	l.SugaredLogger = zap.New(zapcore.NewTee(cores...)).Sugar()
	if openErr != nil {
		l.Warnf("log file unavailable, logging to console only: %v", openErr)
	}
	return l
}

// Path returns the log file path, or "" when logging to console only
func (l *Logger) Path() string {
	return l.path
}

// Recent returns at most maxLines trailing lines of the log file
func (l *Logger) Recent(maxLines int) (string, error) {
	if l.path == "" {
		return "", fmt.Errorf("log file is not configured")
	}
	return ReadRecent(l.path, maxLines)
}

// Close flushes buffered entries and closes the log file
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, filePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// FileEncoderConfig produces "[timestamp] [LEVEL] message" lines
func FileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       bracketTimeEncoder,
		EncodeLevel:      bracketLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := FileEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func bracketTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format(TimeLayout) + "]")
}

func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}
