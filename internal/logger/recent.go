package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxTailBytes caps how much of the log file ReadRecent scans
const MaxTailBytes = 512 * 1024

// ReadRecent returns at most maxLines trailing lines of the file at path,
// in file order. Only the last MaxTailBytes of the file are read.
func ReadRecent(path string, maxLines int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read log file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to read log file metadata: %w", err)
	}

	return readTail(f, info.Size(), maxLines)
}

func readTail(r io.ReadSeeker, size int64, maxLines int) (string, error) {
	if maxLines <= 0 {
		return "", nil
	}

	truncated := size > MaxTailBytes
	if truncated {
		if _, err := r.Seek(-MaxTailBytes, io.SeekEnd); err != nil {
			return "", fmt.Errorf("failed to seek log file: %w", err)
		}
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxTailBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read log file: %w", err)
	}

	// the first line is partial when reading started mid-file
	if truncated {
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			data = data[i+1:]
		}
	}

	text := strings.TrimRight(string(data), "\r\n")
	if text == "" {
		return "", nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	start := max(len(lines)-maxLines, 0)
	return strings.Join(lines[start:], "\n"), nil
}
