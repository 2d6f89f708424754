package model

import (
	"fmt"
	"strings"
	"time"
)

// Job represents a single download job. Values handed out by the download
// manager are snapshots; mutating them has no effect on the registry.
type Job struct {
	ID            string    `json:"id"`
	URL           string    `json:"url"`
	OutputDir     string    `json:"output_dir"`
	Template      string    `json:"template"`
	CookieBrowser string    `json:"cookie_browser,omitempty"`
	State         JobState  `json:"state"`
	Progress      float64   `json:"progress"` // 0.0 to 1.0
	ETASec        int       `json:"eta_sec"`  // ETA in seconds, -1 if unknown
	Title         string    `json:"title,omitempty"`
	OutputPath    string    `json:"output_path,omitempty"` // final file reported by yt-dlp
	Error         string    `json:"error,omitempty"`       // failure detail for Failed jobs
	CreatedAt     time.Time `json:"created_at"`
	StartedAt     time.Time `json:"started_at,omitempty"`
	FinishedAt    time.Time `json:"finished_at,omitempty"`
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (j *Job) GetETAString() string {
	if j.ETASec <= 0 {
		return "—"
	}

	hours := j.ETASec / 3600
	minutes := (j.ETASec % 3600) / 60
	seconds := j.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (j *Job) GetDisplayTitle() string {
	if j.Title != "" {
		return j.Title
	}

	if j.OutputPath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(j.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return j.URL
}
