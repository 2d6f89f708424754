package model

// DepMode controls how the external yt-dlp and ffmpeg binaries are located
type DepMode string

const (
	// DepModeAuto prefers app-managed binaries and falls back to PATH
	DepModeAuto DepMode = "auto"

	// DepModeSystem only uses binaries found on PATH
	DepModeSystem DepMode = "system"

	// DepModeManaged only uses binaries from the app's bin directory
	DepModeManaged DepMode = "managed"
)

// DepModes lists every supported dependency-resolution mode
var DepModes = []DepMode{DepModeAuto, DepModeSystem, DepModeManaged}

// IsValid reports whether m is a known dependency-resolution mode
func (m DepMode) IsValid() bool {
	for _, known := range DepModes {
		if m == known {
			return true
		}
	}
	return false
}

// Settings is the user-editable configuration exchanged with the front-end.
// Every field that reaches persistence or process arguments has been through
// the sanitizer first.
type Settings struct {
	DownloadPath     string  `json:"download_path"`
	FilenameTemplate string  `json:"filename_template"`
	CookieBrowser    *string `json:"cookie_browser,omitempty"`
	MaxConcurrent    int     `json:"max_concurrent"`
	DepMode          DepMode `json:"dep_mode"`
}

// CookieBrowserValue returns the cookie browser or "" when unset
func (s Settings) CookieBrowserValue() string {
	if s.CookieBrowser == nil {
		return ""
	}
	return *s.CookieBrowser
}
