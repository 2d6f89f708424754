package config

import (
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/ytget/ytdlp-manager/internal/model"
	"github.com/ytget/ytdlp-manager/internal/platform"
	"github.com/ytget/ytdlp-manager/internal/security"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir      = "download_directory"
	KeyFilenameTemplate = "filename_template"
	KeyCookieBrowser    = "cookie_browser"
	KeyMaxParallel      = "max_parallel_downloads"
	KeyDepMode          = "dep_mode"
)

// Default values
const (
	DefaultMaxParallel      = 2
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
	DefaultDepMode          = model.DepModeAuto
)

// Store persists user settings in Fyne preferences
type Store struct {
	mu    sync.Mutex
	prefs fyne.Preferences
}

// NewStore creates a settings store backed by the app's preferences
func NewStore(app fyne.App) *Store {
	return NewStoreWithPreferences(app.Preferences())
}

// NewStoreWithPreferences creates a store over an arbitrary preferences backend
func NewStoreWithPreferences(prefs fyne.Preferences) *Store {
	return &Store{prefs: prefs}
}

// Load returns the stored settings with defaults filled in
func (s *Store) Load() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := model.Settings{
		DownloadPath:     s.downloadDirectory(),
		FilenameTemplate: s.filenameTemplate(),
		MaxConcurrent:    s.maxParallelDownloads(),
		DepMode:          s.depMode(),
	}
	if browser := s.prefs.String(KeyCookieBrowser); browser != "" {
		settings.CookieBrowser = &browser
	}
	return settings
}

// Save stores settings. Callers validate paths, templates and browsers
// first; the concurrency limit is clamped here.
func (s *Store) Save(settings model.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs.SetString(KeyDownloadDir, settings.DownloadPath)
	s.prefs.SetString(KeyFilenameTemplate, settings.FilenameTemplate)
	s.prefs.SetString(KeyCookieBrowser, settings.CookieBrowserValue())
	s.prefs.SetInt(KeyMaxParallel, security.ClampMaxConcurrent(settings.MaxConcurrent))

	mode := settings.DepMode
	if !mode.IsValid() {
		mode = DefaultDepMode
	}
	s.prefs.SetString(KeyDepMode, string(mode))
}

func (s *Store) downloadDirectory() string {
	dir := s.prefs.String(KeyDownloadDir)
	if dir != "" {
		return dir
	}

	// Use system default Downloads directory
	defaultDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		defaultDir = filepath.Join(os.TempDir(), "downloads")
	}
	s.prefs.SetString(KeyDownloadDir, defaultDir)
	return defaultDir
}

func (s *Store) filenameTemplate() string {
	template := s.prefs.String(KeyFilenameTemplate)
	if template == "" {
		s.prefs.SetString(KeyFilenameTemplate, DefaultFilenameTemplate)
		return DefaultFilenameTemplate
	}
	return template
}

func (s *Store) maxParallelDownloads() int {
	value := s.prefs.Int(KeyMaxParallel)
	if value <= 0 {
		s.prefs.SetInt(KeyMaxParallel, DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return security.ClampMaxConcurrent(value)
}

func (s *Store) depMode() model.DepMode {
	mode := model.DepMode(s.prefs.String(KeyDepMode))
	if !mode.IsValid() {
		return DefaultDepMode
	}
	return mode
}
