package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/ytdlp-manager/internal/model"
)

func newTestStore() *Store {
	return NewStore(test.NewApp())
}

func TestLoadDefaults(t *testing.T) {
	store := newTestStore()

	settings := store.Load()
	if settings.DownloadPath == "" {
		t.Error("Download path should not be empty")
	}
	if settings.FilenameTemplate != DefaultFilenameTemplate {
		t.Errorf("Expected template %s, got %s", DefaultFilenameTemplate, settings.FilenameTemplate)
	}
	if settings.CookieBrowser != nil {
		t.Errorf("Expected no cookie browser, got %q", *settings.CookieBrowser)
	}
	if settings.MaxConcurrent != DefaultMaxParallel {
		t.Errorf("Expected max concurrent %d, got %d", DefaultMaxParallel, settings.MaxConcurrent)
	}
	if settings.DepMode != model.DepModeAuto {
		t.Errorf("Expected dep mode auto, got %s", settings.DepMode)
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore()
	browser := "firefox:default-release"

	store.Save(model.Settings{
		DownloadPath:     "/custom/downloads",
		FilenameTemplate: "%(uploader)s/%(title)s.%(ext)s",
		CookieBrowser:    &browser,
		MaxConcurrent:    5,
		DepMode:          model.DepModeSystem,
	})

	settings := store.Load()
	if settings.DownloadPath != "/custom/downloads" {
		t.Errorf("Expected download path /custom/downloads, got %s", settings.DownloadPath)
	}
	if settings.FilenameTemplate != "%(uploader)s/%(title)s.%(ext)s" {
		t.Errorf("Unexpected template %s", settings.FilenameTemplate)
	}
	if settings.CookieBrowser == nil || *settings.CookieBrowser != browser {
		t.Errorf("Expected cookie browser %s, got %v", browser, settings.CookieBrowser)
	}
	if settings.MaxConcurrent != 5 {
		t.Errorf("Expected max concurrent 5, got %d", settings.MaxConcurrent)
	}
	if settings.DepMode != model.DepModeSystem {
		t.Errorf("Expected dep mode system, got %s", settings.DepMode)
	}
}

func TestSaveClearsCookieBrowser(t *testing.T) {
	store := newTestStore()
	browser := "chrome"
	settings := store.Load()
	settings.CookieBrowser = &browser
	store.Save(settings)

	settings.CookieBrowser = nil
	store.Save(settings)

	if got := store.Load().CookieBrowser; got != nil {
		t.Errorf("Expected cookie browser to be cleared, got %q", *got)
	}
}

func TestMaxParallelDownloadsClamped(t *testing.T) {
	store := newTestStore()

	tests := []struct {
		in, want int
	}{
		{5, 5},
		{0, 1},   // Should be clamped to 1
		{15, 10}, // Should be clamped to 10
	}
	for _, tt := range tests {
		settings := store.Load()
		settings.MaxConcurrent = tt.in
		store.Save(settings)
		if got := store.Load().MaxConcurrent; got != tt.want {
			t.Errorf("Save(%d): expected max concurrent %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestInvalidDepModeFallsBack(t *testing.T) {
	app := test.NewApp()
	app.Preferences().SetString(KeyDepMode, "portable")
	store := NewStore(app)

	if mode := store.Load().DepMode; mode != DefaultDepMode {
		t.Errorf("Expected fallback dep mode %s, got %s", DefaultDepMode, mode)
	}

	settings := store.Load()
	settings.DepMode = "bogus"
	store.Save(settings)
	if got := app.Preferences().String(KeyDepMode); got != string(DefaultDepMode) {
		t.Errorf("Expected stored dep mode %s, got %s", DefaultDepMode, got)
	}
}

func TestDownloadDirectoryDefaultIsPersisted(t *testing.T) {
	app := test.NewApp()
	store := NewStore(app)

	dir := store.Load().DownloadPath
	if dir == "" {
		t.Fatal("Download directory should not be empty")
	}
	if got := app.Preferences().String(KeyDownloadDir); got != dir {
		t.Errorf("Expected default %s to be stored, got %s", dir, got)
	}
}
