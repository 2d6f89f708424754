package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ytget/ytdlp-manager/internal/download"
	"github.com/ytget/ytdlp-manager/internal/model"
	"github.com/ytget/ytdlp-manager/internal/platform"
	"github.com/ytget/ytdlp-manager/internal/security"
)

// DefaultRecentLines is used when GetRecentLogs is asked for zero lines
const DefaultRecentLines = 200

// SettingsStore loads and persists user settings
type SettingsStore interface {
	Load() model.Settings
	Save(settings model.Settings)
}

// Binaries reports whether yt-dlp can be located and drops cached lookups
type Binaries interface {
	Available(ctx context.Context, mode model.DepMode) bool
	Invalidate()
}

// LogReader returns the tail of the application log
type LogReader interface {
	Recent(maxLines int) (string, error)
}

// PlaylistExpander turns a playlist URL into its entries
type PlaylistExpander interface {
	Expand(ctx context.Context, url string) (*model.Playlist, error)
}

// Deps are the collaborators of a Handler
type Deps struct {
	Store    SettingsStore
	Manager  download.Downloader
	Binaries Binaries
	Picker   platform.FolderPicker
	Logs     LogReader
	Playlist PlaylistExpander
	Logger   *zap.SugaredLogger

	// Browsers lists installed browsers; defaults to platform.AvailableBrowsers
	Browsers func() []string

	// EnsureDir creates the download directory; defaults to
	// platform.CreateDirectoryIfNotExists
	EnsureDir func(dir string) error
}

// Handler implements the command surface
type Handler struct {
	deps Deps
	log  *zap.SugaredLogger

	// settingsMu serializes UpdateSettings so the old dep mode is read and
	// the new one written as one step.
	settingsMu sync.Mutex
}

// NewHandler creates a command handler
func NewHandler(deps Deps) *Handler {
	if deps.Browsers == nil {
		deps.Browsers = platform.AvailableBrowsers
	}
	if deps.EnsureDir == nil {
		deps.EnsureDir = platform.CreateDirectoryIfNotExists
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{deps: deps, log: log}
}

// GetSettings returns the current settings
func (h *Handler) GetSettings() (model.Settings, error) {
	return h.deps.Store.Load(), nil
}

// UpdateSettings validates and persists settings, then applies the
// concurrency limit and dependency mode to the running service.
func (h *Handler) UpdateSettings(settings model.Settings) error {
	if settings.DownloadPath != "" {
		path, err := security.ValidateOutputPath(settings.DownloadPath)
		if err != nil {
			return scrub(err)
		}
		settings.DownloadPath = path
	}

	template, err := security.ValidateFilenameTemplate(settings.FilenameTemplate)
	if err != nil {
		return scrub(err)
	}
	settings.FilenameTemplate = template

	if settings.CookieBrowser != nil {
		if strings.TrimSpace(*settings.CookieBrowser) == "" {
			settings.CookieBrowser = nil
		} else {
			browser, err := security.ValidateCookieBrowser(*settings.CookieBrowser)
			if err != nil {
				return scrub(err)
			}
			settings.CookieBrowser = &browser
		}
	}

	if settings.DepMode == "" {
		settings.DepMode = model.DepModeAuto
	}
	if !settings.DepMode.IsValid() {
		return model.NewCustomf("Unsupported dependency mode: '%s'", settings.DepMode)
	}

	settings.MaxConcurrent = security.ClampMaxConcurrent(settings.MaxConcurrent)

	h.settingsMu.Lock()
	defer h.settingsMu.Unlock()

	oldMode := h.deps.Store.Load().DepMode
	h.deps.Store.Save(settings)

	h.deps.Manager.SetMaxConcurrent(settings.MaxConcurrent)
	h.deps.Manager.SetDepMode(settings.DepMode)
	if oldMode != settings.DepMode && h.deps.Binaries != nil {
		h.deps.Binaries.Invalidate()
	}

	h.log.Info("Settings updated")
	return nil
}

// SelectDownloadDirectory opens the folder picker. A nil path means the
// user dismissed the dialog.
func (h *Handler) SelectDownloadDirectory(ctx context.Context) (*string, error) {
	if h.deps.Picker == nil {
		return nil, model.NewCustom("Dialog task failed: no folder picker available")
	}

	path, ok, err := h.deps.Picker.PickFolder(ctx)
	if err != nil {
		return nil, scrub(model.NewCustomf("Dialog task failed: %v", err))
	}
	if !ok {
		return nil, nil
	}
	return &path, nil
}

// GetAvailableBrowsers lists browsers installed on this machine
func (h *Handler) GetAvailableBrowsers() []string {
	browsers := h.deps.Browsers()
	if browsers == nil {
		return []string{}
	}
	return browsers
}

// StartDownload sanitizes url and the current settings and queues a job
func (h *Handler) StartDownload(ctx context.Context, url string) (string, error) {
	cleanURL, err := security.ValidateURL(url)
	if err != nil {
		return "", scrub(err)
	}

	req, mode, err := h.requestFromSettings(cleanURL)
	if err != nil {
		return "", scrub(err)
	}

	if err := h.deps.EnsureDir(req.OutputDir); err != nil {
		return "", scrub(model.NewFileError(fmt.Sprintf("Failed to create download directory: %v", err)))
	}

	if h.deps.Binaries != nil && !h.deps.Binaries.Available(ctx, mode) {
		return "", model.NewCustomf("yt-dlp is not available (dependency mode: %s)", mode)
	}

	id, err := h.deps.Manager.Submit(req)
	if err != nil {
		return "", scrub(err)
	}
	return id, nil
}

// StartPlaylist expands a playlist URL and queues one job per entry. Entries
// that fail validation are skipped and logged.
func (h *Handler) StartPlaylist(ctx context.Context, url string) ([]string, error) {
	cleanURL, err := security.ValidateURL(url)
	if err != nil {
		return nil, scrub(err)
	}
	if !platform.IsPlaylistURL(cleanURL) {
		return nil, model.NewInvalidURL("URL does not reference a playlist")
	}
	if h.deps.Playlist == nil {
		return nil, model.NewCustom("Playlist expansion is not available")
	}

	playlist, err := h.deps.Playlist.Expand(ctx, cleanURL)
	if err != nil {
		return nil, scrub(model.NewCustomf("Failed to expand playlist: %v", err))
	}

	ids := make([]string, 0, len(playlist.Entries))
	var errs []error
	for _, entry := range playlist.Entries {
		id, err := h.StartDownload(ctx, entry.URL)
		if err != nil {
			h.log.Warnf("Skipping playlist entry %s: %v", entry.VideoID, err)
			errs = append(errs, err)
			continue
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 && len(errs) > 0 {
		return nil, scrub(errs[0])
	}
	h.log.Infof("Queued %d of %d playlist entries from %s", len(ids), len(playlist.Entries), playlist.ID)
	return ids, nil
}

// CancelDownload cancels a job and, for a running one, waits for its
// process to exit.
func (h *Handler) CancelDownload(ctx context.Context, id string) error {
	return scrub(h.deps.Manager.Cancel(ctx, id))
}

// ListDownloads returns every job in submission order
func (h *Handler) ListDownloads() []model.Job {
	return h.deps.Manager.List()
}

// ClearFinished drops finished jobs from the list
func (h *Handler) ClearFinished() int {
	return h.deps.Manager.ClearFinished()
}

// GetRecentLogs returns the last maxLines lines of the application log
func (h *Handler) GetRecentLogs(maxLines int) (string, error) {
	if maxLines <= 0 {
		maxLines = DefaultRecentLines
	}
	if h.deps.Logs == nil {
		return "", nil
	}
	logs, err := h.deps.Logs.Recent(maxLines)
	if err != nil {
		return "", scrub(model.NewFileError(fmt.Sprintf("Failed to read log file: %v", err)))
	}
	return security.SanitizeErrorMessage(logs), nil
}

func (h *Handler) requestFromSettings(url string) (download.Request, model.DepMode, error) {
	settings := h.deps.Store.Load()

	dir, err := security.ValidateOutputPath(settings.DownloadPath)
	if err != nil {
		return download.Request{}, "", err
	}
	template, err := security.ValidateFilenameTemplate(settings.FilenameTemplate)
	if err != nil {
		return download.Request{}, "", err
	}

	var browser string
	if value := settings.CookieBrowserValue(); value != "" {
		browser, err = security.ValidateCookieBrowser(value)
		if err != nil {
			return download.Request{}, "", err
		}
	}

	return download.Request{
		URL:           url,
		OutputDir:     dir,
		Template:      template,
		CookieBrowser: browser,
	}, settings.DepMode, nil
}

// scrub removes home directory paths from err, keeping its kind
func scrub(err error) error {
	if err == nil {
		return nil
	}

	var appErr *model.AppError
	if errors.As(err, &appErr) {
		return &model.AppError{
			Kind:    appErr.Kind,
			Message: security.SanitizeErrorMessage(appErr.Message),
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return model.NewCustom(security.SanitizeErrorMessage(err.Error()))
}
