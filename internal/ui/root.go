package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/ytdlp-manager/internal/model"
	"github.com/ytget/ytdlp-manager/internal/platform"
)

// Commands is the part of the command surface the window uses
type Commands interface {
	GetSettings() (model.Settings, error)
	UpdateSettings(settings model.Settings) error
	SelectDownloadDirectory(ctx context.Context) (*string, error)
	GetAvailableBrowsers() []string
	StartDownload(ctx context.Context, url string) (string, error)
	StartPlaylist(ctx context.Context, url string) ([]string, error)
	CancelDownload(ctx context.Context, id string) error
	ListDownloads() []model.Job
	ClearFinished() int
	GetRecentLogs(maxLines int) (string, error)
}

// RootUI represents the main UI structure
type RootUI struct {
	window      fyne.Window
	cmds        Commands
	log         *zap.SugaredLogger
	urlEntry    *widget.Entry
	downloadBtn *widget.Button
	jobList     *widget.List
	summary     *widget.Label
	settings    *SettingsDialog

	mu            sync.Mutex
	jobs          []model.Job
	refreshQueued bool
}

// NewRootUI creates the main window content. subscribe registers for job
// updates from the download service.
func NewRootUI(window fyne.Window, cmds Commands, subscribe func(func(model.Job)), log *zap.SugaredLogger) *RootUI {
	ui := &RootUI{
		window: window,
		cmds:   cmds,
		log:    log,
	}
	ui.settings = NewSettingsDialog(cmds, window)
	ui.setupUI()

	if subscribe != nil {
		subscribe(func(model.Job) { ui.scheduleRefresh() })
	}
	ui.reload()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Paste a video or playlist URL")
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.downloadBtn = widget.NewButton("Download", ui.onDownloadClick)

	settingsBtn := widget.NewButton(IconSettings, ui.settings.Show)
	settingsBtn.Importance = widget.LowImportance
	logsBtn := widget.NewButton(IconLogs, ui.onShowLogs)
	logsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, container.NewHBox(settingsBtn, logsBtn), ui.downloadBtn, ui.urlEntry)

	ui.jobList = widget.NewList(
		func() int {
			ui.mu.Lock()
			defer ui.mu.Unlock()
			return len(ui.jobs)
		},
		func() fyne.CanvasObject {
			return NewJobRow(ui.onCancel, ui.onReveal)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.mu.Lock()
			if id >= len(ui.jobs) {
				ui.mu.Unlock()
				return
			}
			job := ui.jobs[id]
			ui.mu.Unlock()
			obj.(*JobRow).Update(job)
		},
	)

	ui.summary = widget.NewLabel("")
	clearBtn := widget.NewButton("Clear finished", func() {
		ui.cmds.ClearFinished()
		ui.reload()
	})
	bottomPanel := container.NewBorder(nil, nil, nil, clearBtn, ui.summary)

	ui.window.SetContent(container.NewBorder(topPanel, bottomPanel, nil, nil, ui.jobList))
}

// onDownloadClick submits the URL in the entry. Playlist URLs are expanded
// in the background since that requires network access.
func (ui *RootUI) onDownloadClick() {
	url := ui.urlEntry.Text
	if url == "" {
		return
	}

	if platform.IsPlaylistURL(url) {
		ui.downloadBtn.Disable()
		go func() {
			ids, err := ui.cmds.StartPlaylist(context.Background(), url)
			fyne.Do(func() {
				ui.downloadBtn.Enable()
				if err != nil {
					dialog.ShowError(err, ui.window)
					return
				}
				ui.log.Infof("Queued %d playlist entries", len(ids))
				ui.urlEntry.SetText("")
				ui.reload()
			})
		}()
		return
	}

	if _, err := ui.cmds.StartDownload(context.Background(), url); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	ui.urlEntry.SetText("")
	ui.reload()
}

// onCancel cancels off the UI goroutine since it waits for the process
func (ui *RootUI) onCancel(jobID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), CancelTimeout)
		defer cancel()

		if err := ui.cmds.CancelDownload(ctx, jobID); err != nil {
			fyne.Do(func() { dialog.ShowError(err, ui.window) })
		}
	}()
}

func (ui *RootUI) onReveal(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.log.Warnf("Failed to reveal %s: %v", filePath, err)
	}
}

func (ui *RootUI) onShowLogs() {
	logs, err := ui.cmds.GetRecentLogs(RecentLogLines)
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	text := widget.NewMultiLineEntry()
	text.SetText(logs)
	text.TextStyle = fyne.TextStyle{Monospace: true}
	d := dialog.NewCustom("Recent logs", "Close", container.NewScroll(text), ui.window)
	d.Resize(fyne.NewSize(WindowWidth*0.9, WindowHeight*0.8))
	d.Show()
}

// scheduleRefresh coalesces bursts of progress events into one redraw
func (ui *RootUI) scheduleRefresh() {
	ui.mu.Lock()
	if ui.refreshQueued {
		ui.mu.Unlock()
		return
	}
	ui.refreshQueued = true
	ui.mu.Unlock()

	time.AfterFunc(UIUpdateDebounce, func() {
		ui.mu.Lock()
		ui.refreshQueued = false
		ui.mu.Unlock()
		fyne.Do(ui.reload)
	})
}

// reload pulls the job list and redraws. Must run on the UI goroutine.
func (ui *RootUI) reload() {
	jobs := ui.cmds.ListDownloads()

	ui.mu.Lock()
	ui.jobs = jobs
	ui.mu.Unlock()

	ui.summary.SetText(summarize(jobs))
	ui.jobList.Refresh()
}

// summarize counts jobs per state for the status line
func summarize(jobs []model.Job) string {
	var running, queued, done, failed int
	for _, job := range jobs {
		switch {
		case job.State.IsActive():
			running++
		case job.State == model.JobStateQueued:
			queued++
		case job.State == model.JobStateCompleted:
			done++
		case job.State == model.JobStateFailed:
			failed++
		}
	}
	if len(jobs) == 0 {
		return "No downloads"
	}
	return fmt.Sprintf("%d running%s%d queued%s%d completed%s%d failed",
		running, MiddleDotSeparator, queued, MiddleDotSeparator, done, MiddleDotSeparator, failed)
}
