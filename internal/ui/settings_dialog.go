package ui

import (
	"context"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdlp-manager/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	cmds   Commands
	window fyne.Window
	dialog *dialog.ConfirmDialog

	// UI components
	downloadDirEntry *widget.Entry
	maxParallelEntry *widget.Entry
	filenameEntry    *widget.Entry
	browserSelect    *widget.Select
	depModeSelect    *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(cmds Commands, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		cmds:   cmds,
		window: window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	if err := sd.loadCurrentSettings(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-10")

	sd.filenameEntry = widget.NewEntry()
	sd.filenameEntry.SetPlaceHolder("%(title)s.%(ext)s")

	sd.browserSelect = widget.NewSelect(nil, nil)

	modes := make([]string, 0, len(model.DepModes))
	for _, mode := range model.DepModes {
		modes = append(modes, string(mode))
	}
	sd.depModeSelect = widget.NewSelect(modes, nil)

	form := container.NewVBox(
		widget.NewLabel("Download Directory:"),
		downloadDirRow,

		widget.NewLabel("Max Parallel Downloads:"),
		sd.maxParallelEntry,

		widget.NewLabel("Filename Template:"),
		sd.filenameEntry,

		widget.NewLabel("Cookies From Browser:"),
		sd.browserSelect,

		widget.NewLabel("yt-dlp Location:"),
		sd.depModeSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() error {
	settings, err := sd.cmds.GetSettings()
	if err != nil {
		return err
	}

	browsers := append([]string{NoCookieBrowser}, sd.cmds.GetAvailableBrowsers()...)
	current := settings.CookieBrowserValue()
	if current != "" && !contains(browsers, current) {
		browsers = append(browsers, current)
	}
	sd.browserSelect.SetOptions(browsers)

	sd.downloadDirEntry.SetText(settings.DownloadPath)
	sd.maxParallelEntry.SetText(strconv.Itoa(settings.MaxConcurrent))
	sd.filenameEntry.SetText(settings.FilenameTemplate)
	if current == "" {
		current = NoCookieBrowser
	}
	sd.browserSelect.SetSelected(current)
	sd.depModeSelect.SetSelected(string(settings.DepMode))
	return nil
}

// onBrowseDirectory asks for a folder off the UI goroutine; the picker
// itself schedules the dialog back onto it.
func (sd *SettingsDialog) onBrowseDirectory() {
	go func() {
		path, err := sd.cmds.SelectDownloadDirectory(context.Background())
		fyne.Do(func() {
			if err != nil {
				dialog.ShowError(err, sd.window)
				return
			}
			if path != nil {
				sd.downloadDirEntry.SetText(*path)
			}
		})
	}()
}

// collect builds settings from the form fields
func (sd *SettingsDialog) collect() model.Settings {
	settings := model.Settings{
		DownloadPath:     sd.downloadDirEntry.Text,
		FilenameTemplate: sd.filenameEntry.Text,
		DepMode:          model.DepMode(sd.depModeSelect.Selected),
	}

	if maxParallel, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		settings.MaxConcurrent = maxParallel
	}
	if browser := sd.browserSelect.Selected; browser != "" && browser != NoCookieBrowser {
		settings.CookieBrowser = &browser
	}
	return settings
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if err := sd.cmds.UpdateSettings(sd.collect()); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	dialog.ShowInformation("Settings", "Settings saved successfully!", sd.window)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
