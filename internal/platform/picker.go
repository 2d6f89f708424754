package platform

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// FolderPicker asks the user to choose a directory. ok is false when the
// user dismissed the dialog without choosing.
type FolderPicker interface {
	PickFolder(ctx context.Context) (path string, ok bool, err error)
}

// FynePicker shows the native Fyne folder dialog over a window
type FynePicker struct {
	window fyne.Window
}

// NewFynePicker creates a picker parented to window
func NewFynePicker(window fyne.Window) *FynePicker {
	return &FynePicker{window: window}
}

type pickResult struct {
	uri fyne.ListableURI
	err error
}

// PickFolder opens the dialog on the UI thread and waits for the user's
// choice on the calling goroutine, so nothing else blocks while it is open.
func (p *FynePicker) PickFolder(ctx context.Context) (string, bool, error) {
	if p.window == nil {
		return "", false, fmt.Errorf("no window available for folder dialog")
	}

	result := make(chan pickResult, 1)
	fyne.Do(func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			result <- pickResult{uri: uri, err: err}
		}, p.window)
	})

	select {
	case r := <-result:
		return pickedPath(r.uri, r.err)
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func pickedPath(uri fyne.ListableURI, err error) (string, bool, error) {
	if err != nil {
		return "", false, err
	}
	if uri == nil {
		return "", false, nil
	}
	return uri.Path(), true, nil
}
