package ui

import (
	"fmt"
	"math"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdlp-manager/internal/model"
)

// formatProgress renders progress as a whole percent, or a dash when the
// job has not reported any yet.
func formatProgress(job model.Job) string {
	if job.State == model.JobStateQueued || (job.State == model.JobStateRunning && job.Progress <= 0) {
		return DashPlaceholder
	}
	percent := int(math.Round(job.Progress * 100))
	return fmt.Sprintf(ProgressLabelFormat, min(max(percent, 0), 100))
}

// formatStatus renders the state line shown under a job's title
func formatStatus(job model.Job) string {
	parts := []string{job.State.String()}
	switch job.State {
	case model.JobStateRunning:
		parts = append(parts, "ETA "+job.GetETAString())
	case model.JobStateFailed:
		if job.Error != "" {
			parts = append(parts, firstLine(job.Error))
		}
	}
	return strings.Join(parts, MiddleDotSeparator)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// JobRow renders a single job
type JobRow struct {
	widget.BaseWidget

	job model.Job

	titleLabel    *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	progressBar   *widget.ProgressBar
	cancelBtn     *widget.Button
	revealBtn     *widget.Button

	onCancel func(jobID string)
	onReveal func(filePath string)
}

// NewJobRow creates an empty row; call Update to bind it to a job
func NewJobRow(onCancel func(jobID string), onReveal func(filePath string)) *JobRow {
	row := &JobRow{onCancel: onCancel, onReveal: onReveal}
	row.ExtendBaseWidget(row)

	row.titleLabel = widget.NewLabel("")
	row.titleLabel.Truncation = fyne.TextTruncateEllipsis
	row.statusLabel = widget.NewLabel("")
	row.progressLabel = widget.NewLabel(DashPlaceholder)
	row.progressBar = widget.NewProgressBar()

	row.cancelBtn = widget.NewButton(IconClose, func() {
		if row.onCancel != nil {
			row.onCancel(row.job.ID)
		}
	})
	row.revealBtn = widget.NewButton(IconFolder, func() {
		if row.onReveal != nil && row.job.OutputPath != "" {
			row.onReveal(row.job.OutputPath)
		}
	})
	return row
}

// Update rebinds the row to a job snapshot
func (r *JobRow) Update(job model.Job) {
	r.job = job
	r.titleLabel.SetText(job.GetDisplayTitle())
	r.statusLabel.SetText(formatStatus(job))
	r.progressLabel.SetText(formatProgress(job))
	r.progressBar.SetValue(job.Progress)

	if job.State.IsTerminal() {
		r.cancelBtn.Disable()
	} else {
		r.cancelBtn.Enable()
	}
	if job.State == model.JobStateCompleted && job.OutputPath != "" {
		r.revealBtn.Enable()
	} else {
		r.revealBtn.Disable()
	}
}

// CreateRenderer implements fyne.Widget
func (r *JobRow) CreateRenderer() fyne.WidgetRenderer {
	actions := container.NewHBox(r.progressLabel, r.revealBtn, r.cancelBtn)
	text := container.NewVBox(r.titleLabel, r.statusLabel, r.progressBar)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, actions, text))
}
