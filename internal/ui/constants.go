package ui

import "time"

// Icons
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconClose    = "×"
	IconLogs     = "☰"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
	NoCookieBrowser     = "none"
)

// Layout sizing
const (
	StatusLabelWidth  float32 = 84
	PercentLabelWidth float32 = 48

	WindowWidth  float32 = 800
	WindowHeight float32 = 600

	DialogWidth  float32 = 500
	DialogHeight float32 = 420
)

// Behavior
const (
	UIUpdateDebounce = 100 * time.Millisecond
	CancelTimeout    = 10 * time.Second
	RecentLogLines   = 200
)
