package platform

import (
	"os"
	"runtime"
)

// BrowserCheck pairs a cookie browser identifier with a well-known install path
type BrowserCheck struct {
	Name string
	Path string
}

// browserChecks are probed in order; the first hit for a name wins
var browserChecks = map[string][]BrowserCheck{
	OSWindows: {
		{"chrome", `C:\Program Files\Google\Chrome\Application\chrome.exe`},
		{"chrome", `C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`},
		{"firefox", `C:\Program Files\Mozilla Firefox\firefox.exe`},
		{"firefox", `C:\Program Files (x86)\Mozilla Firefox\firefox.exe`},
		{"edge", `C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`},
		{"brave", `C:\Program Files\BraveSoftware\Brave-Browser\Application\brave.exe`},
	},
	OSDarwin: {
		{"chrome", "/Applications/Google Chrome.app"},
		{"firefox", "/Applications/Firefox.app"},
		{"safari", "/Applications/Safari.app"},
		{"brave", "/Applications/Brave Browser.app"},
		{"edge", "/Applications/Microsoft Edge.app"},
	},
	OSLinux: {
		{"chrome", "/usr/bin/google-chrome-stable"},
		{"chrome", "/usr/bin/google-chrome"},
		{"chromium", "/usr/bin/chromium-browser"},
		{"chromium", "/usr/bin/chromium"},
		{"firefox", "/usr/bin/firefox"},
		{"brave", "/usr/bin/brave-browser"},
		{"edge", "/usr/bin/microsoft-edge"},
	},
}

// BrowserChecks returns the probe table for goos, or nil for unknown platforms
func BrowserChecks(goos string) []BrowserCheck {
	checks := browserChecks[goos]
	if checks == nil {
		return nil
	}
	return append([]BrowserCheck(nil), checks...)
}

// DetectBrowsers returns the browsers whose install path exists, in probe
// order and without duplicates.
func DetectBrowsers(goos string, exists func(path string) bool) []string {
	browsers := make([]string, 0)
	seen := make(map[string]bool)
	for _, check := range browserChecks[goos] {
		if seen[check.Name] || !exists(check.Path) {
			continue
		}
		seen[check.Name] = true
		browsers = append(browsers, check.Name)
	}
	return browsers
}

// AvailableBrowsers probes the current host
func AvailableBrowsers() []string {
	return DetectBrowsers(runtime.GOOS, pathExists)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
