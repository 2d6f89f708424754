package platform

import (
	"reflect"
	"testing"

	"github.com/ytget/ytdlp-manager/internal/security"
)

func TestDetectBrowsers(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		present  []string
		expected []string
	}{
		{
			name:     "linux de-duplicates chrome",
			goos:     OSLinux,
			present:  []string{"/usr/bin/google-chrome-stable", "/usr/bin/google-chrome", "/usr/bin/firefox"},
			expected: []string{"chrome", "firefox"},
		},
		{
			name:     "linux second chromium path",
			goos:     OSLinux,
			present:  []string{"/usr/bin/chromium", "/usr/bin/microsoft-edge"},
			expected: []string{"chromium", "edge"},
		},
		{
			name:     "darwin keeps check order",
			goos:     OSDarwin,
			present:  []string{"/Applications/Microsoft Edge.app", "/Applications/Safari.app"},
			expected: []string{"safari", "edge"},
		},
		{
			name:     "windows x86 firefox",
			goos:     OSWindows,
			present:  []string{`C:\Program Files (x86)\Mozilla Firefox\firefox.exe`},
			expected: []string{"firefox"},
		},
		{
			name:     "nothing installed",
			goos:     OSLinux,
			present:  nil,
			expected: []string{},
		},
		{
			name:     "unknown platform",
			goos:     "plan9",
			present:  []string{"/usr/bin/firefox"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			present := make(map[string]bool)
			for _, p := range tt.present {
				present[p] = true
			}
			got := DetectBrowsers(tt.goos, func(path string) bool { return present[path] })
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("DetectBrowsers() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestBrowserChecks_NamesAreSupportedCookieBrowsers(t *testing.T) {
	for _, goos := range []string{OSWindows, OSDarwin, OSLinux} {
		checks := BrowserChecks(goos)
		if len(checks) == 0 {
			t.Fatalf("no checks for %s", goos)
		}
		for _, check := range checks {
			if !security.IsSupportedCookieBrowser(check.Name) {
				t.Errorf("%s: %q is not an accepted cookie browser", goos, check.Name)
			}
		}
	}

	if BrowserChecks("plan9") != nil {
		t.Error("expected nil checks for unknown platform")
	}
}
