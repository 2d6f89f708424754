package security

import (
	"sort"
	"strings"

	"github.com/ytget/ytdlp-manager/internal/model"
)

// validCookieBrowsers are the names yt-dlp accepts for --cookies-from-browser
var validCookieBrowsers = map[string]bool{
	"brave":    true,
	"chrome":   true,
	"chromium": true,
	"edge":     true,
	"firefox":  true,
	"opera":    true,
	"safari":   true,
	"vivaldi":  true,
	"whale":    true,
}

// SupportedCookieBrowsers returns the allow-list in sorted order
func SupportedCookieBrowsers() []string {
	names := make([]string, 0, len(validCookieBrowsers))
	for name := range validCookieBrowsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupportedCookieBrowser reports whether name is on the allow-list
func IsSupportedCookieBrowser(name string) bool {
	return validCookieBrowsers[strings.ToLower(name)]
}

// ValidateCookieBrowser checks a browser identifier, optionally carrying a
// profile ("chrome:Profile 1"). The lower-cased value, profile included, is
// returned on success.
func ValidateCookieBrowser(raw string) (string, error) {
	browser := strings.ToLower(strings.TrimSpace(raw))

	if browser == "" {
		return "", model.NewCustom("Cookie browser name cannot be empty")
	}

	name, _, _ := strings.Cut(browser, ":")
	if !validCookieBrowsers[name] {
		return "", model.NewCustomf("Unsupported cookie browser: '%s'. Supported: %s",
			name, strings.Join(SupportedCookieBrowsers(), ", "))
	}

	return browser, nil
}
