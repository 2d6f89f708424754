package security

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ytget/ytdlp-manager/internal/model"
)

const (
	// MaxPathLength is the longest output directory accepted, in bytes
	MaxPathLength = 4096

	// MaxTemplateLength is the longest filename template accepted, in bytes
	MaxTemplateLength = 500
)

// disallowedTemplatePatterns may not appear anywhere in a filename template.
// ".." enables traversal; "%(#)" expands unpredictably.
var disallowedTemplatePatterns = []string{
	"..",
	"%(#)",
}

// ValidateOutputPath checks a download directory. Existence and
// writability are left to the I/O that uses it.
func ValidateOutputPath(raw string) (string, error) {
	path := strings.TrimSpace(raw)

	if path == "" {
		return "", model.NewFileError("Download path cannot be empty")
	}

	if len(path) > MaxPathLength {
		return "", model.NewFileError(fmt.Sprintf("Path exceeds maximum length of %d characters", MaxPathLength))
	}

	if !filepath.IsAbs(path) {
		return "", model.NewFileError("Download path must be an absolute path")
	}

	if hasParentComponent(path) {
		return "", model.NewFileError("Download path must not contain '..' traversal")
	}

	return path, nil
}

// hasParentComponent splits on both separators so a Windows-style path is
// screened the same way on every OS.
func hasParentComponent(path string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\' || r == filepath.Separator
	})
	for _, part := range parts {
		if part == ".." {
			return true
		}
	}
	return false
}

// ValidateFilenameTemplate checks a yt-dlp output template. Placeholders
// such as %(title)s are allowed; the template must stay relative so it is
// always joined under the download directory.
func ValidateFilenameTemplate(raw string) (string, error) {
	template := strings.TrimSpace(raw)

	if template == "" {
		return "", model.NewCustom("Filename template cannot be empty")
	}

	if len(template) > MaxTemplateLength {
		return "", model.NewCustom("Filename template is too long")
	}

	for _, pattern := range disallowedTemplatePatterns {
		if strings.Contains(template, pattern) {
			return "", model.NewCustomf("Filename template contains disallowed pattern: '%s'", pattern)
		}
	}

	if isAbsoluteTemplate(template) {
		return "", model.NewCustom("Filename template must be a relative path")
	}

	return template, nil
}

func isAbsoluteTemplate(template string) bool {
	if filepath.IsAbs(template) {
		return true
	}
	return strings.HasPrefix(template, "/") || strings.HasPrefix(template, `\`)
}
