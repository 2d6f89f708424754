package security

import (
	"os"
	"strings"
)

const (
	// MinConcurrent is the lowest accepted concurrency limit
	MinConcurrent = 1
	// MaxConcurrent is the highest accepted concurrency limit
	MaxConcurrent = 10
)

// homeEnvVars hold home-directory paths scrubbed from outbound messages
var homeEnvVars = []string{"HOME", "USERPROFILE"}

// ClampMaxConcurrent coerces n into [MinConcurrent, MaxConcurrent]
func ClampMaxConcurrent(n int) int {
	return min(max(n, MinConcurrent), MaxConcurrent)
}

// SanitizeErrorMessage replaces the user's home directory with "~" so error
// text shown to the front-end does not leak the account name.
func SanitizeErrorMessage(msg string) string {
	for _, key := range homeEnvVars {
		home := os.Getenv(key)
		if home == "" || home == "/" {
			continue
		}
		msg = strings.ReplaceAll(msg, home, "~")
	}
	return msg
}
