package security

import (
	"fmt"
	"strings"

	"github.com/ytget/ytdlp-manager/internal/model"
)

// MaxURLLength is the longest URL accepted, in bytes
const MaxURLLength = 8192

// allowedSchemes are matched case-insensitively against the URL prefix
var allowedSchemes = []string{"http://", "https://"}

const blockedHostMessage = "URLs pointing to local or private network addresses are not allowed"

// ValidateURL checks a user supplied URL and returns it trimmed but otherwise
// unchanged. Only http and https URLs whose literal host is not a local or
// private address are accepted.
func ValidateURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)

	if url == "" {
		return "", model.NewInvalidURL("URL is empty")
	}

	if len(url) > MaxURLLength {
		return "", model.NewInvalidURL(fmt.Sprintf("URL exceeds maximum length of %d characters", MaxURLLength))
	}

	lower := strings.ToLower(url)
	if !hasAllowedScheme(lower) {
		return "", model.NewInvalidURL("Only http:// and https:// URLs are supported")
	}

	if host, ok := ExtractHost(lower); ok && IsBlockedHost(host) {
		return "", model.NewInvalidURL(blockedHostMessage)
	}

	return url, nil
}

func hasAllowedScheme(lower string) bool {
	for _, scheme := range allowedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// ExtractHost pulls the host out of an http(s) URL without a full parse.
// Bracketed IPv6 literals are returned with their brackets. A missing
// closing bracket or an empty host yields ok == false.
func ExtractHost(url string) (string, bool) {
	rest, found := "", false
	for _, scheme := range allowedSchemes {
		if len(url) >= len(scheme) && strings.EqualFold(url[:len(scheme)], scheme) {
			rest, found = url[len(scheme):], true
			break
		}
	}
	if !found {
		return "", false
	}

	// userinfo ends at the last "@" of the authority, as RFC 3986 parsers
	// read it; an "@" in the path or query does not count.
	authority := rest
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		authority = rest[:i]
	}
	if at := strings.LastIndex(authority, "@"); at >= 0 {
		rest = rest[at+1:]
	}

	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return "", false
		}
		host := rest[:end+1]
		if len(host) <= 2 {
			return "", false
		}
		return host, true
	}

	if i := strings.IndexAny(rest, ":/?#"); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}
