package security

import (
	"net/netip"
	"strings"
)

// blockedHostnames are rejected by exact match
var blockedHostnames = map[string]bool{
	"localhost":             true,
	"localhost.localdomain": true,
	"[::]":                  true,
	"[::1]":                 true,
}

// blockedHostSuffixes are rejected when the host ends with them
var blockedHostSuffixes = []string{".localhost"}

// blockedPrefixes lists loopback, private, link-local, CGNAT and
// unique-local ranges. Unspecified and broadcast addresses are single
// host prefixes.
var blockedPrefixes = mustParsePrefixes(
	"127.0.0.0/8",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"169.254.0.0/16",
	"100.64.0.0/10",
	"0.0.0.0/32",
	"255.255.255.255/32",
	"::1/128",
	"::/128",
	"fe80::/10",
	"fc00::/7",
)

func mustParsePrefixes(values ...string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		prefixes = append(prefixes, netip.MustParsePrefix(v))
	}
	return prefixes
}

// IsBlockedHost reports whether host names a local or private network
// target. Only literal addresses are classified; names are not resolved.
func IsBlockedHost(host string) bool {
	host = strings.ToLower(host)

	if blockedHostnames[host] {
		return true
	}
	for _, suffix := range blockedHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}

	literal := strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	addr, err := netip.ParseAddr(literal)
	if err != nil {
		return false
	}
	return IsBlockedAddr(addr)
}

// IsBlockedAddr reports whether addr falls in a blocked range.
// IPv4-mapped IPv6 addresses are classified as their IPv4 form.
func IsBlockedAddr(addr netip.Addr) bool {
	addr = addr.WithZone("").Unmap()
	for _, prefix := range blockedPrefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
