// Package blocklist matches caller IPs against a configured mix of exact
// addresses and CIDR ranges. The list is short and read from configuration
// at check time, so entries are parsed per call rather than cached.
package blocklist

import (
	"net"
	"strings"
)

// IsBlocked reports whether candidate matches any entry of the
// comma-separated blocklist. Entries without a "/" are compared as exact
// strings; entries with a "/" are parsed as CIDR ranges. A malformed entry
// is skipped, never fatal.
//
// CIDR containment requires the candidate and the range to share an
// address family: an IPv4 range never matches an IPv6 candidate even when
// both parse.
func IsBlocked(candidate, list string) bool {
	if candidate == "" || list == "" {
		return false
	}

	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if !strings.Contains(entry, "/") {
			if entry == candidate {
				return true
			}
			continue
		}

		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			continue
		}
		ip := net.ParseIP(candidate)
		if ip == nil {
			continue
		}
		if sameFamily(ip, network.IP) && network.Contains(ip) {
			return true
		}
	}

	return false
}

func sameFamily(a, b net.IP) bool {
	return (a.To4() != nil) == (b.To4() != nil)
}
