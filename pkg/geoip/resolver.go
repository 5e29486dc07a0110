package geoip

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/reqguard/go-reqguard/pkg/models"
)

// headerScheme names one CDN provider's geolocation header triple.
type headerScheme struct {
	country string
	region  string
	city    string
}

// headerSchemes is checked in provider priority order. The first scheme
// whose country header is present wins outright; providers are never
// merged.
var headerSchemes = []headerScheme{
	{country: "cf-ipcountry", region: "cf-region-code", city: "cf-ipcity"},
	{country: "x-vercel-ip-country", region: "x-vercel-ip-country-region", city: "x-vercel-ip-city"},
}

// Resolver resolves country/region/city for a request IP. Edge-injected
// headers are free and usually fresher than the offline snapshot, so they
// take precedence; the database is the cost-bearing fallback.
type Resolver struct {
	db          *DatabaseCache
	skipHeaders bool
}

// NewResolver creates a resolver over the given database cache.
// skipLocationHeaders forces the database even when headers are present.
func NewResolver(db *DatabaseCache, skipLocationHeaders bool) *Resolver {
	return &Resolver{db: db, skipHeaders: skipLocationHeaders}
}

// Resolve returns the location for ip, or nil when it cannot be
// determined. A nil result is a normal outcome, not a failure.
//
// Headers are only consulted when the IP came from the transport layer:
// a payload-supplied IP means the request did not originate at the edge
// that set those headers, so they would describe the wrong party.
func (r *Resolver) Resolve(ip string, headers http.Header, ipFromPayload bool) *models.GeoLocation {
	parsed := net.ParseIP(stripPort(ip))
	if parsed == nil || isLocal(parsed) {
		return nil
	}

	if !ipFromPayload && !r.skipHeaders {
		for _, scheme := range headerSchemes {
			country := decodeHeader(headers.Get(scheme.country))
			if country == "" {
				continue
			}
			return &models.GeoLocation{
				Country: country,
				Region:  composeRegion(country, decodeHeader(headers.Get(scheme.region))),
				City:    decodeHeader(headers.Get(scheme.city)),
			}
		}
	}

	loc, err := r.db.Lookup(parsed)
	if err != nil || loc == nil {
		return nil
	}
	loc.Region = composeRegion(loc.Country, loc.Region)
	return loc
}

// composeRegion builds the composite COUNTRY-REGION code. A region that
// already carries a country prefix (detected by the hyphen) is used
// verbatim, so applying the rule twice never double-prefixes.
func composeRegion(country, region string) string {
	if region == "" || country == "" || strings.Contains(region, "-") {
		return region
	}
	return country + "-" + region
}

// decodeHeader normalizes a header value that may be percent-encoded or
// carry UTF-8 bytes mis-decoded as Latin-1. Undecodable input falls
// through unchanged; this never fails.
func decodeHeader(value string) string {
	if value == "" {
		return value
	}
	if unescaped, err := url.QueryUnescape(value); err == nil {
		value = unescaped
	}

	// A value whose runes all fit in one byte may be UTF-8 seen through a
	// Latin-1 lens; reinterpret the raw bytes when they form valid UTF-8.
	raw := make([]byte, 0, len(value))
	for _, r := range value {
		if r > 0xff {
			return value
		}
		raw = append(raw, byte(r))
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	return value
}

// stripPort removes a trailing port from transport-derived addresses like
// "203.0.113.7:61234" or "[2001:db8::1]:443".
func stripPort(ip string) string {
	if host, _, err := net.SplitHostPort(ip); err == nil {
		return host
	}
	return ip
}

func isLocal(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsUnspecified() || ip.IsLinkLocalUnicast()
}
