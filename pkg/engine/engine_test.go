package engine

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reqguard/go-reqguard/pkg/geoip"
)

const uaDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func newTestAggregator(clientIPHeader string) *Aggregator {
	// The cache points at a nonexistent file; lookups degrade to unknown,
	// which is all these tests need.
	resolver := geoip.NewResolver(geoip.NewDatabaseCache("testdata/absent.mmdb"), false)
	return New(resolver, clientIPHeader)
}

func TestBuildFromTransport(t *testing.T) {
	a := newTestAggregator("")

	req := httptest.NewRequest("POST", "/api/v1/collect", nil)
	req.RemoteAddr = "203.0.113.7:61234"
	req.Header.Set("User-Agent", uaDesktop)
	req.Header.Set("cf-ipcountry", "US")
	req.Header.Set("cf-region-code", "CA")

	info := a.Build(req, Payload{Screen: "1600x900"})
	assert.Equal(t, "203.0.113.7", info.IP)
	assert.Equal(t, uaDesktop, info.UserAgent)
	assert.Equal(t, "Chrome", info.Browser)
	assert.Equal(t, "Windows", info.OS)
	assert.Equal(t, "laptop", info.Device)
	assert.Equal(t, "US", info.Country)
	assert.Equal(t, "US-CA", info.Region)
}

func TestBuildPayloadOverridesTransport(t *testing.T) {
	a := newTestAggregator("")

	req := httptest.NewRequest("POST", "/api/v1/collect", nil)
	req.RemoteAddr = "203.0.113.7:61234"
	req.Header.Set("User-Agent", "proxy/1.0")
	req.Header.Set("cf-ipcountry", "US")

	info := a.Build(req, Payload{IP: "198.51.100.9", UserAgent: uaDesktop})
	assert.Equal(t, "198.51.100.9", info.IP)
	assert.Equal(t, uaDesktop, info.UserAgent)
	// A payload-supplied IP disables header geolocation; with no database
	// the location stays unknown rather than describing the proxy.
	assert.Empty(t, info.Country)
}

func TestBuildClientIPHeader(t *testing.T) {
	a := newTestAggregator("x-real-client-ip")

	req := httptest.NewRequest("POST", "/api/v1/collect", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	req.Header.Set("x-real-client-ip", "203.0.113.20")
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")

	info := a.Build(req, Payload{})
	assert.Equal(t, "203.0.113.20", info.IP)
}

func TestBuildXForwardedForFirstHop(t *testing.T) {
	a := newTestAggregator("")

	req := httptest.NewRequest("POST", "/api/v1/collect", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")

	info := a.Build(req, Payload{})
	assert.Equal(t, "198.51.100.1", info.IP)
}

func TestBuildNeverFails(t *testing.T) {
	a := newTestAggregator("")

	req := httptest.NewRequest("POST", "/api/v1/collect", nil)
	req.RemoteAddr = "bogus"

	info := a.Build(req, Payload{})
	assert.Equal(t, "bogus", info.IP)
	assert.Empty(t, info.Browser)
	assert.Empty(t, info.Country)
	assert.Equal(t, "desktop", info.Device)
}
