// Package engine assembles the full per-event client context. It
// correlates transport-derived data (socket address, headers) with
// payload-derived signals (explicit IP, user agent, screen size) and
// hands one ClientInfo to the ingestion handler per inbound event.
package engine

import (
	"net"
	"net/http"
	"strings"

	"github.com/reqguard/go-reqguard/pkg/device"
	"github.com/reqguard/go-reqguard/pkg/geoip"
	"github.com/reqguard/go-reqguard/pkg/models"
)

// Payload carries the client-context fields an event submission may set
// explicitly. Payload values override transport-derived ones so
// server-to-server and proxied submissions can preserve the original
// visitor's browser and IP.
type Payload struct {
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	Screen    string `json:"screen,omitempty"`
}

// Aggregator builds ClientInfo records. It has no failure mode: every
// missing sub-result yields an empty field in the output.
type Aggregator struct {
	geo            *geoip.Resolver
	clientIPHeader string
}

// New creates an aggregator. clientIPHeader optionally names a proxy
// header carrying the true client address.
func New(geo *geoip.Resolver, clientIPHeader string) *Aggregator {
	return &Aggregator{geo: geo, clientIPHeader: clientIPHeader}
}

// Build resolves geolocation and device classification for one inbound
// event and assembles the ClientInfo record.
func (a *Aggregator) Build(req *http.Request, payload Payload) models.ClientInfo {
	userAgent := payload.UserAgent
	if userAgent == "" {
		userAgent = req.Header.Get("User-Agent")
	}

	ip, fromPayload := a.clientIP(req, payload)

	info := models.ClientInfo{
		UserAgent: userAgent,
		IP:        ip,
		Device:    device.Classify(userAgent, payload.Screen),
	}
	info.Browser, info.OS = device.BrowserOS(userAgent)

	if loc := a.geo.Resolve(ip, req.Header, fromPayload); loc != nil {
		info.Country = loc.Country
		info.Region = loc.Region
		info.City = loc.City
	}

	return info
}

// clientIP picks the caller address, preferring the payload, then the
// configured proxy header, then the first X-Forwarded-For hop, then the
// socket address. The second return reports whether the payload supplied
// it, which disables header-based geolocation downstream.
func (a *Aggregator) clientIP(req *http.Request, payload Payload) (string, bool) {
	if payload.IP != "" {
		return payload.IP, true
	}

	if a.clientIPHeader != "" {
		if v := req.Header.Get(a.clientIPHeader); v != "" {
			return v, false
		}
	}

	if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first, false
		}
	}

	if host, _, err := net.SplitHostPort(req.RemoteAddr); err == nil {
		return host, false
	}
	return req.RemoteAddr, false
}
