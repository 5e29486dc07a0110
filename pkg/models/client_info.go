package models

// GeoLocation is the resolved physical origin of a request. Every field is
// independently optional; a partial result is valid, not an error.
//
// Region is a composite COUNTRY-REGION code (e.g. "US-CA") when the
// provider gave a bare region code. Composition is idempotent: an already
// hyphenated region is used verbatim.
type GeoLocation struct {
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

// ClientInfo is the full per-event client context assembled once per
// inbound event. Missing sub-results leave fields empty.
type ClientInfo struct {
	UserAgent string `json:"userAgent,omitempty"`
	Browser   string `json:"browser,omitempty"`
	OS        string `json:"os,omitempty"`
	IP        string `json:"ip,omitempty"`
	Country   string `json:"country,omitempty"`
	Region    string `json:"region,omitempty"`
	City      string `json:"city,omitempty"`
	Device    string `json:"device,omitempty"`
}
