// Package config builds the immutable configuration consumed by the
// resolution pipeline. Components receive a *Config at construction time
// instead of reading ambient environment state, which keeps them testable
// with injected values.
package config

import (
	"errors"
	"os"
	"strconv"
)

// DefaultGeoDBPath is the conventional bundled location of the GeoLite2
// city database, relative to the working directory.
const DefaultGeoDBPath = "data/GeoLite2-City.mmdb"

type Config struct {
	Port string

	// AppSecret signs bearer and share tokens. Must be set outside of
	// local development.
	AppSecret string

	// DisableAuth short-circuits the auth precedence chain to a fixed
	// admin user. Local/dev operation only.
	DisableAuth bool
	AdminUserID string

	// IgnoreIPs is a comma-separated mix of exact IPs and CIDR ranges
	// whose requests the ingestion handler drops.
	IgnoreIPs string

	// GeoDBPath overrides the bundled GeoLite2 database location.
	GeoDBPath string

	// SkipLocationHeaders forces the offline database even when CDN
	// geolocation headers are present.
	SkipLocationHeaders bool

	// ClientIPHeader names a header carrying the true client IP when the
	// server sits behind a proxy that sets a non-standard header.
	ClientIPHeader string

	// RedisURL enables the Redis session store when non-empty. Without it
	// sessions live in process memory.
	RedisURL string

	// SQLiteFile backs the user directory when non-empty.
	SQLiteFile string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getbool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

// New reads the environment once and returns a validated Config.
func New() (*Config, error) {
	c := &Config{
		Port:                getenv("PORT", "8080"),
		AppSecret:           getenv("APP_SECRET", ""),
		DisableAuth:         getbool("DISABLE_AUTH"),
		AdminUserID:         getenv("ADMIN_USER_ID", "admin"),
		IgnoreIPs:           getenv("IGNORE_IP", ""),
		GeoDBPath:           getenv("GEO_DB_PATH", DefaultGeoDBPath),
		SkipLocationHeaders: getbool("SKIP_LOCATION_HEADERS"),
		ClientIPHeader:      getenv("CLIENT_IP_HEADER", ""),
		RedisURL:            getenv("REDIS_URL", ""),
		SQLiteFile:          getenv("SQLITE_FILE", ""),
	}

	if !c.DisableAuth && c.AppSecret == "" {
		return nil, errors.New("APP_SECRET must be set unless DISABLE_AUTH=true")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return nil, errors.New("invalid PORT: " + c.Port)
	}

	return c, nil
}
