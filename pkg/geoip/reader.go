// Package geoip resolves the physical origin of a request IP, preferring
// CDN-injected geolocation headers over an offline MaxMind database.
package geoip

import (
	"log"
	"net"
	"sync"

	"github.com/oschwald/geoip2-golang"

	"github.com/reqguard/go-reqguard/pkg/models"
)

// cityReader is the lookup surface of geoip2.Reader the cache needs.
type cityReader interface {
	City(net.IP) (*geoip2.City, error)
}

// DatabaseCache is the process-wide handle to the offline city database.
// The reader is opened lazily on first lookup and kept for the life of
// the process; sync.Once guarantees a single open even under concurrent
// first use. A reader is safe for concurrent lookups once created.
type DatabaseCache struct {
	path   string
	open   func(string) (cityReader, error)
	once   sync.Once
	reader cityReader
	err    error
}

// NewDatabaseCache prepares a cache for the database at path without
// opening it.
func NewDatabaseCache(path string) *DatabaseCache {
	return &DatabaseCache{
		path: path,
		open: func(p string) (cityReader, error) {
			return geoip2.Open(p)
		},
	}
}

// Lookup resolves ip against the database, opening it on first use.
// An IP the database has no entry for yields nil, nil.
func (c *DatabaseCache) Lookup(ip net.IP) (*models.GeoLocation, error) {
	c.once.Do(func() {
		c.reader, c.err = c.open(c.path)
		if c.err != nil {
			// A missing database file is a configuration error worth
			// surfacing, but only once; later lookups degrade to unknown.
			log.Printf("geoip: cannot open database %s: %v", c.path, c.err)
		}
	})
	if c.err != nil {
		return nil, c.err
	}

	record, err := c.reader.City(ip)
	if err != nil {
		return nil, err
	}
	return fromCityRecord(record), nil
}

// fromCityRecord maps the raw database record to a GeoLocation. The
// registered country stands in when the record has no country of its own
// (anonymous proxies and the like); region is the first subdivision's ISO
// code; city is the English name. An entirely empty record means the
// database had no entry.
func fromCityRecord(record *geoip2.City) *models.GeoLocation {
	if record == nil {
		return nil
	}

	loc := &models.GeoLocation{
		Country: record.Country.IsoCode,
		City:    record.City.Names["en"],
	}
	if loc.Country == "" {
		loc.Country = record.RegisteredCountry.IsoCode
	}
	if len(record.Subdivisions) > 0 {
		loc.Region = record.Subdivisions[0].IsoCode
	}

	if loc.Country == "" && loc.Region == "" && loc.City == "" {
		return nil
	}
	return loc
}
