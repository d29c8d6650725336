// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache provides named in-memory cache regions with per-region
// expiration, configured from the cache.* settings of the application
// configuration.
package cache

import (
	"errors"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	gocache "github.com/patrickmn/go-cache"
)

// ErrCacheDisabled is returned when a cache is requested but the
// configuration does not enable a supported cache backend.
var ErrCacheDisabled = errors.New("cache is disabled or backend is unsupported")

// Regions holds the named cache regions of the application. Each region is
// an independent in-memory cache with its own expiration.
type Regions struct {
	regions map[string]*gocache.Cache
	logger  *logger.Logger
}

// NewRegions builds the configured cache regions. Only the "memory" backend
// is supported; any other value (including empty, meaning caching is
// disabled) returns [ErrCacheDisabled].
//
// Expired entries are swept at twice the region expiration to keep memory
// bounded without a dedicated janitor configuration knob.
func NewRegions(cfg config.Cache, log *logger.Logger) (*Regions, error) {
	if cfg.Type != "memory" {
		return nil, ErrCacheDisabled
	}

	regions := make(map[string]*gocache.Cache, len(cfg.Regions))
	for _, name := range cfg.Regions {
		expire := cfg.RegionExpire(name)
		regions[name] = gocache.New(expire, 2*expire)
		log.Debug().Str("region", name).Dur("expire", expire).Msg("created cache region")
	}

	return &Regions{
		regions: regions,
		logger:  log,
	}, nil
}

// Get returns the cached value stored under key in the named region.
// The second return value is false when the region does not exist, the key
// is absent, or the entry has expired.
func (r *Regions) Get(region, key string) (any, bool) {
	c, ok := r.regions[region]
	if !ok {
		return nil, false
	}
	return c.Get(key)
}

// Set stores value under key in the named region using the region's
// configured expiration. Unknown regions are ignored so callers can cache
// opportunistically.
func (r *Regions) Set(region, key string, value any) {
	c, ok := r.regions[region]
	if !ok {
		return
	}
	c.SetDefault(key, value)
}

// Invalidate removes every entry from the named region. Used after
// mutations that make cached listings stale.
func (r *Regions) Invalidate(region string) {
	if c, ok := r.regions[region]; ok {
		c.Flush()
	}
}

// Has reports whether the named region is configured.
func (r *Regions) Has(region string) bool {
	_, ok := r.regions[region]
	return ok
}

// itemCount is used by tests to observe region contents without reaching
// into the library type.
func (r *Regions) itemCount(region string) int {
	c, ok := r.regions[region]
	if !ok {
		return 0
	}
	return c.ItemCount()
}
