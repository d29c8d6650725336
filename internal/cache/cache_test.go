// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegions(t *testing.T) *Regions {
	t.Helper()

	cfg := config.Cache{
		Type:          "memory",
		Regions:       []string{"short_term", "long_term", "second", "default_term"},
		DefaultExpire: time.Hour,
		Expire: map[string]time.Duration{
			"short_term": time.Minute,
			"long_term":  24 * time.Hour,
			"second":     time.Second,
		},
	}

	regions, err := NewRegions(cfg, logger.Nop())
	require.NoError(t, err)
	return regions
}

func TestNewRegions_DisabledBackend(t *testing.T) {
	tests := []struct {
		name string
		typ  string
	}{
		{name: "empty type disables cache", typ: ""},
		{name: "unsupported backend", typ: "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegions(config.Cache{Type: tt.typ}, logger.Nop())
			assert.ErrorIs(t, err, ErrCacheDisabled)
		})
	}
}

func TestRegions_SetAndGet(t *testing.T) {
	regions := newTestRegions(t)

	regions.Set("short_term", "stacks:list", []string{"gnome", "kde"})

	value, ok := regions.Get("short_term", "stacks:list")
	require.True(t, ok)
	assert.Equal(t, []string{"gnome", "kde"}, value)
}

func TestRegions_GetMissingKey(t *testing.T) {
	regions := newTestRegions(t)

	_, ok := regions.Get("short_term", "absent")
	assert.False(t, ok)
}

func TestRegions_UnknownRegion(t *testing.T) {
	regions := newTestRegions(t)

	// Set is a no-op for unknown regions, Get reports a miss.
	regions.Set("ghost", "key", "value")

	_, ok := regions.Get("ghost", "key")
	assert.False(t, ok)
	assert.False(t, regions.Has("ghost"))
	assert.True(t, regions.Has("short_term"))
}

func TestRegions_Invalidate(t *testing.T) {
	regions := newTestRegions(t)

	regions.Set("short_term", "a", 1)
	regions.Set("short_term", "b", 2)
	require.Equal(t, 2, regions.itemCount("short_term"))

	regions.Invalidate("short_term")
	assert.Equal(t, 0, regions.itemCount("short_term"))
}

func TestRegions_PerRegionExpiration(t *testing.T) {
	regions := newTestRegions(t)

	regions.Set("second", "ephemeral", "value")

	_, ok := regions.Get("second", "ephemeral")
	require.True(t, ok)

	time.Sleep(1100 * time.Millisecond)

	_, ok = regions.Get("second", "ephemeral")
	assert.False(t, ok)
}
