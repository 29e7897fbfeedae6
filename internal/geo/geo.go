// Package geo provides geolocation helpers: a provider abstraction over
// the device location source and great-circle distance math for the
// "km away" annotations on the event feed.
package geo

import (
	"context"
	"math"
	"sync"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the haversine great-circle distance between a and b in
// kilometers.
func Distance(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Provider yields the device's current location. A (nil, nil) result means
// the location is unavailable (permission denied) and is not an error.
type Provider interface {
	Current(ctx context.Context) (*Point, error)
}

// StaticProvider always returns the same fix. Useful for tests and demo
// seeding.
type StaticProvider struct {
	Point *Point
}

// Current returns the configured fix.
func (p *StaticProvider) Current(_ context.Context) (*Point, error) {
	return p.Point, nil
}

// CachedProvider wraps a Provider and caches the first successful fix for
// the process lifetime. There is no TTL and no invalidation; a stale fix is
// returned until the process restarts.
type CachedProvider struct {
	source Provider

	mu  sync.Mutex
	fix *Point
}

// NewCachedProvider returns a CachedProvider over source.
func NewCachedProvider(source Provider) *CachedProvider {
	return &CachedProvider{source: source}
}

// Current returns the cached fix if present, otherwise asks the source.
// A denied permission (nil fix from the source) is passed through silently
// and not cached, so a later grant can still populate the cache.
func (p *CachedProvider) Current(ctx context.Context) (*Point, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fix != nil {
		return p.fix, nil
	}
	fix, err := p.source.Current(ctx)
	if err != nil || fix == nil {
		return nil, err
	}
	p.fix = fix
	return p.fix, nil
}
