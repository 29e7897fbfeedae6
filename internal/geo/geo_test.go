package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	t.Run("identical points", func(t *testing.T) {
		p := Point{Lat: 48.8566, Lon: 2.3522}
		assert.Zero(t, Distance(p, p))
	})

	t.Run("quarter meridian", func(t *testing.T) {
		d := Distance(Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 90})
		assert.InDelta(t, 10007.5, d, 0.5)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Point{Lat: 40.7128, Lon: -74.0060}
		b := Point{Lat: 51.5074, Lon: -0.1278}
		assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
	})

	t.Run("known city pair", func(t *testing.T) {
		// New York to London, roughly 5570 km.
		d := Distance(Point{Lat: 40.7128, Lon: -74.0060}, Point{Lat: 51.5074, Lon: -0.1278})
		assert.InDelta(t, 5570, d, 20)
	})
}

// countingProvider counts calls and returns a scripted sequence of fixes.
type countingProvider struct {
	fixes []*Point
	errs  []error
	calls int
}

func (p *countingProvider) Current(_ context.Context) (*Point, error) {
	i := p.calls
	p.calls++
	var fix *Point
	if i < len(p.fixes) {
		fix = p.fixes[i]
	}
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	return fix, err
}

func TestCachedProvider_CachesFirstFix(t *testing.T) {
	source := &countingProvider{fixes: []*Point{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}}
	cached := NewCachedProvider(source)

	first, err := cached.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1.0, first.Lat)

	second, err := cached.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, source.calls, "source consulted once for the process lifetime")
}

func TestCachedProvider_DenialIsSilentAndUncached(t *testing.T) {
	source := &countingProvider{fixes: []*Point{nil, {Lat: 5, Lon: 6}}}
	cached := NewCachedProvider(source)

	fix, err := cached.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, fix)

	// A later grant still populates the cache.
	fix, err = cached.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fix)
	assert.Equal(t, 5.0, fix.Lat)
}

func TestCachedProvider_SourceError(t *testing.T) {
	boom := errors.New("gps failure")
	source := &countingProvider{errs: []error{boom}}
	cached := NewCachedProvider(source)

	fix, err := cached.Current(context.Background())
	assert.Nil(t, fix)
	assert.ErrorIs(t, err, boom)
}
