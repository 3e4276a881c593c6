// Package maskcache keeps window silhouettes per (span, size) so that
// toggling the span swaps masks instead of rasterizing them again.
package maskcache

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/iburimskiy/protractor/internal/protractor"
)

// DefaultCapacity holds the masks of a few recent zoom steps.
const DefaultCapacity = 16

// Key identifies a silhouette.
type Key struct {
	Span protractor.Span
	Size protractor.RenderSize
}

// Stats counts cache lookups.
type Stats struct {
	Hits   uint64
	Misses uint64
	Builds uint64
}

// GenerateFunc rasterizes one silhouette.
type GenerateFunc func(protractor.Span, protractor.RenderSize) (*protractor.Silhouette, error)

// Cache is safe for concurrent use.
type Cache struct {
	lru      *lru.Cache[Key, *protractor.Silhouette]
	flight   singleflight.Group
	generate GenerateFunc
	log      *slog.Logger

	hits, misses, builds atomic.Uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithGenerator replaces the silhouette rasterizer.
func WithGenerator(fn GenerateFunc) Option {
	return func(c *Cache) { c.generate = fn }
}

// WithLogger sets the logger used for build timings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a cache holding up to capacity silhouettes.
func New(capacity int, opts ...Option) (*Cache, error) {
	if capacity < 2 {
		capacity = 2
	}
	l, err := lru.New[Key, *protractor.Silhouette](capacity)
	if err != nil {
		return nil, fmt.Errorf("maskcache: %w", err)
	}
	c := &Cache{
		lru:      l,
		generate: protractor.GenerateSilhouette,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns a cached silhouette.
func (c *Cache) Get(span protractor.Span, size protractor.RenderSize) (*protractor.Silhouette, bool) {
	sil, ok := c.lru.Get(Key{Span: span, Size: size})
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return sil, ok
}

// Pair holds both silhouettes of one size.
type Pair struct {
	Half *protractor.Silhouette
	Full *protractor.Silhouette
}

// For returns the silhouette of span.
func (p Pair) For(span protractor.Span) *protractor.Silhouette {
	if span == protractor.Full {
		return p.Full
	}
	return p.Half
}

// Precompute makes sure both silhouettes of size are cached. Missing ones are
// rasterized concurrently; concurrent calls for the same size share the work.
func (c *Cache) Precompute(ctx context.Context, size protractor.RenderSize) (Pair, error) {
	if err := ctx.Err(); err != nil {
		return Pair{}, err
	}
	v, err, _ := c.flight.Do(size.String(), func() (any, error) {
		return c.build(ctx, size)
	})
	if err != nil {
		return Pair{}, err
	}
	return v.(Pair), nil
}

func (c *Cache) build(ctx context.Context, size protractor.RenderSize) (Pair, error) {
	var pair Pair
	g, ctx := errgroup.WithContext(ctx)
	for _, span := range []protractor.Span{protractor.Half, protractor.Full} {
		span := span // per-iteration copy (go directive < 1.22)
		dst := &pair.Half
		if span == protractor.Full {
			dst = &pair.Full
		}
		if sil, ok := c.lru.Peek(Key{Span: span, Size: size}); ok {
			*dst = sil
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			sil, err := c.generate(span, size)
			if err != nil {
				return fmt.Errorf("silhouette %s %s: %w", span, size, err)
			}
			c.builds.Add(1)
			ext := sil.Extent()
			c.log.Debug("silhouette built", "span", span, "size", size,
				"extent", fmt.Sprintf("%.1f,%.1f-%.1f,%.1f", ext.Min.X, ext.Min.Y, ext.Max.X, ext.Max.Y),
				"elapsed", time.Since(start))
			*dst = sil
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Pair{}, err
	}
	c.lru.Add(Key{Span: protractor.Half, Size: size}, pair.Half)
	c.lru.Add(Key{Span: protractor.Full, Size: size}, pair.Full)
	c.log.Debug("silhouettes cached", "size", size, "entries", c.lru.Len())
	return pair, nil
}

// Silhouette returns the cached silhouette for (span, size), precomputing the
// pair for size on a miss.
func (c *Cache) Silhouette(ctx context.Context, span protractor.Span, size protractor.RenderSize) (*protractor.Silhouette, error) {
	if !span.Valid() {
		return nil, fmt.Errorf("%w: %d", protractor.ErrInvalidSpan, int(span))
	}
	if sil, ok := c.Get(span, size); ok {
		return sil, nil
	}
	pair, err := c.Precompute(ctx, size)
	if err != nil {
		return nil, err
	}
	return pair.For(span), nil
}

// Len returns the number of cached silhouettes.
func (c *Cache) Len() int { return c.lru.Len() }

// Stats returns the lookup counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Builds: c.builds.Load()}
}
