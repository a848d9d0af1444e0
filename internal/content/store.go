// Package content holds the storefront's in-memory copy of the backend
// content. A Store loads all six collections concurrently, tolerates any of
// them failing, and publishes the result as one immutable Snapshot.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
	"github.com/prakhar2b/sm-dryfruto/pkg/logger"
	"github.com/prakhar2b/sm-dryfruto/pkg/tracing"
)

// DefaultLoadTimeout bounds one full load.
const DefaultLoadTimeout = 20 * time.Second

// Store owns the current Snapshot. It is safe for concurrent use; readers
// never block on a load in progress.
type Store struct {
	source  Source
	logger  *slog.Logger
	timeout time.Duration

	current  atomic.Pointer[Snapshot]
	inflight atomic.Int32
	loaded   atomic.Bool

	// started numbers loads in invocation order; commitMu guards committed,
	// the number of the load behind current.
	started   atomic.Uint64
	commitMu  sync.Mutex
	committed uint64

	group     singleflight.Group
	requested atomic.Uint64
	covered   atomic.Uint64
}

// Option configures a Store.
type Option func(*Store)

// WithLoadTimeout overrides DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithDefaults sets the settings used until the backend returns a non-empty
// settings object.
func WithDefaults(settings domain.SiteSettings) Option {
	return func(s *Store) {
		s.current.Store(emptySnapshot(settings))
	}
}

// NewStore creates a store holding an empty snapshot with the default site
// settings. Call LoadAll to populate it.
func NewStore(source Source, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		source:  source,
		logger:  log,
		timeout: DefaultLoadTimeout,
	}
	s.current.Store(emptySnapshot(domain.DefaultSiteSettings()))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the last committed snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Loading reports whether a load is between invocation and commit. A store
// that has never committed counts as loading.
func (s *Store) Loading() bool {
	return !s.loaded.Load() || s.inflight.Load() > 0
}

// Loaded reports whether at least one load has been committed.
func (s *Store) Loaded() bool {
	return s.loaded.Load()
}

// LoadAll reads all six resources concurrently and commits them atomically.
// A failed read degrades that resource to empty and is logged; LoadAll
// itself does not fail. Site settings are replaced only by a non-empty
// object, otherwise the current settings are kept. A load that finishes
// after a later-started load has committed is discarded, and LoadAll returns
// the newer snapshot instead.
func (s *Store) LoadAll(ctx context.Context) *Snapshot {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)
	seq := s.started.Add(1)

	ctx, span := tracing.Tracer("content").Start(ctx, "content.LoadAll")
	defer span.End()

	start := time.Now()
	prev := s.current.Load()

	next := &Snapshot{SiteSettings: prev.SiteSettings}
	var (
		mu       sync.Mutex
		degraded []string
	)
	markDegraded := func(resource string) {
		mu.Lock()
		degraded = append(degraded, resource)
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		next.Categories = fetch(ctx, s, ResourceCategories, s.source.Categories, markDegraded)
		return nil
	})
	g.Go(func() error {
		products := fetch(ctx, s, ResourceProducts, s.source.Products, markDegraded)
		for i := range products {
			products[i].Normalize()
		}
		next.Products = products
		return nil
	})
	g.Go(func() error {
		next.HeroSlides = fetch(ctx, s, ResourceHeroSlides, s.source.HeroSlides, markDegraded)
		return nil
	})
	g.Go(func() error {
		next.Testimonials = fetch(ctx, s, ResourceTestimonials, s.source.Testimonials, markDegraded)
		return nil
	})
	g.Go(func() error {
		next.GiftBoxes = fetch(ctx, s, ResourceGiftBoxes, s.source.GiftBoxes, markDegraded)
		return nil
	})
	g.Go(func() error {
		settings, ok, err := s.fetchSettings(ctx)
		if err != nil {
			s.degrade(ctx, ResourceSiteSettings, err)
			markDegraded(ResourceSiteSettings)
			return nil
		}
		loadResults.WithLabelValues(ResourceSiteSettings, "ok").Inc()
		if ok {
			next.SiteSettings = settings
		}
		return nil
	})
	_ = g.Wait()

	slices.Sort(degraded)
	next.Degraded = degraded
	next.LoadedAt = time.Now().UTC()

	if !s.commit(seq, next) {
		logger.WithContext(ctx, s.logger).InfoContext(ctx, "content snapshot superseded by a newer load",
			slog.Uint64("load", seq),
			slog.Duration("duration", time.Since(start)),
		)
		return s.current.Load()
	}

	loadDuration.Observe(time.Since(start).Seconds())
	recordSnapshot(next)
	span.SetAttributes(
		attribute.Int("content.products", len(next.Products)),
		attribute.StringSlice("content.degraded", degraded),
	)
	if len(degraded) > 0 {
		span.SetStatus(codes.Error, "partial content load")
	}

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "content snapshot committed",
		slog.Int("products", len(next.Products)),
		slog.Int("categories", len(next.Categories)),
		slog.Any("degraded", degraded),
		slog.Duration("duration", time.Since(start)),
	)
	return next
}

// commit publishes next unless a load started after seq already committed.
func (s *Store) commit(seq uint64, next *Snapshot) bool {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	if seq < s.committed {
		return false
	}
	s.committed = seq
	s.current.Store(next)
	s.loaded.Store(true)
	return true
}

// Refresh re-runs LoadAll. Concurrent callers share one load, but a caller
// never receives a load that started reading before Refresh was called, so
// a refresh after a mutation always observes that mutation.
func (s *Store) Refresh(ctx context.Context) *Snapshot {
	ticket := s.requested.Add(1)
	for {
		_, _, _ = s.group.Do("refresh", func() (any, error) {
			covers := s.requested.Load()
			loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
			defer cancel()
			s.LoadAll(loadCtx)
			s.covered.Store(covers)
			return nil, nil
		})
		if s.covered.Load() >= ticket {
			return s.Snapshot()
		}
		if ctx.Err() != nil {
			return s.Snapshot()
		}
	}
}

func (s *Store) fetchSettings(ctx context.Context) (domain.SiteSettings, bool, error) {
	raw, err := s.source.SiteSettings(ctx)
	if err != nil {
		return domain.SiteSettings{}, false, err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return domain.SiteSettings{}, false, fmt.Errorf("decode site settings: %w", err)
	}
	if len(keys) == 0 {
		return domain.SiteSettings{}, false, nil
	}

	var settings domain.SiteSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return domain.SiteSettings{}, false, fmt.Errorf("decode site settings: %w", err)
	}
	return settings, true, nil
}

func (s *Store) degrade(ctx context.Context, resource string, err error) {
	loadResults.WithLabelValues(resource, "degraded").Inc()
	logger.WithContext(ctx, s.logger).WarnContext(ctx, "content read failed, using empty collection",
		slog.String("resource", resource),
		slog.String("error", err.Error()),
	)
}

func fetch[T any](
	ctx context.Context,
	s *Store,
	resource string,
	read func(context.Context) ([]T, error),
	markDegraded func(string),
) []T {
	items, err := read(ctx)
	if err != nil {
		s.degrade(ctx, resource, err)
		markDegraded(resource)
		return []T{}
	}
	loadResults.WithLabelValues(resource, "ok").Inc()
	if items == nil {
		items = []T{}
	}
	return items
}
