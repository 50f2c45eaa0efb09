// Package catalogcache is a Redis read-through cache in front of the
// process and referential catalogs. Sites are tenant data and pass through.
package catalogcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"qara/internal/compliance/models"
	"qara/pkg/platform/circuit"
	"qara/pkg/platform/collections"
)

const keyPrefix = "qara:catalog"

// CatalogStore is the source of truth behind the cache.
type CatalogStore interface {
	ProcessesByIDs(ctx context.Context, ids []int64) ([]models.Process, error)
	ReferentialsByIDs(ctx context.Context, ids []int64) ([]models.Referential, error)
	SitesByIDs(ctx context.Context, tenantID int64, ids []int64) ([]models.Site, error)
}

// Recorder counts cache results per catalog. Bypassed ids were never looked
// up in Redis because the breaker was open.
type Recorder interface {
	IncCacheHit(catalog string)
	IncCacheMiss(catalog string)
	IncCacheError(catalog string)
	IncCacheBypass(catalog string)
}

// Store serves catalog lookups from Redis and falls back to the wrapped
// store on misses. Redis failures never fail a lookup: after repeated errors
// the breaker opens and reads skip Redis until writes succeed again.
type Store struct {
	next    CatalogStore
	client  redis.UniversalClient
	ttl     time.Duration
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics Recorder
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithMetrics(m Recorder) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithBreaker replaces the default breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Store) {
		s.breaker = b
	}
}

// New wraps next with a cache whose entries expire after ttl.
func New(next CatalogStore, client redis.UniversalClient, ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		next:    next,
		client:  client,
		ttl:     ttl,
		breaker: circuit.New("catalog-cache"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ProcessesByIDs(ctx context.Context, ids []int64) ([]models.Process, error) {
	return lookup(ctx, s, "processes", ids,
		func(p models.Process) int64 { return p.ID },
		s.next.ProcessesByIDs)
}

func (s *Store) ReferentialsByIDs(ctx context.Context, ids []int64) ([]models.Referential, error) {
	return lookup(ctx, s, "referentials", ids,
		func(r models.Referential) int64 { return r.ID },
		s.next.ReferentialsByIDs)
}

func (s *Store) SitesByIDs(ctx context.Context, tenantID int64, ids []int64) ([]models.Site, error) {
	return s.next.SitesByIDs(ctx, tenantID, ids)
}

func key(catalog string, id int64) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, catalog, id)
}

func lookup[T any](
	ctx context.Context,
	s *Store,
	catalog string,
	ids []int64,
	idOf func(T) int64,
	load func(context.Context, []int64) ([]T, error),
) ([]T, error) {
	ids = collections.Dedupe(ids)
	if len(ids) == 0 {
		return []T{}, nil
	}

	found := make([]T, 0, len(ids))
	missing := ids
	if s.breaker.IsOpen() {
		s.bypass(catalog, len(ids))
	} else if hits, misses, err := read[T](ctx, s, catalog, ids); err != nil {
		s.recordFailure(ctx, catalog, "read", err)
	} else {
		found, missing = hits, misses
		s.inc(catalog, len(found), len(missing))
	}

	if len(missing) == 0 {
		return found, nil
	}

	loaded, err := load(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(loaded) > 0 {
		if err := write(ctx, s, catalog, loaded, idOf); err != nil {
			s.recordFailure(ctx, catalog, "write", err)
		} else {
			s.recordSuccess(ctx)
		}
	}

	out := append(found, loaded...)
	sort.Slice(out, func(i, j int) bool { return idOf(out[i]) < idOf(out[j]) })
	return out, nil
}

func read[T any](ctx context.Context, s *Store, catalog string, ids []int64) ([]T, []int64, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = key(catalog, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, nil, err
	}

	found := make([]T, 0, len(ids))
	var missing []int64
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var item T
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			missing = append(missing, ids[i])
			continue
		}
		found = append(found, item)
	}
	return found, missing, nil
}

func write[T any](ctx context.Context, s *Store, catalog string, items []T, idOf func(T) int64) error {
	pipe := s.client.Pipeline()
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return err
		}
		pipe.Set(ctx, key(catalog, idOf(item)), raw, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) inc(catalog string, hits, misses int) {
	if s.metrics == nil {
		return
	}
	for range hits {
		s.metrics.IncCacheHit(catalog)
	}
	for range misses {
		s.metrics.IncCacheMiss(catalog)
	}
}

func (s *Store) bypass(catalog string, n int) {
	if s.metrics == nil {
		return
	}
	for range n {
		s.metrics.IncCacheBypass(catalog)
	}
}

func (s *Store) recordFailure(ctx context.Context, catalog, op string, err error) {
	if s.metrics != nil {
		s.metrics.IncCacheError(catalog)
	}
	_, change := s.breaker.RecordFailure()
	s.logger.WarnContext(ctx, "catalog cache unavailable, using store",
		"catalog", catalog,
		"op", op,
		"error", err,
	)
	if change.Opened {
		s.logger.ErrorContext(ctx, "catalog cache circuit opened", "breaker", s.breaker.Name())
	}
}

func (s *Store) recordSuccess(ctx context.Context) {
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "catalog cache circuit closed", "breaker", s.breaker.Name())
	}
}
