package catalogcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"qara/internal/compliance/models"
	"qara/internal/compliance/store/memory"
	"qara/pkg/platform/circuit"
)

// =============================================================================
// Catalog Cache Test Suite
// =============================================================================
// Justification for unit tests: cache failures must degrade to store reads,
// never to request failures. miniredis lets the tests inject Redis errors and
// expire keys deterministically.

type countingStore struct {
	*memory.Store
	processCalls [][]int64
	err          error
}

func (c *countingStore) ProcessesByIDs(ctx context.Context, ids []int64) ([]models.Process, error) {
	c.processCalls = append(c.processCalls, ids)
	if c.err != nil {
		return nil, c.err
	}
	return c.Store.ProcessesByIDs(ctx, ids)
}

type cacheCounts struct {
	hits, misses, errors, bypassed int
}

func (c *cacheCounts) IncCacheHit(string)    { c.hits++ }
func (c *cacheCounts) IncCacheMiss(string)   { c.misses++ }
func (c *cacheCounts) IncCacheError(string)  { c.errors++ }
func (c *cacheCounts) IncCacheBypass(string) { c.bypassed++ }

type CatalogCacheSuite struct {
	suite.Suite
	redis   *miniredis.Miniredis
	backing *countingStore
	counts  *cacheCounts
	breaker *circuit.Breaker
	cache   *Store
	ctx     context.Context
}

func TestCatalogCacheSuite(t *testing.T) {
	suite.Run(t, new(CatalogCacheSuite))
}

func (s *CatalogCacheSuite) SetupTest() {
	s.ctx = context.Background()
	s.redis = miniredis.RunT(s.T())

	mem := memory.New()
	mem.Load(memory.Dataset{
		Processes: []models.Process{
			{ID: 1, Code: "PUR", Name: "Purchasing"},
			{ID: 2, Code: "DES", Name: "Design"},
			{ID: 3, Code: "PRD", Name: "Production"},
		},
		Referentials: []models.Referential{{ID: 1, Code: "ISO13485", Name: "ISO 13485"}},
		Sites:        []models.Site{{ID: 5, UserID: 1, Name: "Lyon"}},
	})
	s.backing = &countingStore{Store: mem}
	s.counts = &cacheCounts{}
	s.breaker = circuit.New("catalog-cache", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))

	client := redis.NewClient(&redis.Options{Addr: s.redis.Addr(), MaxRetries: -1})
	s.T().Cleanup(func() { _ = client.Close() })

	s.cache = New(s.backing, client, time.Minute, WithMetrics(s.counts), WithBreaker(s.breaker))
}

func (s *CatalogCacheSuite) TestReadThrough() {
	s.Run("first read loads from the store and fills the cache", func() {
		procs, err := s.cache.ProcessesByIDs(s.ctx, []int64{2, 1, 2})
		s.Require().NoError(err)
		s.Require().Len(procs, 2)
		s.Equal(int64(1), procs[0].ID)
		s.Equal([][]int64{{2, 1}}, s.backing.processCalls)
		s.True(s.redis.Exists("qara:catalog:processes:1"))
		s.Equal(2, s.counts.misses)
	})

	s.Run("second read is served from redis", func() {
		procs, err := s.cache.ProcessesByIDs(s.ctx, []int64{1, 2, 3})
		s.Require().NoError(err)
		s.Require().Len(procs, 3)
		s.Equal("Purchasing", procs[0].Name)
		s.Equal("Production", procs[2].Name)
		s.Equal([]int64{3}, s.backing.processCalls[1])
		s.Equal(2, s.counts.hits)
	})

	s.Run("entries expire after the ttl", func() {
		s.redis.FastForward(2 * time.Minute)
		_, err := s.cache.ProcessesByIDs(s.ctx, []int64{1})
		s.Require().NoError(err)
		s.Equal([]int64{1}, s.backing.processCalls[2])
	})
}

func (s *CatalogCacheSuite) TestRedisFailureFallsBackToStore() {
	s.redis.SetError("LOADING redis is loading")

	for range 2 {
		procs, err := s.cache.ProcessesByIDs(s.ctx, []int64{1})
		s.Require().NoError(err)
		s.Require().Len(procs, 1)
	}
	s.True(s.breaker.IsOpen())
	s.Positive(s.counts.errors)

	s.redis.SetError("")
	_, err := s.cache.ProcessesByIDs(s.ctx, []int64{2})
	s.Require().NoError(err)
	s.False(s.breaker.IsOpen(), "a successful write closes the breaker")
}

func (s *CatalogCacheSuite) TestOpenBreakerCountsBypassNotMisses() {
	s.redis.SetError("LOADING redis is loading")
	_, err := s.cache.ProcessesByIDs(s.ctx, []int64{1})
	s.Require().NoError(err)
	s.Require().True(s.breaker.IsOpen(), "failed read and write reach the threshold")
	s.Zero(s.counts.misses, "a failed read is an error, not a miss")
	s.Equal(2, s.counts.errors)

	s.redis.SetError("")
	procs, err := s.cache.ProcessesByIDs(s.ctx, []int64{1, 2, 3})
	s.Require().NoError(err)
	s.Len(procs, 3)
	s.Zero(s.counts.misses)
	s.Zero(s.counts.hits)
	s.Equal(3, s.counts.bypassed)
}

func (s *CatalogCacheSuite) TestStoreErrorsPropagate() {
	s.backing.err = errors.New("boom")
	_, err := s.cache.ProcessesByIDs(s.ctx, []int64{1})
	s.Error(err)
}

func (s *CatalogCacheSuite) TestPassThrough() {
	refs, err := s.cache.ReferentialsByIDs(s.ctx, []int64{1})
	s.Require().NoError(err)
	s.Require().Len(refs, 1)

	sites, err := s.cache.SitesByIDs(s.ctx, 1, []int64{5})
	s.Require().NoError(err)
	s.Require().Len(sites, 1)
	s.False(s.redis.Exists("qara:catalog:sites:5"))

	empty, err := s.cache.ProcessesByIDs(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(empty)
}
