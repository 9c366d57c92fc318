package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/merchantlab/consult-go/domain/cache"
	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/infrastructure/logging"
)

// CachedSearcher decorates a knowledge.Searcher with a TTL cache. A
// cache failure never fails the search; the query falls through to
// the inner searcher.
type CachedSearcher struct {
	inner knowledge.Searcher
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedSearcher wraps inner with result caching.
func NewCachedSearcher(inner knowledge.Searcher, c cache.Cache, ttl time.Duration) *CachedSearcher {
	return &CachedSearcher{inner: inner, cache: c, ttl: ttl}
}

// Search implements knowledge.Searcher.
func (s *CachedSearcher) Search(ctx context.Context, category knowledge.Category, query string, limit int) ([]knowledge.Document, error) {
	key := cacheKey(category, query, limit)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var docs []knowledge.Document
		if err := json.Unmarshal(data, &docs); err == nil {
			logging.NewEvent(logging.Get().Debug()).
				Add(logging.Cached(true)).
				Msg("search served from cache")
			return docs, nil
		}
		_ = s.cache.Delete(ctx, key)
	} else if !errors.Is(err, cache.ErrMiss) {
		logging.NewEvent(logging.Get().Warn()).
			Add(logging.ErrorField(err)).
			Msg("search cache unavailable")
	}

	docs, err := s.inner.Search(ctx, category, query, limit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(docs); err == nil {
		_ = s.cache.Set(ctx, key, data, s.ttl)
	}
	return docs, nil
}

func cacheKey(category knowledge.Category, query string, limit int) string {
	sum := sha256.Sum256([]byte(query))
	return fmt.Sprintf("search:%s:%d:%s", category, limit, hex.EncodeToString(sum[:16]))
}
