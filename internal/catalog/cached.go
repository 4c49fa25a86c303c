package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"audimatch/internal/domain"
)

// Cache is the persistence surface the cached provider needs.
type Cache interface {
	GetCache(key string) ([]byte, error)
	SetCache(key string, data []byte, ttl time.Duration) error
}

// CachedProvider wraps a Provider with a read-through response cache.
// Search results and full records are cached; images are not, the
// host keeps its own copy once written.
type CachedProvider struct {
	provider Provider
	cache    Cache
	ttl      time.Duration
}

var _ Provider = (*CachedProvider)(nil)

func NewCachedProvider(provider Provider, cache Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

func (c *CachedProvider) SearchBooks(ctx context.Context, title, author, region string) ([]domain.BookCandidate, error) {
	key := fmt.Sprintf("search:books:%s:%s:%s", region, title, author)

	var cached []domain.BookCandidate
	if c.lookup(key, &cached) {
		return cached, nil
	}

	results, err := c.provider.SearchBooks(ctx, title, author, region)
	if err != nil {
		return nil, err
	}
	c.store(key, results)
	return results, nil
}

func (c *CachedProvider) SearchAuthors(ctx context.Context, name, region string) ([]domain.AuthorCandidate, error) {
	key := fmt.Sprintf("search:authors:%s:%s", region, name)

	var cached []domain.AuthorCandidate
	if c.lookup(key, &cached) {
		return cached, nil
	}

	results, err := c.provider.SearchAuthors(ctx, name, region)
	if err != nil {
		return nil, err
	}
	c.store(key, results)
	return results, nil
}

func (c *CachedProvider) GetBook(ctx context.Context, id domain.CatalogID) (*domain.BookRecord, error) {
	key := "book:" + id.StoredID()

	var cached domain.BookRecord
	if c.lookup(key, &cached) {
		return &cached, nil
	}

	rec, err := c.provider.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(key, rec)
	return rec, nil
}

func (c *CachedProvider) GetAuthor(ctx context.Context, id domain.CatalogID) (*domain.AuthorRecord, error) {
	key := "author:" + id.StoredID()

	var cached domain.AuthorRecord
	if c.lookup(key, &cached) {
		return &cached, nil
	}

	rec, err := c.provider.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(key, rec)
	return rec, nil
}

func (c *CachedProvider) GetImage(ctx context.Context, url string) ([]byte, error) {
	return c.provider.GetImage(ctx, url)
}

// lookup reads a cache entry into v and reports whether it was usable.
// Cache errors and stale-format entries fall through to a live fetch.
func (c *CachedProvider) lookup(key string, v any) bool {
	data, err := c.cache.GetCache(key)
	if err != nil || data == nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (c *CachedProvider) store(key string, v any) {
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.SetCache(key, data, c.ttl)
	}
}
