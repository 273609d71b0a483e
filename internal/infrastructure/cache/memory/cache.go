// Package memory keeps classification results in process memory for the session lifetime.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

type Cache struct {
	items *gocache.Cache
}

// New returns a cache whose entries expire after ttl; ttl <= 0 keeps entries until the
// process exits.
func New(ttl time.Duration) *Cache {
	expiration := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = 2 * ttl
	}
	return &Cache{items: gocache.New(expiration, cleanup)}
}

func (c *Cache) Get(_ context.Context, key string) (domain.Category, bool, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return "", false, nil
	}
	category, ok := v.(domain.Category)
	return category, ok, nil
}

func (c *Cache) Put(_ context.Context, key string, category domain.Category) error {
	c.items.Set(key, category, gocache.DefaultExpiration)
	return nil
}

func (c *Cache) Len() int {
	return c.items.ItemCount()
}
