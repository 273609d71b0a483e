// Package redis shares classification results between processes through Redis.
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

const keyPrefix = "doctype:cls:"

type Options struct {
	Address   string
	Password  string
	DB        int
	TTL       time.Duration
	TLSConfig *tls.Config
}

type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

func New(options Options) *Cache {
	client := goredis.NewClient(&goredis.Options{
		Addr:      options.Address,
		Password:  options.Password,
		DB:        options.DB,
		TLSConfig: options.TLSConfig,
	})
	return NewWithClient(client, options.TTL)
}

func NewWithClient(client *goredis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return domain.WrapError(domain.ErrTemporary, "redis ping", err)
	}
	return nil
}

// Get treats values outside the vocabulary as misses.
func (c *Cache) Get(ctx context.Context, key string) (domain.Category, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	category, ok := domain.ParseCategory(raw)
	return category, ok, nil
}

func (c *Cache) Put(ctx context.Context, key string, category domain.Category) error {
	if err := c.client.Set(ctx, keyPrefix+key, string(category), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
