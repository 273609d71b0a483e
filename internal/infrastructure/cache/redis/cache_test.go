package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	c := New(Options{Address: mr.Addr(), TTL: ttl})
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t, time.Hour)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "abc"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Put(ctx, "abc", domain.CategoryTermsOfReference); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := c.Get(ctx, "abc")
	if err != nil || !ok || got != domain.CategoryTermsOfReference {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}
	if raw, _ := mr.Get(keyPrefix + "abc"); raw != "Termo de Referência" {
		t.Fatalf("unexpected stored value %q", raw)
	}
	if ttl := mr.TTL(keyPrefix + "abc"); ttl != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", ttl)
	}
}

func TestCacheTreatsCorruptValueAsMiss(t *testing.T) {
	c, mr := newTestCache(t, 0)
	if err := mr.Set(keyPrefix+"bad", "Memorando"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, ok, err := c.Get(context.Background(), "bad")
	if err != nil || ok {
		t.Fatalf("expected miss for corrupt value, got ok=%v err=%v", ok, err)
	}
}

func TestCacheSurfacesConnectionErrors(t *testing.T) {
	c, mr := newTestCache(t, 0)
	mr.Close()

	if _, _, err := c.Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
	if err := c.Ping(context.Background()); !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary ping error, got %v", err)
	}
}
