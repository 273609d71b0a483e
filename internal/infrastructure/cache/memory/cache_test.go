package memory

import (
	"context"
	"testing"
	"time"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

func TestCachePutGet(t *testing.T) {
	c := New(0)
	ctx := context.Background()

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	if err := c.Put(ctx, "k", domain.CategoryReport); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || got != domain.CategoryReport {
		t.Fatalf("Get() = %q, %v, %v", got, ok, err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", c.Len())
	}
}

func TestCacheExpiresEntries(t *testing.T) {
	c := New(20 * time.Millisecond)
	ctx := context.Background()
	_ = c.Put(ctx, "k", domain.CategoryMinutes)

	time.Sleep(40 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}
