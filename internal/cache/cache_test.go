package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := c.Set(ctx, "k1", &payload{Name: "amp", Count: 3}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got payload
	if err := c.Get(ctx, "k1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "amp" || got.Count != 3 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache()

	var got string
	if err := c.Get(context.Background(), "missing", &got); err == nil {
		t.Error("Get(missing) error = nil, want miss")
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k1", "v1", -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got string
	if err := c.Get(ctx, "k1", &got); err == nil {
		t.Error("Get(expired) error = nil, want expired")
	}
}

func TestMemoryCache_Del(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k1", "v1", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Del(ctx, "k1"); err != nil {
		t.Fatalf("Del() error = %v", err)
	}

	var got string
	if err := c.Get(ctx, "k1", &got); err == nil {
		t.Error("Get() after Del error = nil, want miss")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k1", "v1", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	var got string
	if err := c.Get(ctx, "k1", &got); err == nil {
		t.Error("NullCache Get() error = nil, want miss")
	}
}
