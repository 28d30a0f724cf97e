package cache

import (
	"context"
	"testing"
	"time"
)

// A zero-value Client is what New returns when redis is unreachable. Every
// operation must degrade instead of panicking.
func TestNilClientDegrades(t *testing.T) {
	c := &Client{}
	ctx := context.Background()

	if _, ok := c.Get(ctx, "user", "abc"); ok {
		t.Error("nil client must report a miss")
	}

	c.Set(ctx, "user", "abc", "value", time.Minute)
	c.Delete(ctx, "user", "abc")
	c.Close()

	if c.IsBlacklisted(ctx, "token") {
		t.Error("nil client must not report tokens as revoked")
	}
	if count := c.IncrWindow(ctx, "notifrate", "abc", time.Hour); count != 0 {
		t.Errorf("nil client IncrWindow must return 0, got %d", count)
	}
}

func TestNewWithBadURLReturnsDegradedClient(t *testing.T) {
	c := New(context.Background(), "not-a-url")
	if c == nil {
		t.Fatal("New must never return nil")
	}
	if _, ok := c.Get(context.Background(), "user", "abc"); ok {
		t.Error("degraded client must report misses")
	}
}
