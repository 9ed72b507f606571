package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryDenylist(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	d := NewMemoryDenylist()
	d.now = func() time.Time { return clock }

	if err := d.Revoke(ctx, "a", time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := d.Revoke(ctx, "expired", 0); err != nil {
		t.Fatal(err)
	}

	if ok, _ := d.IsRevoked(ctx, "a"); !ok {
		t.Error("a should be revoked")
	}
	if ok, _ := d.IsRevoked(ctx, "expired"); ok {
		t.Error("zero ttl should not be stored")
	}
	if ok, _ := d.IsRevoked(ctx, "unknown"); ok {
		t.Error("unknown jti reported revoked")
	}

	clock = clock.Add(time.Hour)
	if ok, _ := d.IsRevoked(ctx, "a"); ok {
		t.Error("a should have expired")
	}

	if err := d.Revoke(ctx, "b", time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, ok := d.expires["a"]; ok {
		t.Error("expired entries should be swept on Revoke")
	}
}
