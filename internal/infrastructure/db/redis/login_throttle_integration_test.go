package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/inest/inest-backend/internal/testutil"
)

func TestLoginThrottle_BlocksAfterLimit(t *testing.T) {
	addr := testutil.RequireEnv(t, "REDIS_TEST_ADDR")
	ctx := context.Background()

	client, err := Connect(ctx, Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	throttle := NewLoginThrottle(client, 2, time.Minute)
	email := fmt.Sprintf("throttle-%d@example.com", time.Now().UnixNano())
	t.Cleanup(func() { _ = throttle.Reset(context.Background(), email) })

	for i := 0; i < 2; i++ {
		blocked, err := throttle.Blocked(ctx, email)
		if err != nil || blocked {
			t.Fatalf("attempt %d: blocked=%v err=%v", i, blocked, err)
		}
		if err := throttle.RecordFailure(ctx, email); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	blocked, err := throttle.Blocked(ctx, email)
	if err != nil || !blocked {
		t.Fatalf("expected blocked after limit, blocked=%v err=%v", blocked, err)
	}

	ttl, err := client.TTL(ctx, throttle.key(email)).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected window ttl, got %v (%v)", ttl, err)
	}

	if err := throttle.Reset(ctx, email); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if blocked, _ := throttle.Blocked(ctx, email); blocked {
		t.Fatalf("expected unblocked after reset")
	}
}
