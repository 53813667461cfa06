package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     []interface{}
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func evalResult(count, ttlMs int64) []interface{} {
	return []interface{}{count, ttlMs}
}

func TestRedisMessageRateLimiterAllow(t *testing.T) {
	ctx := context.Background()

	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisMessageRateLimiter
		if !l.Allow(ctx, "u1", "r1").Allowed {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("empty ids rejected", func(t *testing.T) {
		mock := &mockRedisEvaler{result: evalResult(1, 60000)}
		l := newRedisMessageRateLimiter(mock, time.Minute, 3)
		if l.Allow(ctx, "   ", "r1").Allowed || l.Allow(ctx, "u1", "").Allowed {
			t.Fatalf("expected empty user or relationship to be rejected")
		}
		if mock.lastScript != "" {
			t.Fatalf("expected no redis call for empty ids")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: evalResult(2, 90000)}
		l := newRedisMessageRateLimiter(mock, 2*time.Minute, 3)
		got := l.Allow(ctx, " u1 ", " r1 ")
		if !got.Allowed || got.Remaining != 1 {
			t.Fatalf("expected allow with one remaining, got %+v", got)
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "msg:rl:u1:r1" {
			t.Fatalf("unexpected key, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != int64(120000) {
			t.Fatalf("expected window ms=120000, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisMessageAllowScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("deny with retry after", func(t *testing.T) {
		l := newRedisMessageRateLimiter(&mockRedisEvaler{result: evalResult(4, 1500)}, time.Minute, 3)
		got := l.Allow(ctx, "u1", "r1")
		if got.Allowed || got.RetryAfter != 1500*time.Millisecond {
			t.Fatalf("expected deny with retry after 1.5s, got %+v", got)
		}
	})

	t.Run("deny without ttl uses window", func(t *testing.T) {
		l := newRedisMessageRateLimiter(&mockRedisEvaler{result: evalResult(4, -1)}, time.Minute, 3)
		if got := l.Allow(ctx, "u1", "r1"); got.Allowed || got.RetryAfter != time.Minute {
			t.Fatalf("expected retry after the window, got %+v", got)
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := newRedisMessageRateLimiter(&mockRedisEvaler{err: errors.New("redis down")}, time.Minute, 3)
		if !l.Allow(ctx, "u1", "r1").Allowed {
			t.Fatalf("expected fail-open on redis errors")
		}
	})

	t.Run("defaults for invalid settings", func(t *testing.T) {
		l := newRedisMessageRateLimiter(&mockRedisEvaler{}, 0, 0)
		if l.window != time.Minute || l.max != 1 {
			t.Fatalf("expected defaults, got window=%v max=%d", l.window, l.max)
		}
	})
}

func TestRedisMessageRateLimiter_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisMessageRateLimiter(client, 30*time.Second, 2)
	ctx := context.Background()

	if !l.Allow(ctx, "u1", "r1").Allowed || !l.Allow(ctx, "u1", "r1").Allowed {
		t.Fatalf("expected first two messages allowed")
	}
	denied := l.Allow(ctx, "u1", "r1")
	if denied.Allowed {
		t.Fatalf("expected third message denied")
	}
	if denied.RetryAfter <= 0 || denied.RetryAfter > 30*time.Second {
		t.Fatalf("expected retry after within the window, got %v", denied.RetryAfter)
	}
	if !l.Allow(ctx, "u1", "r2").Allowed {
		t.Fatalf("expected independent counter per relationship")
	}
	if !l.Allow(ctx, "u2", "r1").Allowed {
		t.Fatalf("expected independent counter per user")
	}
	if ttl := mr.TTL("msg:rl:u1:r1"); ttl != 30*time.Second {
		t.Fatalf("expected window TTL, got %v", ttl)
	}

	mr.FastForward(31 * time.Second)
	if !l.Allow(ctx, "u1", "r1").Allowed {
		t.Fatalf("expected counter reset after window")
	}
}

func TestNewRedisMessageRateLimiter_NilClient(t *testing.T) {
	if l := NewRedisMessageRateLimiter(nil, time.Minute, 5); l != nil {
		t.Fatalf("expected nil limiter without client")
	}
}
