package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Devuelve {conteo, ttl en ms}. La ventana arranca con el primer mensaje.
const redisMessageAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`

var ErrRateLimited = errors.New("rate limited")

// RateDecision es el resultado de consultar el limitador.
// RetryAfter solo tiene sentido cuando Allowed es falso.
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// MessageRateLimiter limita cuantos mensajes envia un usuario a una relacion por ventana.
type MessageRateLimiter interface {
	Allow(ctx context.Context, userID, relationshipID string) RateDecision
}

type redisMessageRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisMessageRateLimiter devuelve nil sin cliente; el handler trata nil como sin limite.
func NewRedisMessageRateLimiter(client *redis.Client, window time.Duration, max int) MessageRateLimiter {
	if client == nil {
		return nil
	}
	return newRedisMessageRateLimiter(client, window, max)
}

func newRedisMessageRateLimiter(client redisEvaler, window time.Duration, max int) *redisMessageRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisMessageRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "msg:rl:",
	}
}

func (l *redisMessageRateLimiter) key(userID, relationshipID string) string {
	return l.prefix + userID + ":" + relationshipID
}

// Allow falla abierto: si Redis no responde, el mensaje pasa.
func (l *redisMessageRateLimiter) Allow(ctx context.Context, userID, relationshipID string) RateDecision {
	if l == nil || l.client == nil {
		return RateDecision{Allowed: true}
	}
	userID = strings.TrimSpace(userID)
	relationshipID = strings.TrimSpace(relationshipID)
	if userID == "" || relationshipID == "" {
		return RateDecision{}
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	res, err := l.client.Eval(ctx, redisMessageAllowScript, []string{l.key(userID, relationshipID)}, l.window.Milliseconds()).Int64Slice()
	if err != nil || len(res) != 2 {
		return RateDecision{Allowed: true, Remaining: l.max}
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	if count <= l.max {
		return RateDecision{Allowed: true, Remaining: l.max - count}
	}
	if ttl <= 0 {
		ttl = l.window
	}
	return RateDecision{RetryAfter: ttl}
}
