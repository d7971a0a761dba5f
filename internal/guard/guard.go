package guard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Guard allows at most one in-flight analysis per session key. Acquire
// reports false when the key is already held; on success it returns the
// token that Release must present. A stale token releases nothing.
type Guard interface {
	Acquire(ctx context.Context, key string) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard holds keys with SETNX so the limit holds across server
// instances. The TTL frees keys left behind by a crashed process.
type RedisGuard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, prefix string, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, prefix: prefix, ttl: ttl}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, g.prefix+key, token, g.ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (g *RedisGuard) Release(ctx context.Context, key, token string) error {
	return releaseScript.Run(ctx, g.client, []string{g.prefix + key}, token).Err()
}

type lease struct {
	token   string
	expires time.Time
}

// MemoryGuard is the single-process Guard used when Redis is not configured.
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]lease
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{
		held: make(map[string]lease),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if l, ok := g.held[key]; ok && (g.ttl <= 0 || now.Before(l.expires)) {
		return "", false, nil
	}

	token := uuid.NewString()
	g.held[key] = lease{token: token, expires: now.Add(g.ttl)}
	return token, true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if l, ok := g.held[key]; ok && l.token == token {
		delete(g.held, key)
	}
	return nil
}
