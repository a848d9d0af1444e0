package inquiry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
)

const keyPrefix = "dryfruto:bulk_order:inflight:"

// Guard tracks in-flight submissions so the same payload isn't sent twice
// concurrently. Acquire reports false when key is already held; otherwise it
// returns a token that Release needs, so a holder whose key expired and was
// taken over cannot release the new holder's key.
type Guard interface {
	Acquire(ctx context.Context, key string) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
}

// Fingerprint identifies a payload. Fields are compared after trimming and,
// for case-insensitive ones, lower-casing.
func Fingerprint(in domain.BulkOrderInquiry) string {
	norm := domain.BulkOrderInquiry{
		Name:        strings.TrimSpace(in.Name),
		Company:     strings.TrimSpace(in.Company),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		ProductType: strings.TrimSpace(in.ProductType),
		Quantity:    strings.TrimSpace(in.Quantity),
		Message:     strings.TrimSpace(in.Message),
	}
	data, _ := json.Marshal(norm)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RedisGuard holds keys in Redis with SET NX so the guard spans replicas.
// The TTL bounds how long a crashed submission blocks a retry.
type RedisGuard struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisGuard creates a Redis-backed guard.
func NewRedisGuard(client redis.Cmdable, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

// releaseScript deletes KEYS[1] only while it still holds ARGV[1].
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (g *RedisGuard) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, keyPrefix+key, token, g.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("redis setnx submission guard: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (g *RedisGuard) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, g.client, []string{keyPrefix + key}, token).Err(); err != nil {
		return fmt.Errorf("redis release submission guard: %w", err)
	}
	return nil
}

// MemoryGuard is the single-replica guard used when Redis isn't configured.
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]lease
	ttl  time.Duration
	now  func() time.Time
}

type lease struct {
	token   string
	expires time.Time
}

// NewMemoryGuard creates an in-process guard.
func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{held: make(map[string]lease), ttl: ttl, now: time.Now}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if l, ok := g.held[key]; ok && now.Before(l.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	g.held[key] = lease{token: token, expires: now.Add(g.ttl)}

	for k, l := range g.held {
		if !now.Before(l.expires) {
			delete(g.held, k)
		}
	}
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
