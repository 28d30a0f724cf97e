package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs for the cache namespaces. Short on purpose: they bound staleness, the
// database stays the source of truth.
const (
	UserTTL     = time.Hour
	StreakTTL   = 5 * time.Minute
	ReminderTTL = 5 * time.Minute
	TrackingTTL = 5 * time.Minute
)

// Client is a cache-aside wrapper around redis. Every method tolerates a nil
// client or an unreachable server: reads report a miss, writes turn into
// no-ops. A cache failure must never fail a request.
type Client struct {
	rdb *redis.Client
}

// New connects to redis at redisURL. On connection failure it logs and
// returns a client whose operations all degrade to misses, so the API keeps
// serving from the database.
func New(ctx context.Context, redisURL string) *Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Cache: invalid REDIS_URL, running without cache: %v", err)
		return &Client{}
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 5 * time.Second

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Cache: redis unreachable, running without cache: %v", err)
		return &Client{}
	}

	log.Println("Successfully connected to Redis")
	return &Client{rdb: rdb}
}

func (c *Client) Close() {
	if c.rdb != nil {
		c.rdb.Close()
	}
}

// Get returns the cached value for ns:key, or ("", false) on miss or error.
func (c *Client) Get(ctx context.Context, ns, key string) (string, bool) {
	if c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, ns+":"+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Cache: get %s:%s failed: %v", ns, key, err)
		}
		return "", false
	}
	return val, true
}

func (c *Client) Set(ctx context.Context, ns, key, value string, ttl time.Duration) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, ns+":"+key, value, ttl).Err(); err != nil {
		log.Printf("Cache: set %s:%s failed: %v", ns, key, err)
	}
}

// Delete invalidates one or more keys in a namespace. Writers call this
// before returning so readers never see the overwritten entry.
func (c *Client) Delete(ctx context.Context, ns string, keys ...string) {
	if c.rdb == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = ns + ":" + k
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		log.Printf("Cache: delete %s failed: %v", ns, err)
	}
}

// BlacklistToken marks an access token revoked until its natural expiry.
func (c *Client) BlacklistToken(ctx context.Context, token string, ttl time.Duration) {
	c.Set(ctx, "blacklist", token, "1", ttl)
}

// IsBlacklisted reports whether the token was revoked. On cache failure it
// answers false: an unreachable cache must not lock every user out.
func (c *Client) IsBlacklisted(ctx context.Context, token string) bool {
	_, found := c.Get(ctx, "blacklist", token)
	return found
}

// IncrWindow bumps a per-key counter, starting a fresh expiry window on the
// first hit. Returns the new count, or 0 when the cache is unavailable.
func (c *Client) IncrWindow(ctx context.Context, ns, key string, window time.Duration) int64 {
	if c.rdb == nil {
		return 0
	}
	full := ns + ":" + key
	count, err := c.rdb.Incr(ctx, full).Result()
	if err != nil {
		log.Printf("Cache: incr %s failed: %v", full, err)
		return 0
	}
	if count == 1 {
		c.rdb.Expire(ctx, full, window)
	}
	return count
}
