package explorer

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBrowser enumerates keys and fetches values for one Redis database.
type RedisBrowser struct {
	client *redis.Client
}

// NewRedisBrowser creates a browser over the given client.
func NewRedisBrowser(client *redis.Client) *RedisBrowser {
	return &RedisBrowser{client: client}
}

// Keys scans for keys matching pattern (empty means "*"), stopping after
// max results. SCAN is used instead of KEYS so large databases are not
// blocked while browsing.
func (rb *RedisBrowser) Keys(ctx context.Context, pattern string, max int) ([]KeyInfo, error) {
	if pattern == "" {
		pattern = "*"
	}
	if max <= 0 {
		max = 100
	}

	var infos []KeyInfo
	iter := rb.client.Scan(ctx, 0, pattern, int64(max)).Iterator()
	for iter.Next(ctx) {
		if len(infos) >= max {
			break
		}
		key := iter.Val()
		info, err := rb.describe(ctx, key)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	return infos, nil
}

func (rb *RedisBrowser) describe(ctx context.Context, key string) (KeyInfo, error) {
	keyType, err := rb.client.Type(ctx, key).Result()
	if err != nil {
		return KeyInfo{}, fmt.Errorf("failed to read type of %s: %w", key, err)
	}
	ttl, err := rb.client.TTL(ctx, key).Result()
	if err != nil {
		return KeyInfo{}, fmt.Errorf("failed to read ttl of %s: %w", key, err)
	}

	ttlText := "none"
	if ttl > 0 {
		ttlText = ttl.String()
	}
	return KeyInfo{Key: key, Type: keyType, TTL: ttlText}, nil
}

// Value fetches a key's value using the read command appropriate for its
// type. Unknown types are reported as an error rather than guessed at.
func (rb *RedisBrowser) Value(ctx context.Context, key string) (any, error) {
	keyType, err := rb.client.Type(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read type of %s: %w", key, err)
	}

	switch keyType {
	case "string":
		return rb.client.Get(ctx, key).Result()
	case "list":
		return rb.client.LRange(ctx, key, 0, -1).Result()
	case "hash":
		return rb.client.HGetAll(ctx, key).Result()
	case "set":
		return rb.client.SMembers(ctx, key).Result()
	case "zset":
		return rb.client.ZRangeWithScores(ctx, key, 0, -1).Result()
	case "none":
		return nil, fmt.Errorf("key %s does not exist", key)
	default:
		return nil, fmt.Errorf("unsupported key type %s for %s", keyType, key)
	}
}

// Delete removes a key. Returns the number of keys removed (0 or 1).
func (rb *RedisBrowser) Delete(ctx context.Context, key string) (int64, error) {
	return rb.client.Del(ctx, key).Result()
}
