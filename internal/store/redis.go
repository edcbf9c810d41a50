package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_redirect/internal/model"
	"go_redirect/internal/redirect"

	"github.com/go-redis/redis/v8"
)

// ErrDuplicateSource is returned by Insert when the source already has a rule
var ErrDuplicateSource = errors.New("source already exists")

// RedisStore keeps rules in three hashes under a common prefix:
//
//	<prefix>:rules    source => target
//	<prefix>:created  source => RFC3339 creation time
//	<prefix>:targets  target => number of rules pointing at it
type RedisStore struct {
	client    *redis.Client
	prefix    string
	scanCount int64
	now       func() time.Time
}

// NewRedisStore creates a RedisStore. An empty prefix selects model.DefaultRedirectTable.
func NewRedisStore(client *redis.Client, prefix string, scanCount int) *RedisStore {
	if client == nil {
		panic("nil *redis.Client passed to NewRedisStore")
	}
	if prefix == "" {
		prefix = model.DefaultRedirectTable
	}
	if scanCount <= 0 {
		scanCount = DefaultBatchSize
	}
	return &RedisStore{
		client:    client,
		prefix:    prefix,
		scanCount: int64(scanCount),
		now:       time.Now,
	}
}

func (s *RedisStore) rulesKey() string   { return s.prefix + ":rules" }
func (s *RedisStore) createdKey() string { return s.prefix + ":created" }
func (s *RedisStore) targetsKey() string { return s.prefix + ":targets" }

// FindTarget reads the source field of the rules hash
func (s *RedisStore) FindTarget(ctx context.Context, source string) (string, bool, error) {
	target, err := s.client.HGet(ctx, s.rulesKey(), source).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to find redirect target: %w", err)
	}
	return target, true, nil
}

// Exists checks the rules hash for sources and the targets hash for targets
func (s *RedisStore) Exists(ctx context.Context, value string, column redirect.Column) (bool, error) {
	var key string
	switch column {
	case redirect.ColumnSource:
		key = s.rulesKey()
	case redirect.ColumnTarget:
		key = s.targetsKey()
	default:
		_, err := redirect.ParseColumn(string(column))
		return false, err
	}

	ok, err := s.client.HExists(ctx, key, value).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check redirect %s: %w", column, err)
	}
	return ok, nil
}

// insertScript writes a rule and its index entries in one step and returns 0
// when the source is taken. The HLEN calls fail on a wrong-type key before any write.
var insertScript = redis.NewScript(`
redis.call('HLEN', KEYS[1])
redis.call('HLEN', KEYS[2])
redis.call('HLEN', KEYS[3])
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('HSET', KEYS[2], ARGV[1], ARGV[3])
redis.call('HINCRBY', KEYS[3], ARGV[2], 1)
return 1
`)

// Insert saves the rule, its creation time and the target reference atomically
func (s *RedisStore) Insert(ctx context.Context, source, target string) error {
	keys := []string{s.rulesKey(), s.createdKey(), s.targetsKey()}
	created := s.now().UTC().Format(time.RFC3339)

	n, err := insertScript.Run(ctx, s.client, keys, source, target, created).Int()
	if err != nil {
		return fmt.Errorf("failed to create redirect: %w", err)
	}
	if n == 0 {
		return ErrDuplicateSource
	}
	return nil
}

// EachTarget walks the rules hash with HSCAN. As with any SCAN family command,
// an entry may be visited twice if the hash is resized during the walk.
func (s *RedisStore) EachTarget(ctx context.Context, fn func(string) error) error {
	var cursor uint64
	for {
		kvs, next, err := s.client.HScan(ctx, s.rulesKey(), cursor, "", s.scanCount).Result()
		if err != nil {
			return fmt.Errorf("failed to scan redirect targets: %w", err)
		}
		for i := 1; i < len(kvs); i += 2 {
			if err := fn(kvs[i]); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
