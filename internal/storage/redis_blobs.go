package storage

import (
	"context"
	"errors"

	redis "github.com/redis/go-redis/v9"
)

// Every losing WATCH round lets one writer through, so this bounds the
// number of concurrent writers that can all make progress.
const defaultRedisRetries = 25

// RedisBlobs stores blobs as plain string values. Update runs an optimistic
// WATCH/MULTI transaction and retries when another writer got there first.
type RedisBlobs struct {
	client     *redis.Client
	prefix     string
	maxRetries int
}

func NewRedisBlobs(client *redis.Client, prefix string) *RedisBlobs {
	return &RedisBlobs{client: client, prefix: prefix, maxRetries: defaultRedisRetries}
}

func (r *RedisBlobs) key(key string) string { return r.prefix + key }

func (r *RedisBlobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisBlobs) Update(ctx context.Context, key string, fn UpdateFunc) error {
	k := r.key(key)
	txf := func(tx *redis.Tx) error {
		old, err := tx.Get(ctx, k).Bytes()
		ok := true
		if errors.Is(err, redis.Nil) {
			ok = false
		} else if err != nil {
			return err
		}

		next, err := fn(old, ok)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < r.maxRetries; i++ {
		err := r.client.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrBlobConflict
}

// Ping checks the redis connection.
func (r *RedisBlobs) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisBlobs) Close() error {
	return r.client.Close()
}
