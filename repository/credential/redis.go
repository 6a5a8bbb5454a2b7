package credential

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"iusearch/constant"
	"iusearch/utils/errors"
)

const redisKeyPrefix = "iusearch:cred:"

// RedisStore keeps credentials in Redis, for headless or shared deployments
// where a local encrypted file is not available.
type RedisStore struct {
	client *goredis.Client
}

func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.WrapCustomError(constant.ErrStorage, err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return errors.WrapCustomError(constant.ErrStorage, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return errors.WrapCustomError(constant.ErrStorage, err)
	}
	return nil
}
