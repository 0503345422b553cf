package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const refreshTokenPrefix = "refresh:"

// RedisRefreshTokenRepository keeps refresh tokens in Redis with a TTL, the
// token itself being the key.
type RedisRefreshTokenRepository struct {
	rdb *redis.Client
}

func NewRedisRefreshTokenRepository(rdb *redis.Client) *RedisRefreshTokenRepository {
	if rdb == nil {
		panic("redis client cannot be nil for RedisRefreshTokenRepository")
	}
	return &RedisRefreshTokenRepository{rdb: rdb}
}

func (r *RedisRefreshTokenRepository) Save(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, refreshTokenPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis: store refresh token: %w", err)
	}
	return nil
}

// Consume reads and deletes the token in one GETDEL, so a token can be
// exchanged at most once.
func (r *RedisRefreshTokenRepository) Consume(ctx context.Context, token string) (uint, error) {
	val, err := r.rdb.GetDel(ctx, refreshTokenPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("redis: consume refresh token: %w", err)
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis: refresh token holds invalid user id %q: %w", val, err)
	}
	return uint(id), nil
}
