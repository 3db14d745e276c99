package token

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

const keyPrefix = "session:"

type redisRepo struct {
	client *redis.Client
}

// NewRedis returns a token store backed by Redis. Expiry is enforced by the
// key TTL, so stale sessions vanish without a sweeper.
func NewRedis(client *redis.Client) Repository {
	return &redisRepo{client: client}
}

func (r *redisRepo) Create(ctx context.Context, t Token) error {
	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		return errors.New("token already expired")
	}
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, keyPrefix+t.Token, payload, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (r *redisRepo) Get(ctx context.Context, tok string) (*Token, error) {
	payload, err := r.client.Get(ctx, keyPrefix+tok).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var t Token
	if err := json.Unmarshal(payload, &t); err != nil {
		return nil, err
	}
	t.Token = tok
	return &t, nil
}

func (r *redisRepo) Delete(ctx context.Context, tok string) error {
	return r.client.Del(ctx, keyPrefix+tok).Err()
}
