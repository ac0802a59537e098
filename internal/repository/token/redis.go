package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dutyfree-pos/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pos:session:"

type redisRepo struct {
	client *redis.Client
}

// NewRedis stores tokens in Redis with the token's remaining lifetime as TTL.
func NewRedis(client *redis.Client) Repository {
	return &redisRepo{client: client}
}

func (r *redisRepo) Save(ctx context.Context, token Token) error {
	ttl := time.Duration(0)
	if !token.ExpiresAt.IsZero() {
		ttl = time.Until(token.ExpiresAt)
		if ttl <= 0 {
			return fmt.Errorf("token for terminal %s already expired", token.TerminalID)
		}
	}
	payload, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+token.TerminalID, payload, ttl).Err()
}

func (r *redisRepo) Get(ctx context.Context, terminalID string) (*Token, error) {
	raw, err := r.client.Get(ctx, keyPrefix+terminalID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var out Token
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode token for terminal %s: %w", terminalID, err)
	}
	return &out, nil
}

func (r *redisRepo) Delete(ctx context.Context, terminalID string) error {
	n, err := r.client.Del(ctx, keyPrefix+terminalID).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
