package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Chaves fixas do backoffice.
const (
	KeyAdminToken = "admin_token"
	KeyAdminRole  = "admin_role"
)

// RedisStore persiste a sessão do operador do backoffice em duas chaves do Redis.
type RedisStore struct {
	rdb         *redis.Client
	keyToken    string
	keyIdentity string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, keyToken: KeyAdminToken, keyIdentity: KeyAdminRole}
}

func (r *RedisStore) Load(ctx context.Context) (Session, error) {
	vals, err := r.rdb.MGet(ctx, r.keyToken, r.keyIdentity).Result()
	if err != nil {
		return Session{}, fmt.Errorf("redis mget session: %w", err)
	}
	var s Session
	if v, ok := vals[0].(string); ok {
		s.Token = v
	}
	if v, ok := vals[1].(string); ok {
		s.Identity = v
	}
	return s, nil
}

func (r *RedisStore) Set(ctx context.Context, s Session) error {
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.keyToken, s.Token, 0)
		p.Set(ctx, r.keyIdentity, s.Identity, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.keyToken, r.keyIdentity).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
