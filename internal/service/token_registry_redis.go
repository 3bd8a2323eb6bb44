package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisTokenRegistry guarda los tokens activos en Redis. Se selecciona por
// configuración cuando hay REDIS_ADDR; los tokens no expiran, así que las
// claves se escriben sin TTL.
type redisTokenRegistry struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenRegistry(client *redis.Client) TokenRegistry {
	if client == nil {
		return nil
	}
	return &redisTokenRegistry{
		client: client,
		prefix: "auth:token:",
	}
}

func (r *redisTokenRegistry) Append(ctx context.Context, userID, scope, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return r.client.Set(ctx, r.prefix+token, userID+"|"+scope, 0).Err()
}

func (r *redisTokenRegistry) Contains(ctx context.Context, userID, scope, token string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	val, err := r.client.Get(ctx, r.prefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return val == userID+"|"+scope, nil
}

func (r *redisTokenRegistry) Remove(ctx context.Context, userID, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	val, err := r.client.Get(ctx, r.prefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return err
	}
	if !strings.HasPrefix(val, userID+"|") {
		return nil
	}
	return r.client.Del(ctx, r.prefix+token).Err()
}
