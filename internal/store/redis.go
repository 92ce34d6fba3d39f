package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"portal_creditos/internal/middleware"
	"portal_creditos/internal/model"

	"github.com/go-redis/redis/v8"
)

const redisTokenKeyPrefix = "reset_token:"

// consumeScript hace GET+DEL en una sola operación del lado del servidor,
// garantizando que solo un consumidor reciba el valor.
var consumeScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if v then
	redis.call('DEL', KEYS[1])
end
return v
`)

// RedisTokenStore respalda los tokens en Redis con TTL nativo. Sobrevive a los
// reinicios del proceso; el barrido periódico no tiene trabajo que hacer aquí.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(addr, password string, db int, logger *slog.Logger) (*RedisTokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", "error", err, "addr", addr)
		return nil, fmt.Errorf("store.NewRedisTokenStore: %w", err)
	}

	logger.Info("Redis token store connected", "addr", addr)
	return &RedisTokenStore{client: client}, nil
}

func (s *RedisTokenStore) Put(ctx context.Context, record model.ResetToken) error {
	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		// Dead on arrival; nothing worth storing.
		return nil
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("RedisTokenStore.Put: marshal: %w", err)
	}

	if err := s.client.Set(ctx, redisTokenKeyPrefix+record.Token, payload, ttl).Err(); err != nil {
		middleware.GetLogger(ctx).Error("Failed to store reset token in Redis", "error", err)
		return fmt.Errorf("RedisTokenStore.Put: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Get(ctx context.Context, token string) (*model.ResetToken, error) {
	payload, err := s.client.Get(ctx, redisTokenKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Failed to read reset token from Redis", "error", err)
		return nil, fmt.Errorf("RedisTokenStore.Get: %w", err)
	}

	var record model.ResetToken
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("RedisTokenStore.Get: unmarshal: %w", err)
	}
	return &record, nil
}

func (s *RedisTokenStore) Remove(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, redisTokenKeyPrefix+token).Err(); err != nil {
		middleware.GetLogger(ctx).Error("Failed to delete reset token from Redis", "error", err)
		return fmt.Errorf("RedisTokenStore.Remove: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Consume(ctx context.Context, token string) (*model.ResetToken, error) {
	result, err := consumeScript.Run(ctx, s.client, []string{redisTokenKeyPrefix + token}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Failed to consume reset token in Redis", "error", err)
		return nil, fmt.Errorf("RedisTokenStore.Consume: %w", err)
	}

	payload, ok := result.(string)
	if !ok {
		return nil, model.ErrNotFound
	}

	var record model.ResetToken
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("RedisTokenStore.Consume: unmarshal: %w", err)
	}
	return &record, nil
}

// SweepExpired no hace nada: Redis expira las claves por su cuenta.
func (s *RedisTokenStore) SweepExpired(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

// Close libera la conexión con Redis.
func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}
