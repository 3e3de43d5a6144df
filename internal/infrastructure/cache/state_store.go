// Package cache holds the Redis-backed expiring key-value store for import
// working state. Durable import records live in Postgres; everything here is
// allowed to disappear when its TTL runs out.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domain "github.com/user-importer/internal/domain/user"
)

const (
	stateKeyPrefix = "import:state:"
	lockKeyPrefix  = "import:lock:"
)

type ImportStateStore struct {
	client *redis.Client
}

func NewImportStateStore(client *redis.Client) *ImportStateStore {
	return &ImportStateStore{client: client}
}

// NewRedisClient connects and verifies the connection with a bounded ping.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

func (s *ImportStateStore) Put(ctx context.Context, state domain.WorkingState, ttl time.Duration) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal working state: %w", err)
	}
	if err := s.client.Set(ctx, stateKeyPrefix+state.ImportID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store working state: %w", err)
	}
	return nil
}

// Get returns nil without error when the state is absent or expired.
func (s *ImportStateStore) Get(ctx context.Context, importID string) (*domain.WorkingState, error) {
	payload, err := s.client.Get(ctx, stateKeyPrefix+importID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load working state: %w", err)
	}

	var state domain.WorkingState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("unmarshal working state: %w", err)
	}
	return &state, nil
}

func (s *ImportStateStore) Delete(ctx context.Context, importID string) error {
	if err := s.client.Del(ctx, stateKeyPrefix+importID).Err(); err != nil {
		return fmt.Errorf("delete working state: %w", err)
	}
	return nil
}

// Lock serializes advances for one import. It reports false when another
// call already holds the lock; the TTL guards against a crashed holder.
func (s *ImportStateStore) Lock(ctx context.Context, importID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockKeyPrefix+importID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire import lock: %w", err)
	}
	return ok, nil
}

func (s *ImportStateStore) Unlock(ctx context.Context, importID string) error {
	if err := s.client.Del(ctx, lockKeyPrefix+importID).Err(); err != nil {
		return fmt.Errorf("release import lock: %w", err)
	}
	return nil
}
