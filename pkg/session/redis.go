package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/atechlabs/scriptflow/pkg/models"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "scriptflow:session:"

// RedisStore keeps navigation state in Redis so sessions survive API
// restarts. States are stored as JSON under a prefixed key with an optional
// TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL sets the expiration for sessions. Zero means no expiration.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a store from a Redis URL.
func NewRedisStore(url string, opts ...RedisOption) (*RedisStore, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return NewRedisStoreFromClient(redis.NewClient(options), opts...), nil
}

// NewRedisStoreFromClient creates a store over an existing client.
func NewRedisStoreFromClient(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	store := &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) Create(ctx context.Context, state *models.NavigationState) (string, error) {
	sessionID := uuid.New().String()

	if err := s.write(ctx, sessionID, state); err != nil {
		return "", err
	}

	return sessionID, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.NavigationState, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}

	var state models.NavigationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}

	return &state, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, state *models.NavigationState) error {
	exists, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check session %s: %w", sessionID, err)
	}

	if exists == 0 {
		return ErrSessionNotFound
	}

	return s.write(ctx, sessionID, state)
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}

	return nil
}

func (s *RedisStore) write(ctx context.Context, sessionID string, state *models.NavigationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session %s: %w", sessionID, err)
	}

	return nil
}
