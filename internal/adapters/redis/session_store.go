package redis

// Package redis provides Redis-based adapters for durable client storage:
// the session snapshot store and the legacy token vault.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/rentnest/rentnest-web/internal/domain/auth"
	"github.com/rentnest/rentnest-web/internal/ports"
)

// SessionStore persists session snapshots in Redis with a sliding TTL.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStoreOptions configures a SessionStore.
type SessionStoreOptions struct {
	Client redis.UniversalClient
	Prefix string
	TTL    time.Duration
}

// NewSessionStore creates a Redis-based session snapshot store.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "rentnest:"
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 720 * time.Hour
	}
	return &SessionStore{
		client: opts.Client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *SessionStore) key(id string) string {
	return s.prefix + "session:" + id
}

// Save stores the snapshot and refreshes the session TTL.
func (s *SessionStore) Save(ctx context.Context, id string, snap domainauth.Snapshot) error {
	if id == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, s.key(id), data, s.ttl).Err()
}

// Get retrieves the snapshot for a session ID.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Snapshot, error) {
	if id == "" {
		return domainauth.Snapshot{}, ports.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Snapshot{}, ports.ErrSessionNotFound
		}
		return domainauth.Snapshot{}, fmt.Errorf("redis get: %w", err)
	}

	var snap domainauth.Snapshot
	if unmarshalErr := json.Unmarshal([]byte(data), &snap); unmarshalErr != nil {
		return domainauth.Snapshot{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	return snap, nil
}

// Delete removes the snapshot for a session ID.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}
	return s.client.Del(ctx, s.key(id)).Err()
}
