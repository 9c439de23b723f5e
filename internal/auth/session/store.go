// Package session implements the opaque bearer-session store.
// Session IDs are server-side tokens; destroying one revokes access
// immediately, which signed tokens cannot do.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"recruit_portal_backend/platform/apperr"

	"github.com/redis/go-redis/v9"
)

const (
	idPrefix  = "sess_"
	keyPrefix = "session:"
)

// Data is the identity stored against a session ID.
type Data struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Store persists sessions with a TTL.
type Store interface {
	Create(ctx context.Context, data Data) (string, error)
	Get(ctx context.Context, sessionID string) (*Data, error)
	Destroy(ctx context.Context, sessionID string) error
}

// NewID generates an unguessable session ID.
func NewID() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("session id entropy unavailable: %v", err))
	}
	return idPrefix + hex.EncodeToString(buf)
}

// RedisStore keeps sessions in Redis so they survive restarts and are
// shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

var _ Store = (*RedisStore)(nil)

// Create stores the session data under a fresh ID with the store TTL.
func (s *RedisStore) Create(ctx context.Context, data Data) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	id := NewID()
	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

// Get resolves a session ID; expired or unknown IDs return Unauthorized.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Data, error) {
	payload, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.Unauthorized("invalid or expired session")
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &data, nil
}

// Destroy revokes a session. Destroying an unknown ID is not an error.
func (s *RedisStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// MemoryStore is the fallback when Redis is not configured. Sessions are
// process-local and lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// NewMemoryStore creates an in-process session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

var _ Store = (*MemoryStore)(nil)

// Create stores the session data under a fresh ID.
func (s *MemoryStore) Create(ctx context.Context, data Data) (string, error) {
	id := NewID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

// Get resolves a session ID; expired entries are removed on access.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperr.Unauthorized("invalid or expired session")
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, sessionID)
		return nil, apperr.Unauthorized("invalid or expired session")
	}

	data := entry.data
	return &data, nil
}

// Destroy revokes a session.
func (s *MemoryStore) Destroy(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
