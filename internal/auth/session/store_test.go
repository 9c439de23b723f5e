package session

import (
	"context"
	"testing"
	"time"

	"recruit_portal_backend/platform/apperr"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx, Data{UserID: "u1", Email: "recruiter@kaizen.com", Role: "recruiter"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if len(id) <= len("sess_") || id[:5] != "sess_" {
		t.Fatalf("Create() id = %q, want sess_ prefix", id)
	}

	data, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if data.UserID != "u1" || data.Email != "recruiter@kaizen.com" || data.Role != "recruiter" {
		t.Fatalf("Get() = %+v, want stored data", data)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	id, err := store.Create(ctx, Data{UserID: "u1"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, id)
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("Get() after expiry error = %v, want unauthorized", err)
	}
}

func TestRedisStoreDestroy(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx, Data{UserID: "u1"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := store.Destroy(ctx, id); err != nil {
		t.Fatalf("Destroy() error: %v", err)
	}
	if _, err := store.Get(ctx, id); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("Get() after destroy error = %v, want unauthorized", err)
	}
	if err := store.Destroy(ctx, id); err != nil {
		t.Fatalf("Destroy() of unknown id error: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	id, err := store.Create(ctx, Data{UserID: "u1", Role: "admin"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	data, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if data.Role != "admin" {
		t.Fatalf("Get() role = %q, want admin", data.Role)
	}

	current = current.Add(2 * time.Minute)

	if _, err := store.Get(ctx, id); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("Get() after expiry error = %v, want unauthorized", err)
	}
}
