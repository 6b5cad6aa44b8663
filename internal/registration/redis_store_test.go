package registration

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisStore(t *testing.T) (*RedisDraftStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	var secret [32]byte
	copy(secret[:], "0123456789abcdef0123456789abcdef")
	return NewRedisDraftStore(client, secret, time.Hour), mr
}

func sampleDraft() Draft {
	return Draft{
		FullName: "A B",
		Email:    "a@b.com",
		Phone:    "0711234567",
		Password: "secret1",
		Role:     RoleFarmer,
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "s1", sampleDraft()); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != sampleDraft() {
		t.Fatalf("expected %+v, got %+v", sampleDraft(), got)
	}
}

func TestRedisStoreSealsPasswordAtRest(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "s1", sampleDraft()); err != nil {
		t.Fatalf("put: %v", err)
	}

	raw, err := mr.Get(draftKey("s1"))
	if err != nil {
		t.Fatalf("read raw value: %v", err)
	}
	if bytes.Contains([]byte(raw), []byte("secret1")) {
		t.Fatalf("plaintext password stored at rest")
	}
	if bytes.Contains([]byte(raw), []byte("a@b.com")) {
		t.Fatalf("plaintext draft stored at rest")
	}
}

func TestRedisStoreSetsTTL(t *testing.T) {
	store, mr := setupRedisStore(t)

	if err := store.Put(context.Background(), "s1", sampleDraft()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ttl := mr.TTL(draftKey("s1")); ttl != time.Hour {
		t.Fatalf("expected 1h TTL, got %v", ttl)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(context.Background(), "s1"); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected expired draft to report ErrNoDraft, got %v", err)
	}
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := setupRedisStore(t)

	if _, err := store.Get(context.Background(), "unknown"); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "s1", sampleDraft()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected draft gone, got %v", err)
	}

	// Deleting twice stays quiet.
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
