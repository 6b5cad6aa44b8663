package registration

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/nacl/secretbox"
)

// RedisDraftStore keeps drafts in Redis with a TTL standing in for the
// browser-session lifetime. The draft contains the registrant's plaintext
// password, so the serialized value is sealed with NaCl secretbox before it
// leaves the process.
type RedisDraftStore struct {
	client *redis.Client
	secret [32]byte
	ttl    time.Duration
}

// NewRedisDraftStore builds a Redis-backed draft store sealing values under
// the given secret.
func NewRedisDraftStore(client *redis.Client, secret [32]byte, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, secret: secret, ttl: ttl}
}

// Put serializes, seals and stores the draft, replacing any existing one.
func (s *RedisDraftStore) Put(ctx context.Context, sessionID string, draft Draft) error {
	plain, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	sealed, err := seal(plain, &s.secret)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, draftKey(sessionID), sealed, s.ttl).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

// Get fetches and opens the draft for the session.
func (s *RedisDraftStore) Get(ctx context.Context, sessionID string) (Draft, error) {
	sealed, err := s.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err == redis.Nil {
		return Draft{}, ErrNoDraft
	}
	if err != nil {
		return Draft{}, fmt.Errorf("fetch draft: %w", err)
	}

	plain, err := open(sealed, &s.secret)
	if err != nil {
		return Draft{}, err
	}

	var draft Draft
	if err := json.Unmarshal(plain, &draft); err != nil {
		return Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	return draft, nil
}

// Delete removes the draft. Deleting an absent draft is not an error.
func (s *RedisDraftStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func draftKey(sessionID string) string {
	return draftKeyPrefix + ":" + sessionID
}

func seal(plain []byte, secret *[32]byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, secret), nil
}

func open(sealed []byte, secret *[32]byte) ([]byte, error) {
	if len(sealed) < 24 {
		return nil, fmt.Errorf("sealed draft too short")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, secret)
	if !ok {
		return nil, fmt.Errorf("draft seal verification failed")
	}
	return plain, nil
}
