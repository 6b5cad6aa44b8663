package chat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "chat:messages:"

// Service maintains one unread counter per user. On first access it loads
// the REST snapshot and, when Redis is available, subscribes to the user's
// message channel so incoming pushes bump the counter live. Events arriving
// after Close are dropped.
type Service struct {
	cache  *redis.Client
	source SnapshotSource
	logger *slog.Logger

	mu       sync.Mutex
	counters map[string]*Counter
	subs     map[string]*redis.PubSub
	closed   bool
}

// NewService wires an unread-count service. cache may be nil, in which case
// counters track snapshots and local reads only.
func NewService(cache *redis.Client, source SnapshotSource, logger *slog.Logger) *Service {
	return &Service{
		cache:    cache,
		source:   source,
		logger:   logger,
		counters: make(map[string]*Counter),
		subs:     make(map[string]*redis.PubSub),
	}
}

// Total returns the user's unread total across senders.
func (s *Service) Total(ctx context.Context, userID string) (int, error) {
	counter, err := s.counterFor(ctx, userID)
	if err != nil {
		return 0, err
	}
	return counter.Total(), nil
}

// Counts returns the user's per-sender unread counts.
func (s *Service) Counts(ctx context.Context, userID string) (map[string]int, error) {
	counter, err := s.counterFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return counter.Counts(), nil
}

// MarkRead zeroes the unread count for one sender.
func (s *Service) MarkRead(ctx context.Context, userID, senderID string) error {
	counter, err := s.counterFor(ctx, userID)
	if err != nil {
		return err
	}
	counter.MarkRead(senderID)
	return nil
}

// Close tears down all subscriptions.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for userID, sub := range s.subs {
		if err := sub.Close(); err != nil && s.logger != nil {
			s.logger.Warn("close chat subscription", "user_id", userID, "error", err)
		}
	}
	s.subs = make(map[string]*redis.PubSub)
}

func (s *Service) counterFor(ctx context.Context, userID string) (*Counter, error) {
	s.mu.Lock()
	if counter, ok := s.counters[userID]; ok {
		s.mu.Unlock()
		return counter, nil
	}
	s.mu.Unlock()

	snapshot, err := s.source.UnreadCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if counter, ok := s.counters[userID]; ok {
		// Raced with another request; keep the existing counter.
		return counter, nil
	}

	counter := NewCounter()
	counter.ApplySnapshot(snapshot)
	s.counters[userID] = counter

	if s.cache != nil && !s.closed {
		sub := s.cache.Subscribe(context.Background(), channelPrefix+userID)
		s.subs[userID] = sub
		go s.consume(sub, counter)
	}

	return counter, nil
}

// consume bumps the counter for each pushed message. The message payload is
// the sender's identifier. The loop ends when the subscription closes.
func (s *Service) consume(sub *redis.PubSub, counter *Counter) {
	for msg := range sub.Channel() {
		counter.Bump(msg.Payload)
	}
}
