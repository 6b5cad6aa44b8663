package chat

import (
	"context"
	"sync"
)

// Counter tracks per-sender unread message counts for one user. It reconciles
// an initial snapshot with live feed events; both paths land in the same map
// so a late snapshot never erases bumps (snapshot applies first, by
// construction in Service).
type Counter struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewCounter builds an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// ApplySnapshot merges the REST snapshot of per-sender unread counts. A
// sender already bumped by the feed keeps the larger value.
func (c *Counter) ApplySnapshot(counts map[string]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for sender, n := range counts {
		if n > c.counts[sender] {
			c.counts[sender] = n
		}
	}
}

// Bump records one incoming message from the sender.
func (c *Counter) Bump(senderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[senderID]++
}

// MarkRead zeroes the sender's unread count.
func (c *Counter) MarkRead(senderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, senderID)
}

// Total sums unread counts across senders.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Counts returns a copy of the per-sender counts.
func (c *Counter) Counts() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.counts))
	for sender, n := range c.counts {
		out[sender] = n
	}
	return out
}

// SnapshotSource provides the initial unread counts for a user, typically
// backed by the chat service's REST API.
type SnapshotSource interface {
	UnreadCounts(ctx context.Context, userID string) (map[string]int, error)
}

// StaticSource is a fixed snapshot source for tests and dev mode.
type StaticSource map[string]map[string]int

// UnreadCounts returns the configured snapshot for the user.
func (s StaticSource) UnreadCounts(_ context.Context, userID string) (map[string]int, error) {
	counts := make(map[string]int, len(s[userID]))
	for sender, n := range s[userID] {
		counts[sender] = n
	}
	return counts, nil
}
