package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"invoice-antifraud/internal/domain/fraud"
)

// retention bounds how much per-account history the cache keeps. It must be
// at least as long as the largest configurable fraud timeframe in use.
const retention = 48 * time.Hour

// VelocityCache tracks recent invoices per account in a Redis sorted set,
// scored by creation time, so the frequency rule can count a trailing window
// without hitting the database.
type VelocityCache struct {
	client *Client
}

// NewVelocityCache creates a new velocity cache
func NewVelocityCache(client *Client) *VelocityCache {
	return &VelocityCache{client: client}
}

func velocityKey(accountID string) string {
	return "velocity:account:" + accountID
}

// RecordInvoice records a persisted invoice for velocity tracking.
// Best effort: callers log failures but never fail the request on them.
func (c *VelocityCache) RecordInvoice(ctx context.Context, accountID, invoiceID string, createdAt time.Time) error {
	key := velocityKey(accountID)

	member := redis.Z{
		Score:  float64(createdAt.Unix()),
		Member: invoiceID,
	}
	if err := c.client.ZAdd(ctx, key, member); err != nil {
		return fmt.Errorf("failed to record invoice: %w", err)
	}

	if err := c.client.Expire(ctx, key, retention); err != nil {
		return fmt.Errorf("failed to set expiration: %w", err)
	}

	// Trim entries past the retention window; cleanup is best effort.
	cutoff := time.Now().Add(-retention).Unix()
	_ = c.client.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10))

	return nil
}

// CountSince counts cached invoices created at or after the given instant.
// The cache only ever holds invoices this service recorded, so the result is
// a lower bound on the true count.
func (c *VelocityCache) CountSince(ctx context.Context, accountID string, since time.Time) (int64, error) {
	count, err := c.client.ZCount(ctx, velocityKey(accountID), strconv.FormatInt(since.Unix(), 10), "+inf")
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

// Counter is the read side of the velocity cache.
type Counter interface {
	CountSince(ctx context.Context, accountID string, since time.Time) (int64, error)
}

// VelocityHistory fronts a fraud.History with the velocity cache. Cached
// counts are a lower bound on the truth, so they are only trusted when they
// already clear the frequency threshold; everything else falls through to
// the authoritative store.
type VelocityHistory struct {
	cache     Counter
	fallback  fraud.History
	threshold int64
}

// NewVelocityHistory wraps fallback with the cache fast path. threshold must
// match the frequency rule's configured invoice count limit.
func NewVelocityHistory(cache Counter, fallback fraud.History, threshold int64) *VelocityHistory {
	return &VelocityHistory{
		cache:     cache,
		fallback:  fallback,
		threshold: threshold,
	}
}

// ListRecentAmounts always reads the store; the cache keeps no amounts.
func (h *VelocityHistory) ListRecentAmounts(ctx context.Context, accountID string, limit int) ([]decimal.Decimal, error) {
	return h.fallback.ListRecentAmounts(ctx, accountID, limit)
}

// CountSince answers from the cache when the cached count already exceeds
// the threshold (the true count can only be higher). Otherwise, or when the
// cache read fails, it falls back to the store.
func (h *VelocityHistory) CountSince(ctx context.Context, accountID string, since time.Time) (int64, error) {
	cached, err := h.cache.CountSince(ctx, accountID, since)
	if err == nil && cached > h.threshold {
		return cached, nil
	}
	return h.fallback.CountSince(ctx, accountID, since)
}
