package redis

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 10 * time.Second

// SubmitGuard rejects identical credit adjustments re-submitted within a short
// window, e.g. from a duplicated console tab.
// Key format: console:submit:<operator>:<user>:<amount>:<reason-hash>
type SubmitGuard struct {
	client *redis.Client
}

func NewSubmitGuard(client *redis.Client) *SubmitGuard {
	return &SubmitGuard{client: client}
}

// Reserve marks the adjustment as submitted. It returns false when the exact
// same adjustment was already reserved inside the TTL window.
func (g *SubmitGuard) Reserve(ctx context.Context, operatorID, userID string, amountCents int64, reason string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(operatorID, userID, amountCents, reason), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("submit guard: %w", err)
	}
	return ok, nil
}

func (g *SubmitGuard) key(operatorID, userID string, amountCents int64, reason string) string {
	sum := sha256.Sum256([]byte(reason))
	return fmt.Sprintf("console:submit:%s:%s:%d:%x", operatorID, userID, amountCents, sum[:8])
}
