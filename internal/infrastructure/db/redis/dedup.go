package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// ScoringDedup marks applications whose scoring result has been applied, so
// redelivered callbacks become no-writes.
// Key format: scoring:done:<application_id>
type ScoringDedup struct {
	client *redis.Client
}

func NewScoringDedup(client *redis.Client) *ScoringDedup {
	return &ScoringDedup{client: client}
}

// IsDone reports whether a result for this application was already applied.
func (d *ScoringDedup) IsDone(ctx context.Context, applicationID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(applicationID)).Result()
	if err != nil {
		return false, fmt.Errorf("scoring dedup check: %w", err)
	}
	return n > 0, nil
}

// MarkDone records that this application's result is applied (expires after dedupTTL).
func (d *ScoringDedup) MarkDone(ctx context.Context, applicationID string) error {
	return d.client.Set(ctx, d.key(applicationID), "1", dedupTTL).Err()
}

func (d *ScoringDedup) key(applicationID string) string {
	return "scoring:done:" + applicationID
}
