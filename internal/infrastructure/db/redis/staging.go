package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

const stagingTTL = 10 * time.Minute

// StagingStore holds pending registrations as typed JSON documents, one per
// email. SET with a TTL gives both supersede-on-reissue (create-or-replace)
// and automatic reclamation of stale records; the record's own expires_at is
// still the authoritative validity check at commit time.
type StagingStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStagingStore(client *redis.Client) *StagingStore {
	return &StagingStore{client: client, ttl: stagingTTL}
}

func (s *StagingStore) Put(ctx context.Context, reg *domain.PendingRegistration) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("staging put: %w", err)
	}
	if err := s.client.Set(ctx, s.key(reg.Email), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("staging put: %w", err)
	}
	return nil
}

func (s *StagingStore) Get(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	data, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrPendingNotFound
		}
		return nil, fmt.Errorf("staging get: %w", err)
	}

	var reg domain.PendingRegistration
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("staging get: decode: %w", err)
	}
	return &reg, nil
}

func (s *StagingStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}

func (s *StagingStore) key(email string) string {
	return "pending_registration:" + email
}
