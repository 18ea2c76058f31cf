package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

// ScoringDedup abstracts the processed-result marker store (Redis). A marked
// application ID means a successful result was already applied, so replayed
// deliveries become no-writes.
type ScoringDedup interface {
	IsDone(ctx context.Context, applicationID string) (bool, error)
	MarkDone(ctx context.Context, applicationID string) error
}

// ScoringService applies asynchronously delivered scoring results to their
// applications, exactly once per result under normal operation.
type ScoringService struct {
	apps  ports.ApplicationRepository
	dedup ScoringDedup
	log   zerolog.Logger
}

func NewScoringService(apps ports.ApplicationRepository, dedup ScoringDedup, log zerolog.Logger) *ScoringService {
	return &ScoringService{apps: apps, dedup: dedup, log: log}
}

// ApplyResult processes one callback delivery. Remote scoring errors are
// logged and leave the application untouched; an unknown application ID is a
// reported error, not a record to create. The write itself is last-write
// per application, so redelivery converges even when the dedup store is
// unavailable.
func (s *ScoringService) ApplyResult(ctx context.Context, in ports.ScoringResultInput) (bool, error) {
	if in.Error {
		s.log.Error().
			Str("application_id", in.ApplicationID).
			Str("message", in.ErrorMessage).
			Msg("remote scoring failed")
		return false, nil
	}

	done, err := s.dedup.IsDone(ctx, in.ApplicationID)
	if err != nil {
		s.log.Warn().Err(err).Str("application_id", in.ApplicationID).Msg("dedup check failed, applying anyway")
	} else if done {
		s.log.Debug().Str("application_id", in.ApplicationID).Msg("duplicate scoring result skipped")
		return false, nil
	}

	if err := s.apps.SetScore(ctx, in.ApplicationID, in.Score, in.Details); err != nil {
		return false, fmt.Errorf("apply scoring result: %w", err)
	}

	if err := s.dedup.MarkDone(ctx, in.ApplicationID); err != nil {
		s.log.Warn().Err(err).Str("application_id", in.ApplicationID).Msg("failed to mark scoring result processed")
	}

	evt := s.log.Info().
		Str("application_id", in.ApplicationID).
		Float64("score", in.Score)
	if in.Details != nil {
		evt = evt.
			Float64("skills_match", in.Details.Breakdown.SkillsMatch.Score).
			Float64("description_match", in.Details.Breakdown.DescriptionMatch.Score).
			Float64("role_match", in.Details.Breakdown.RoleMatch.Score).
			Str("recommendation", in.Details.Recommendation)
	}
	evt.Msg("scoring result applied")

	return true, nil
}
