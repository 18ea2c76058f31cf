package ports

import (
	"context"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

// ScoringResultInput is the inbound callback payload. Either Error is set
// (the computation failed remotely) or Score carries the result.
type ScoringResultInput struct {
	ApplicationID string
	Score         float64
	Details       *domain.ScoringDetails
	Error         bool
	ErrorMessage  string
}

type ScoringService interface {
	// ApplyResult applies one delivered result idempotently. The returned
	// bool reports whether the store was mutated (false for remote errors
	// and replayed deliveries).
	ApplyResult(ctx context.Context, in ScoringResultInput) (bool, error)
}
