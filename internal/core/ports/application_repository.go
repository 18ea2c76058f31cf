package ports

import (
	"context"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

// ApplicationRepository defines persistence operations for job applications.
// Create must surface domain.ErrAlreadyApplied on a (user_id, job_id)
// uniqueness violation, the store-level backstop against racing duplicates.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.JobApplication) error
	FindByID(ctx context.Context, id string) (*domain.JobApplication, error)
	FindByUserAndJob(ctx context.Context, userID, jobID string) (*domain.JobApplication, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.JobApplication, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.JobApplication, error)
	ListByJob(ctx context.Context, jobID string) ([]*domain.JobApplication, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
	// SetScore writes the score and breakdown for one application, returning
	// domain.ErrApplicationNotFound when no such application exists.
	SetScore(ctx context.Context, id string, score float64, details *domain.ScoringDetails) error
}
