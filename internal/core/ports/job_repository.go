package ports

import (
	"context"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// ListVisible returns publicly listed jobs only.
	ListVisible(ctx context.Context) ([]*domain.Job, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Job, error)
	SetVisibility(ctx context.Context, id string, visible bool) error
}
