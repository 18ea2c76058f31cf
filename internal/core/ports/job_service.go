package ports

import (
	"context"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

type JobService interface {
	ListVisible(ctx context.Context) ([]*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Job, error)
}
