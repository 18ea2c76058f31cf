package ports

import (
	"context"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

// CompanyRepository defines persistence operations for companies. Delete
// exists solely for the recruiter-signup compensation path: a company whose
// user failed to create is rolled back.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id string) error
}
