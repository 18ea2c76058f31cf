package ports

import (
	"context"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

// UpdateProfileInput carries the optional profile mutations; empty fields are
// left untouched. Company* fields apply to recruiters only.
type UpdateProfileInput struct {
	UserID string
	Name   string
	Phone  string
	Image  *FileUpload

	// Applicant fields.
	Bio      string
	Skills   []string
	Role     string
	LinkedIn string
	GitHub   string

	// Recruiter company fields.
	CompanyWebsite      string
	CompanyIndustry     string
	CompanySize         string
	CompanyContactEmail string
	CompanyLocation     string
	CompanyDescription  string
}

type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (*domain.User, error)
	UpdateResume(ctx context.Context, userID string, resume FileUpload) (*domain.User, error)
}
