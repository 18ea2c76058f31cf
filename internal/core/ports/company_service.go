package ports

import (
	"context"
	"time"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

// PostJobInput is a recruiter's new job posting.
type PostJobInput struct {
	UserID      string
	Title       string
	Description string
	Location    string
	Category    string
	Level       string
	Salary      string
	Skills      []string
}

// CompanyApplicantItem is the flattened row a recruiter sees per applicant.
type CompanyApplicantItem struct {
	ApplicationID string    `json:"application_id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Image         string    `json:"image"`
	JobID         string    `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	Location      string    `json:"location"`
	Resume        string    `json:"resume"`
	AppliedAt     time.Time `json:"applied_at"`
	Status        string    `json:"status"`
	Score         *float64  `json:"score"`
}

// JobWithApplicants pairs a posting with its applicant count.
type JobWithApplicants struct {
	domain.Job
	Applicants int `json:"applicants"`
}

type CompanyService interface {
	// GetForUser resolves the company owned by the given recruiter.
	GetForUser(ctx context.Context, userID string) (*domain.Company, error)
	Get(ctx context.Context, id string) (*domain.Company, error)
	PostJob(ctx context.Context, in PostJobInput) (*domain.Job, error)
	Applicants(ctx context.Context, userID string) ([]CompanyApplicantItem, error)
	ApplicantsByJob(ctx context.Context, jobID string) ([]CompanyApplicantItem, error)
	PostedJobs(ctx context.Context, userID string) ([]JobWithApplicants, error)
	ChangeApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus) error
	// ToggleJobVisibility flips the posting's visibility and returns the new
	// state.
	ToggleJobVisibility(ctx context.Context, userID, jobID string) (*domain.Job, error)
}
