package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

// CompanyService implements the recruiter-side operations: company profile
// reads, job posting, applicant review, and visibility toggles. A recruiter
// may only operate on the company their profile points to.
type CompanyService struct {
	companies ports.CompanyRepository
	jobs      ports.JobRepository
	apps      ports.ApplicationRepository
	users     ports.UserRepository
	log       zerolog.Logger
}

func NewCompanyService(
	companies ports.CompanyRepository,
	jobs ports.JobRepository,
	apps ports.ApplicationRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *CompanyService {
	return &CompanyService{companies: companies, jobs: jobs, apps: apps, users: users, log: log}
}

// companyOf resolves the company owned by the given recruiter.
func (s *CompanyService) companyOf(ctx context.Context, userID string) (*domain.Company, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile.CompanyID == "" {
		return nil, domain.ErrCompanyNotFound
	}
	return s.companies.FindByID(ctx, user.Profile.CompanyID)
}

func (s *CompanyService) GetForUser(ctx context.Context, userID string) (*domain.Company, error) {
	company, err := s.companyOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) PostJob(ctx context.Context, in ports.PostJobInput) (*domain.Job, error) {
	company, err := s.companyOf(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("post job: %w", err)
	}

	job := &domain.Job{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Category:    in.Category,
		Level:       in.Level,
		Salary:      in.Salary,
		Skills:      in.Skills,
		Visible:     true,
		CompanyID:   company.ID,
		PostedAt:    time.Now().UTC(),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("post job: %w", err)
	}

	s.log.Info().Str("job_id", job.ID).Str("company_id", company.ID).Str("title", job.Title).Msg("job posted")
	return job, nil
}

func (s *CompanyService) Applicants(ctx context.Context, userID string) ([]ports.CompanyApplicantItem, error) {
	company, err := s.companyOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}

	apps, err := s.apps.ListByCompany(ctx, company.ID)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	return s.applicantItems(ctx, apps), nil
}

func (s *CompanyService) ApplicantsByJob(ctx context.Context, jobID string) ([]ports.CompanyApplicantItem, error) {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return nil, fmt.Errorf("list job applicants: %w", err)
	}

	apps, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job applicants: %w", err)
	}
	return s.applicantItems(ctx, apps), nil
}

func (s *CompanyService) applicantItems(ctx context.Context, apps []*domain.JobApplication) []ports.CompanyApplicantItem {
	items := make([]ports.CompanyApplicantItem, 0, len(apps))
	for _, app := range apps {
		item := ports.CompanyApplicantItem{
			ApplicationID: app.ID,
			UserID:        app.UserID,
			JobID:         app.JobID,
			AppliedAt:     app.AppliedAt,
			Status:        string(app.Status),
			Score:         app.Score,
		}
		if user, err := s.users.FindByID(ctx, app.UserID); err == nil {
			item.Name = user.Name
			item.Email = user.Email
			item.Image = user.Image
			item.Resume = user.Profile.Resume
		}
		if job, err := s.jobs.FindByID(ctx, app.JobID); err == nil {
			item.JobTitle = job.Title
			item.Location = job.Location
		}
		items = append(items, item)
	}
	return items
}

func (s *CompanyService) PostedJobs(ctx context.Context, userID string) ([]ports.JobWithApplicants, error) {
	company, err := s.companyOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list posted jobs: %w", err)
	}

	jobs, err := s.jobs.ListByCompany(ctx, company.ID)
	if err != nil {
		return nil, fmt.Errorf("list posted jobs: %w", err)
	}

	out := make([]ports.JobWithApplicants, 0, len(jobs))
	for _, job := range jobs {
		apps, err := s.apps.ListByJob(ctx, job.ID)
		if err != nil {
			return nil, fmt.Errorf("list posted jobs: %w", err)
		}
		out = append(out, ports.JobWithApplicants{Job: *job, Applicants: len(apps)})
	}
	return out, nil
}

// ChangeApplicationStatus is the synchronous review action. It touches only
// the status field and never the score, which belongs to the scoring path.
func (s *CompanyService) ChangeApplicationStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus) error {
	if _, err := s.apps.FindByID(ctx, applicationID); err != nil {
		return fmt.Errorf("change status: %w", err)
	}
	if err := s.apps.UpdateStatus(ctx, applicationID, status); err != nil {
		return fmt.Errorf("change status: %w", err)
	}
	return nil
}

func (s *CompanyService) ToggleJobVisibility(ctx context.Context, userID, jobID string) (*domain.Job, error) {
	company, err := s.companyOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle visibility: %w", err)
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("toggle visibility: %w", err)
	}
	if job.CompanyID != company.ID {
		return nil, domain.ErrForbidden
	}

	job.Visible = !job.Visible
	if err := s.jobs.SetVisibility(ctx, job.ID, job.Visible); err != nil {
		return nil, fmt.Errorf("toggle visibility: %w", err)
	}
	return job, nil
}
