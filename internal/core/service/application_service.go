package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

// ScoringDispatcher is the hand-off point for fire-and-forget scoring.
// Enqueue must not block the caller beyond buffering the request.
type ScoringDispatcher interface {
	Enqueue(req ports.ScoringRequest)
}

// ApplicationService implements applying to jobs with a per-(user, job)
// duplicate guard, and the read paths over a user's applications.
type ApplicationService struct {
	apps       ports.ApplicationRepository
	jobs       ports.JobRepository
	users      ports.UserRepository
	companies  ports.CompanyRepository
	dispatcher ScoringDispatcher
	log        zerolog.Logger
}

func NewApplicationService(
	apps ports.ApplicationRepository,
	jobs ports.JobRepository,
	users ports.UserRepository,
	companies ports.CompanyRepository,
	dispatcher ScoringDispatcher,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:       apps,
		jobs:       jobs,
		users:      users,
		companies:  companies,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Apply creates one application per (user, job) pair. The pre-check catches
// the common case; the repository's unique index settles concurrent racers.
// Scoring is dispatched only after the application is durable and its
// failures never reach the caller.
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID string) (*ports.ApplyResult, error) {
	if _, err := s.apps.FindByUserAndJob(ctx, userID, jobID); err == nil {
		return nil, domain.ErrAlreadyApplied
	} else if !errors.Is(err, domain.ErrApplicationNotFound) {
		return nil, fmt.Errorf("apply: %w", err)
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	app := &domain.JobApplication{
		ID:        newID(),
		UserID:    userID,
		JobID:     jobID,
		CompanyID: job.CompanyID,
		Status:    domain.ApplicationPending,
		AppliedAt: time.Now().UTC(),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	s.dispatcher.Enqueue(ports.ScoringRequest{
		ApplicationID:  app.ID,
		JobTitle:       job.Title,
		JobDescription: job.Description,
		JobLocation:    job.Location,
		JobCategory:    job.Category,
		JobLevel:       job.Level,
		JobSalary:      job.Salary,
		RequiredSkills: job.Skills,
		UserSkills:     user.Profile.Skills,
		UserBio:        user.Profile.Bio,
		UserRole:       user.Profile.Role,
		ResumeURL:      user.Profile.Resume,
	})

	s.log.Info().
		Str("application_id", app.ID).
		Str("user_id", userID).
		Str("job_id", jobID).
		Msg("application created, scoring dispatched")

	return &ports.ApplyResult{
		ApplicationID: app.ID,
		Message:       "applied successfully, scoring in progress",
	}, nil
}

func (s *ApplicationService) ListForUser(ctx context.Context, userID string) ([]ports.UserApplicationItem, error) {
	apps, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	items := make([]ports.UserApplicationItem, 0, len(apps))
	for _, app := range apps {
		item := ports.UserApplicationItem{
			ApplicationID: app.ID,
			AppliedAt:     app.AppliedAt,
			Status:        string(app.Status),
			Score:         app.Score,
			JobID:         app.JobID,
		}
		// Company or job lookups failing degrades the row, not the list.
		if company, err := s.companies.FindByID(ctx, app.CompanyID); err == nil {
			item.Company = company.Name
			item.Logo = company.Image
		}
		if job, err := s.jobs.FindByID(ctx, app.JobID); err == nil {
			item.Title = job.Title
			item.Location = job.Location
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *ApplicationService) IsApplied(ctx context.Context, userID, jobID string) (bool, error) {
	_, err := s.apps.FindByUserAndJob(ctx, userID, jobID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrApplicationNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("check applied: %w", err)
}
