package service

import (
	"context"
	"fmt"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

// JobService exposes the public read surface over job postings.
type JobService struct {
	jobs ports.JobRepository
}

func NewJobService(jobs ports.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

func (s *JobService) ListVisible(ctx context.Context) ([]*domain.Job, error) {
	jobs, err := s.jobs.ListVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (s *JobService) ListByCompany(ctx context.Context, companyID string) ([]*domain.Job, error) {
	jobs, err := s.jobs.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list company jobs: %w", err)
	}
	return jobs, nil
}
