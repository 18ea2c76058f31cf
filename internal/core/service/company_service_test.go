package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

type companyFixture struct {
	companies *stubCompanyRepo
	jobs      *stubJobRepo
	apps      *stubAppRepo
	users     *stubUserRepo
	svc       *CompanyService
}

func newCompanyFixture() *companyFixture {
	f := &companyFixture{
		companies: newStubCompanyRepo(),
		jobs:      newStubJobRepo(),
		apps:      newStubAppRepo(),
		users:     newStubUserRepo(),
	}
	f.svc = NewCompanyService(f.companies, f.jobs, f.apps, f.users, zerolog.Nop())
	return f
}

func (f *companyFixture) seedRecruiter() {
	f.companies.byID["co1"] = &domain.Company{ID: "co1", Name: "Acme", CreatedBy: "rec1"}
	f.users.seed(&domain.User{
		ID:      "rec1",
		Email:   "boss@example.com",
		Role:    domain.RoleRecruiter,
		Profile: domain.Profile{CompanyID: "co1"},
	})
}

func TestCompanyService_PostJob_VisibleByDefault(t *testing.T) {
	f := newCompanyFixture()
	f.seedRecruiter()

	job, err := f.svc.PostJob(context.Background(), ports.PostJobInput{
		UserID:      "rec1",
		Title:       "Backend Engineer",
		Description: "Build APIs",
		Location:    "Remote",
		Skills:      []string{"go"},
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !job.Visible {
		t.Error("expected new postings to be visible")
	}
	if job.CompanyID != "co1" {
		t.Errorf("expected job bound to co1, got %q", job.CompanyID)
	}
}

func TestCompanyService_PostJob_NoCompany(t *testing.T) {
	f := newCompanyFixture()
	f.users.seed(&domain.User{ID: "rec1", Email: "boss@example.com", Role: domain.RoleRecruiter})

	_, err := f.svc.PostJob(context.Background(), ports.PostJobInput{UserID: "rec1", Title: "x", Description: "y", Location: "z"})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got: %v", err)
	}
}

func TestCompanyService_ChangeStatus_NeverTouchesScore(t *testing.T) {
	f := newCompanyFixture()
	score := 77.0
	f.apps.byID["app1"] = &domain.JobApplication{
		ID:        "app1",
		UserID:    "user1",
		JobID:     "job1",
		CompanyID: "co1",
		Status:    domain.ApplicationPending,
		Score:     &score,
		AppliedAt: time.Now().UTC(),
	}

	if err := f.svc.ChangeApplicationStatus(context.Background(), "app1", domain.ApplicationAccepted); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	app := f.apps.byID["app1"]
	if app.Status != domain.ApplicationAccepted {
		t.Errorf("expected Accepted, got %q", app.Status)
	}
	if app.Score == nil || *app.Score != 77.0 {
		t.Errorf("expected score untouched, got %v", app.Score)
	}
}

func TestCompanyService_ChangeStatus_UnknownApplication(t *testing.T) {
	f := newCompanyFixture()

	err := f.svc.ChangeApplicationStatus(context.Background(), "ghost", domain.ApplicationAccepted)
	if !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got: %v", err)
	}
}

func TestCompanyService_ToggleVisibility_Flips(t *testing.T) {
	f := newCompanyFixture()
	f.seedRecruiter()
	f.jobs.byID["job1"] = &domain.Job{ID: "job1", CompanyID: "co1", Visible: true}

	job, err := f.svc.ToggleJobVisibility(context.Background(), "rec1", "job1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if job.Visible {
		t.Error("expected visibility flipped to false")
	}

	job, err = f.svc.ToggleJobVisibility(context.Background(), "rec1", "job1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !job.Visible {
		t.Error("expected visibility flipped back to true")
	}
}

func TestCompanyService_ToggleVisibility_ForeignJobForbidden(t *testing.T) {
	f := newCompanyFixture()
	f.seedRecruiter()
	f.jobs.byID["job1"] = &domain.Job{ID: "job1", CompanyID: "other-co", Visible: true}

	_, err := f.svc.ToggleJobVisibility(context.Background(), "rec1", "job1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}
	if !f.jobs.byID["job1"].Visible {
		t.Error("expected foreign job untouched")
	}
}

func TestCompanyService_PostedJobs_CountsApplicants(t *testing.T) {
	f := newCompanyFixture()
	f.seedRecruiter()
	f.jobs.byID["job1"] = &domain.Job{ID: "job1", CompanyID: "co1", Visible: true}
	f.apps.byID["app1"] = &domain.JobApplication{ID: "app1", UserID: "u1", JobID: "job1", CompanyID: "co1"}
	f.apps.byID["app2"] = &domain.JobApplication{ID: "app2", UserID: "u2", JobID: "job1", CompanyID: "co1"}

	jobs, err := f.svc.PostedJobs(context.Background(), "rec1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected one posting, got %d", len(jobs))
	}
	if jobs[0].Applicants != 2 {
		t.Errorf("expected 2 applicants, got %d", jobs[0].Applicants)
	}
}
