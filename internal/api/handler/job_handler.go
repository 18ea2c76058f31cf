package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

type JobHandler struct {
	jobs ports.JobService
}

func NewJobHandler(jobs ports.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// List returns all visible job postings.
//
// @Summary      List visible jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {array}  domain.Job
// @Router       /api/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.jobs.ListVisible(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Get returns a single job by ID.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  map[string]string
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.jobs.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// ListByCompany returns all postings by a company, visible or not.
//
// @Summary      List a company's jobs
// @Tags         jobs
// @Produce      json
// @Param        id   path     string  true  "Company ID"
// @Success      200  {array}  domain.Job
// @Router       /api/jobs/jobsById/{id} [get]
func (h *JobHandler) ListByCompany(c echo.Context) error {
	jobs, err := h.jobs.ListByCompany(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}
