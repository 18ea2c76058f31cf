package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

type CompanyHandler struct {
	companies ports.CompanyService
}

func NewCompanyHandler(companies ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type postJobRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Category    string   `json:"category"`
	Level       string   `json:"level"`
	Salary      string   `json:"salary"`
	Skills      []string `json:"skills"`
}

type changeStatusRequest struct {
	ApplicationID string `json:"id" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=Pending Accepted Rejected"`
}

type changeVisibilityRequest struct {
	JobID string `json:"id" validate:"required"`
}

// Get returns the recruiter's own company.
//
// @Summary      Get the current recruiter's company
// @Tags         company
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Company
// @Failure      404  {object}  map[string]string
// @Router       /api/company/company [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	company, err := h.companies.GetForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// GetByID returns any company's public details.
//
// @Summary      Get company details
// @Tags         company
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  domain.Company
// @Failure      404  {object}  map[string]string
// @Router       /api/company/company-details/{id} [get]
func (h *CompanyHandler) GetByID(c echo.Context) error {
	company, err := h.companies.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// PostJob creates a new visible job posting for the recruiter's company.
//
// @Summary      Post a job
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postJobRequest  true  "Job posting"
// @Success      201   {object}  domain.Job
// @Failure      400   {object}  map[string]string
// @Router       /api/company/post-job [post]
func (h *CompanyHandler) PostJob(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.companies.PostJob(c.Request().Context(), ports.PostJobInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Level:       req.Level,
		Salary:      req.Salary,
		Skills:      req.Skills,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// Applicants lists every applicant across the recruiter's postings.
//
// @Summary      List all applicants
// @Tags         company
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.CompanyApplicantItem
// @Router       /api/company/applicants [get]
func (h *CompanyHandler) Applicants(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.companies.Applicants(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ApplicantsByJob lists applicants for one posting.
//
// @Summary      List applicants for a job
// @Tags         company
// @Produce      json
// @Security     BearerAuth
// @Param        jobId  path     string  true  "Job ID"
// @Success      200    {array}  ports.CompanyApplicantItem
// @Router       /api/company/job-applicants/{jobId} [get]
func (h *CompanyHandler) ApplicantsByJob(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	items, err := h.companies.ApplicantsByJob(c.Request().Context(), c.Param("jobId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// PostedJobs lists the recruiter's postings with applicant counts.
//
// @Summary      List posted jobs
// @Tags         company
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.JobWithApplicants
// @Router       /api/company/list-jobs [get]
func (h *CompanyHandler) PostedJobs(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	jobs, err := h.companies.PostedJobs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// ChangeStatus updates an application's review status. The score fields are
// out of reach of this endpoint.
//
// @Summary      Change an application's status
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeStatusRequest  true  "Application and new status"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/company/change-status [put]
func (h *CompanyHandler) ChangeStatus(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.companies.ChangeApplicationStatus(c.Request().Context(), req.ApplicationID, domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}

// ChangeVisibility toggles a posting's visibility.
//
// @Summary      Toggle a job's visibility
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeVisibilityRequest  true  "Job to toggle"
// @Success      200   {object}  domain.Job
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/company/change-visiblity [post]
func (h *CompanyHandler) ChangeVisibility(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changeVisibilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.companies.ToggleJobVisibility(c.Request().Context(), userID, req.JobID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}
