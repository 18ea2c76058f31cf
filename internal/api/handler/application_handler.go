package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spotjobs/spotjobs-api/internal/api/metrics"
	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

type ApplicationHandler struct {
	applications ports.ApplicationService
}

func NewApplicationHandler(applications ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

type applyRequest struct {
	JobID string `json:"jobId" validate:"required"`
}

type applyResponse struct {
	Message       string `json:"message"`
	ApplicationID string `json:"application_id"`
}

type checkAppliedResponse struct {
	Applied bool `json:"applied"`
}

// Apply submits an application for a job. The response acknowledges the
// durable application only; scoring runs in the background.
//
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyRequest  true  "Job to apply to"
// @Success      201   {object}  applyResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users/apply [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.applications.Apply(c.Request().Context(), userID, req.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) {
			metrics.ApplicationsDuplicateTotal.Inc()
		}
		return err
	}

	metrics.ApplicationsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, applyResponse{
		Message:       res.Message,
		ApplicationID: res.ApplicationID,
	})
}

// List returns the caller's applications, newest first as stored.
//
// @Summary      List the current user's applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.UserApplicationItem
// @Router       /api/users/applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.applications.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// CheckApplied reports whether the caller already applied to a job.
//
// @Summary      Check whether the current user applied to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyRequest  true  "Job to check"
// @Success      200   {object}  checkAppliedResponse
// @Router       /api/users/check-applied [post]
func (h *ApplicationHandler) CheckApplied(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	applied, err := h.applications.IsApplied(c.Request().Context(), userID, req.JobID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkAppliedResponse{Applied: applied})
}
