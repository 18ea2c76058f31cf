package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spotjobs/spotjobs-api/internal/api/metrics"
	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

// ScoringHandler receives the asynchronous callback from the external scoring
// function. The endpoint is unauthenticated in the JWT sense; it is guarded by
// a shared token issued to the function at invocation time.
type ScoringHandler struct {
	scoring ports.ScoringService
	token   string
}

func NewScoringHandler(scoring ports.ScoringService, token string) *ScoringHandler {
	return &ScoringHandler{scoring: scoring, token: token}
}

type scoringCallbackRequest struct {
	ApplicationID string                 `json:"applicationId" validate:"required"`
	Score         float64                `json:"score"`
	Details       *domain.ScoringDetails `json:"details"`
	Error         bool                   `json:"error"`
	ErrorMessage  string                 `json:"errorMessage"`
}

type scoringCallbackResponse struct {
	Message string `json:"message"`
	Updated bool   `json:"updated"`
}

// UpdateScore applies one delivered scoring result. Redelivered results are
// acknowledged without a second write.
//
// @Summary      Scoring result callback
// @Tags         scoring
// @Accept       json
// @Produce      json
// @Param        X-Scoring-Token  header    string                  true  "Shared callback token"
// @Param        body             body      scoringCallbackRequest  true  "Scoring result"
// @Success      200   {object}  scoringCallbackResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/update-application-score [patch]
func (h *ScoringHandler) UpdateScore(c echo.Context) error {
	got := c.Request().Header.Get("X-Scoring-Token")
	if h.token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid callback token")
	}

	var req scoringCallbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.scoring.ApplyResult(c.Request().Context(), ports.ScoringResultInput{
		ApplicationID: req.ApplicationID,
		Score:         req.Score,
		Details:       req.Details,
		Error:         req.Error,
		ErrorMessage:  req.ErrorMessage,
	})
	if err != nil {
		metrics.ScoringCallbacksTotal.WithLabelValues("error").Inc()
		return err
	}

	switch {
	case updated:
		metrics.ScoringCallbacksTotal.WithLabelValues("applied").Inc()
	case req.Error:
		metrics.ScoringCallbacksTotal.WithLabelValues("remote_error").Inc()
	default:
		metrics.ScoringCallbacksTotal.WithLabelValues("duplicate").Inc()
	}

	return c.JSON(http.StatusOK, scoringCallbackResponse{
		Message: "result received",
		Updated: updated,
	})
}
