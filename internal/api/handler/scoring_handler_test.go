package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

type stubScoringService struct {
	updated bool
	err     error
	calls   []ports.ScoringResultInput
}

func (s *stubScoringService) ApplyResult(_ context.Context, in ports.ScoringResultInput) (bool, error) {
	s.calls = append(s.calls, in)
	return s.updated, s.err
}

func callbackContext(t *testing.T, token, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPatch, "/api/users/update-application-score", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("X-Scoring-Token", token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestScoringHandler_ValidTokenAppliesResult(t *testing.T) {
	svc := &stubScoringService{updated: true}
	h := NewScoringHandler(svc, "shared-token")

	c, rec := callbackContext(t, "shared-token", `{"applicationId":"app1","score":91.5}`)
	if err := h.UpdateScore(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.calls) != 1 {
		t.Fatalf("expected one service call, got %d", len(svc.calls))
	}
	if svc.calls[0].ApplicationID != "app1" || svc.calls[0].Score != 91.5 {
		t.Errorf("unexpected input: %+v", svc.calls[0])
	}
}

func TestScoringHandler_WrongTokenRejected(t *testing.T) {
	svc := &stubScoringService{}
	h := NewScoringHandler(svc, "shared-token")

	c, rec := callbackContext(t, "forged", `{"applicationId":"app1","score":91.5}`)
	if err := h.UpdateScore(c); err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(svc.calls) != 0 {
		t.Error("expected no service call with a bad token")
	}
}

func TestScoringHandler_EmptyConfiguredTokenRejectsAll(t *testing.T) {
	svc := &stubScoringService{}
	h := NewScoringHandler(svc, "")

	c, rec := callbackContext(t, "", `{"applicationId":"app1","score":91.5}`)
	if err := h.UpdateScore(c); err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no token is configured, got %d", rec.Code)
	}
}

func TestScoringHandler_MissingApplicationID(t *testing.T) {
	svc := &stubScoringService{}
	h := NewScoringHandler(svc, "shared-token")

	c, rec := callbackContext(t, "shared-token", `{"score":91.5}`)
	if err := h.UpdateScore(c); err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(svc.calls) != 0 {
		t.Error("expected no service call for an invalid payload")
	}
}

func TestScoringHandler_ReplayAcknowledged(t *testing.T) {
	svc := &stubScoringService{updated: false} // service reports a no-write
	h := NewScoringHandler(svc, "shared-token")

	c, rec := callbackContext(t, "shared-token", `{"applicationId":"app1","score":91.5}`)
	if err := h.UpdateScore(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// Replays still get 200 so the remote function stops retrying.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a replayed result, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"updated":false`) {
		t.Errorf("expected updated=false in response, got %s", rec.Body.String())
	}
}
