package ports

import (
	"context"
	"time"
)

// ScoringRequest is the invocation payload handed to the external scoring
// function: enough job and applicant context to compute a compatibility
// score, plus the application identity to correlate the callback.
type ScoringRequest struct {
	ApplicationID  string
	JobTitle       string
	JobDescription string
	JobLocation    string
	JobCategory    string
	JobLevel       string
	JobSalary      string
	RequiredSkills []string
	UserSkills     []string
	UserBio        string
	UserRole       string
	ResumeURL      string
}

// ApplyResult acknowledges a created application.
type ApplyResult struct {
	ApplicationID string
	Message       string
}

// UserApplicationItem is the flattened row returned when a user lists their
// applications.
type UserApplicationItem struct {
	ApplicationID string    `json:"application_id"`
	Company       string    `json:"company"`
	Logo          string    `json:"logo"`
	Title         string    `json:"title"`
	Location      string    `json:"location"`
	AppliedAt     time.Time `json:"applied_at"`
	Status        string    `json:"status"`
	Score         *float64  `json:"score"`
	JobID         string    `json:"job_id"`
}

type ApplicationService interface {
	// Apply creates the application and, only after it is durable, hands the
	// scoring request to the dispatcher. Scoring problems never surface here.
	Apply(ctx context.Context, userID, jobID string) (*ApplyResult, error)
	ListForUser(ctx context.Context, userID string) ([]UserApplicationItem, error)
	IsApplied(ctx context.Context, userID, jobID string) (bool, error)
}
