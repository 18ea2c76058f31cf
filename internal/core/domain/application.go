package domain

import (
	"errors"
	"time"
)

// ApplicationStatus is the review state set by the hiring company. It is
// independent of the score fields, which are written by the scoring callback.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

var ErrApplicationNotFound = errors.New("application not found")
var ErrAlreadyApplied = errors.New("already applied")

// ScoreComponent is one axis of the scoring breakdown. Matched/Total are only
// populated for the skills axis.
type ScoreComponent struct {
	Score   float64 `json:"score" bson:"score"`
	Matched int     `json:"matched,omitempty" bson:"matched,omitempty"`
	Total   int     `json:"total,omitempty" bson:"total,omitempty"`
}

// ScoreBreakdown groups the per-axis components of a computed score.
type ScoreBreakdown struct {
	SkillsMatch      ScoreComponent `json:"skillsMatch" bson:"skills_match"`
	DescriptionMatch ScoreComponent `json:"descriptionMatch" bson:"description_match"`
	RoleMatch        ScoreComponent `json:"roleMatch" bson:"role_match"`
	ExperienceMatch  ScoreComponent `json:"experienceMatch" bson:"experience_match"`
	ResumeQuality    ScoreComponent `json:"resumeQuality" bson:"resume_quality"`
}

// ScoringDetails is the structured result delivered by the external scoring
// function alongside the headline score.
type ScoringDetails struct {
	Breakdown        ScoreBreakdown `json:"breakdown" bson:"breakdown"`
	MatchedSkills    []string       `json:"matchedSkills,omitempty" bson:"matched_skills,omitempty"`
	Recommendation   string         `json:"recommendation,omitempty" bson:"recommendation,omitempty"`
	TextractUsed     bool           `json:"textractUsed" bson:"textract_used"`
	ResumeTextLength int            `json:"resumeTextLength" bson:"resume_text_length"`
}

// JobApplication links a user to a job. The (UserID, JobID) pair is unique;
// Score and Details stay nil until a scoring callback arrives, which may be
// never.
type JobApplication struct {
	ID        string            `json:"id" bson:"_id"`
	UserID    string            `json:"user_id" bson:"user_id"`
	JobID     string            `json:"job_id" bson:"job_id"`
	CompanyID string            `json:"company_id" bson:"company_id"`
	Status    ApplicationStatus `json:"status" bson:"status"`
	Score     *float64          `json:"score" bson:"score,omitempty"`
	Details   *ScoringDetails   `json:"scoring_details,omitempty" bson:"scoring_details,omitempty"`
	AppliedAt time.Time         `json:"applied_at" bson:"applied_at"`
}
