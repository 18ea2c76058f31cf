package domain

import (
	"errors"
	"time"
)

var ErrJobNotFound = errors.New("job not found")

// Job is a posting owned by a company. Visible is toggled independently of
// content edits; hidden jobs are excluded from public listings but remain
// applicable-to by direct ID.
type Job struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Location    string    `json:"location" bson:"location"`
	Category    string    `json:"category" bson:"category"`
	Level       string    `json:"level" bson:"level"`
	Salary      string    `json:"salary" bson:"salary"`
	Skills      []string  `json:"skills" bson:"skills"`
	Visible     bool      `json:"visible" bson:"visible"`
	CompanyID   string    `json:"company_id" bson:"company_id"`
	PostedAt    time.Time `json:"posted_at" bson:"posted_at"`
}
