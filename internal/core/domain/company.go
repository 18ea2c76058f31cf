package domain

import (
	"errors"
	"time"
)

var ErrCompanyNotFound = errors.New("company not found")

// CompanySizes lists the accepted values for Company.Size.
var CompanySizes = []string{"1-10", "11-50", "51-200", "201-500", "500+"}

// Company is created as a side effect of committing a recruiter identity and
// is owned 1:1 by its creating user. CreatedBy is immutable after creation.
type Company struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	ContactEmail string    `json:"contact_email" bson:"contact_email"`
	Image        string    `json:"image" bson:"image"`
	Industry     string    `json:"industry,omitempty" bson:"industry,omitempty"`
	Size         string    `json:"size" bson:"size"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Website      string    `json:"website,omitempty" bson:"website,omitempty"`
	Location     string    `json:"location,omitempty" bson:"location,omitempty"`
	CreatedBy    string    `json:"created_by" bson:"created_by"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
