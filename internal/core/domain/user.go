package domain

import (
	"errors"
	"time"
)

const (
	RoleApplicant = "User"
	RoleRecruiter = "Recruiter"
)

var ErrUserNotFound = errors.New("user not found")
var ErrMissingDetails = errors.New("some details are missing")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrRoleMismatch = errors.New("invalid role selected")
var ErrNotVerified = errors.New("email not verified")
var ErrForbidden = errors.New("access forbidden")

// Profile holds the role-dependent extension of a user. Applicants fill the
// bio/skills/resume fields; recruiters carry a back-reference to the company
// created at signup.
type Profile struct {
	Bio       string   `json:"bio,omitempty" bson:"bio,omitempty"`
	Website   string   `json:"website,omitempty" bson:"website,omitempty"`
	Role      string   `json:"role,omitempty" bson:"role,omitempty"`
	Skills    []string `json:"skills,omitempty" bson:"skills,omitempty"`
	Resume    string   `json:"resume,omitempty" bson:"resume,omitempty"`
	LinkedIn  string   `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	GitHub    string   `json:"github,omitempty" bson:"github,omitempty"`
	CompanyID string   `json:"company,omitempty" bson:"company,omitempty"`
}

// User models a verified identity. A User document exists only after a
// pending registration was committed with a valid code; IsVerified is set at
// creation time, never retroactively.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	Image        string    `json:"image" bson:"image"`
	IsVerified   bool      `json:"is_verified" bson:"is_verified"`
	Profile      Profile   `json:"profile" bson:"profile"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`

	// Password-reset code state, cleared when the code is consumed.
	ResetCode        string    `json:"-" bson:"reset_code,omitempty"`
	ResetCodeExpires time.Time `json:"-" bson:"reset_code_expires,omitempty"`
}
