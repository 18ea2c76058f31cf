package domain

import (
	"errors"
	"time"
)

// ErrInvalidCode covers every way a presented code can be unusable: unknown
// email, wrong code, superseded code, or expiry. Callers must not be able to
// tell these apart.
var ErrInvalidCode = errors.New("invalid or expired code")

// ErrPendingNotFound is the staging store's miss result. The service layer
// folds it into ErrInvalidCode before it reaches a caller.
var ErrPendingNotFound = errors.New("pending registration not found")

var ErrNotificationFailed = errors.New("notification delivery failed")

// PendingRegistration is the staged, not-yet-committed registration payload,
// keyed by email with at most one live record per address. The profile image
// is already uploaded to blob storage at issuance time; only its URL is
// staged here, keeping the record small and typed.
type PendingRegistration struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	ImageURL  string    `json:"image_url"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the staged code is past its validity window.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
