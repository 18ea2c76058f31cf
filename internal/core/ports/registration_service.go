package ports

import (
	"context"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

// FileUpload carries an in-memory uploaded asset on its way to blob storage.
type FileUpload struct {
	Data        []byte
	ContentType string
}

// IssueCodeInput is the full registrant payload staged until the code comes
// back.
type IssueCodeInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
	Image    FileUpload
}

// AuthResult is returned by every operation that establishes a session.
type AuthResult struct {
	Token string
	User  *domain.User
}

// RegistrationService owns the deferred identity commit state machine:
// issue a code into staging, commit on presentation, and the parallel
// password-reset flow that targets an existing user instead of a staging
// record.
type RegistrationService interface {
	// IssueCode stages a registration and delivers a verification code.
	// Nothing is staged when delivery fails.
	IssueCode(ctx context.Context, in IssueCodeInput) error
	// Commit turns a staged registration into a permanent user (and company,
	// for recruiters) when (email, code) matches a live staging record.
	Commit(ctx context.Context, email, code string) (*AuthResult, error)

	// ForgotPassword issues a reset code to an existing account. Unknown
	// emails succeed silently so the endpoint does not reveal registration.
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}
