package ports

import (
	"context"
	"time"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

// UserRepository defines persistence operations for users. Create expects the
// caller to have allocated the ID (the commit path pre-allocates it so the
// dependent company can reference the user before it exists).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// SetResetCode stages a password-reset code on the user record.
	SetResetCode(ctx context.Context, userID, code string, expires time.Time) error
	// FindByEmailAndResetCode matches on (email, code) only; expiry is the
	// service layer's concern.
	FindByEmailAndResetCode(ctx context.Context, email, code string) (*domain.User, error)
	// UpdatePassword writes the new hash and clears the reset-code fields in
	// the same update, so a consumed code can never validate again.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
