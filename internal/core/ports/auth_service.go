package ports

import "context"

type AuthService interface {
	// Login authenticates a verified user. The requested role must match the
	// account's role.
	Login(ctx context.Context, email, password, role string) (*AuthResult, error)
}
