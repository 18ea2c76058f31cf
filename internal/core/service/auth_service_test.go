package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
)

func seedLoginUser(repo *stubUserRepo, verified bool) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	u := &domain.User{
		ID:           "u1",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleApplicant,
		IsVerified:   verified,
	}
	repo.seed(u)
	return u
}

func TestAuthService_Login_HappyPath(t *testing.T) {
	repo := newStubUserRepo()
	seedLoginUser(repo, true)
	svc := NewAuthService(repo, "test-secret", time.Hour)

	res, err := svc.Login(context.Background(), "ada@example.com", "hunter22", "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a token")
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["id"] != "u1" || claims["role"] != domain.RoleApplicant {
		t.Errorf("unexpected claims: %v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedLoginUser(repo, true)
	svc := NewAuthService(repo, "test-secret", time.Hour)

	_, err := svc.Login(context.Background(), "ada@example.com", "wrong", "")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "test-secret", time.Hour)

	_, err := svc.Login(context.Background(), "ghost@example.com", "hunter22", "")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got: %v", err)
	}
}

func TestAuthService_Login_UnverifiedRejected(t *testing.T) {
	repo := newStubUserRepo()
	seedLoginUser(repo, false)
	svc := NewAuthService(repo, "test-secret", time.Hour)

	_, err := svc.Login(context.Background(), "ada@example.com", "hunter22", "")
	if !errors.Is(err, domain.ErrNotVerified) {
		t.Fatalf("expected ErrNotVerified, got: %v", err)
	}
}

func TestAuthService_Login_RoleMismatch(t *testing.T) {
	repo := newStubUserRepo()
	seedLoginUser(repo, true)
	svc := NewAuthService(repo, "test-secret", time.Hour)

	_, err := svc.Login(context.Background(), "ada@example.com", "hunter22", domain.RoleRecruiter)
	if !errors.Is(err, domain.ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got: %v", err)
	}
}
