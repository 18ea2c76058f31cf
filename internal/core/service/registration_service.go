package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

const (
	codeTTL = 10 * time.Minute
	codeMin = 100000
	codeMax = 999999
)

// StagingStore abstracts the transient pending-registration store (Redis).
// Put is create-or-replace: issuing a new code for an email supersedes any
// prior record atomically.
type StagingStore interface {
	Put(ctx context.Context, reg *domain.PendingRegistration) error
	Get(ctx context.Context, email string) (*domain.PendingRegistration, error)
	Delete(ctx context.Context, email string) error
}

// Notifier abstracts the outbound notification channel (SES). Sends are
// synchronous: a returned error means the code was not delivered.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordResetCode(ctx context.Context, email, code string) error
}

// BlobStore abstracts durable binary storage (S3) and returns a stable URL
// for the stored object.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// RegistrationService implements the deferred identity commit: registration
// data is staged against a one-time code and becomes a permanent user only
// when the code is presented back inside its validity window. The password
// reset flow reuses the same machine with the user record as the subject.
type RegistrationService struct {
	users     ports.UserRepository
	companies ports.CompanyRepository
	staging   StagingStore
	notifier  Notifier
	blobs     BlobStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewRegistrationService(
	users ports.UserRepository,
	companies ports.CompanyRepository,
	staging StagingStore,
	notifier Notifier,
	blobs BlobStore,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *RegistrationService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &RegistrationService{
		users:     users,
		companies: companies,
		staging:   staging,
		notifier:  notifier,
		blobs:     blobs,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// IssueCode validates the registrant, uploads the profile image, delivers a
// verification code, and stages the registration. Nothing is staged when
// delivery fails, so there is never a dangling unusable code.
func (s *RegistrationService) IssueCode(ctx context.Context, in ports.IssueCodeInput) error {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" || len(in.Image.Data) == 0 {
		return domain.ErrMissingDetails
	}
	if in.Role != domain.RoleApplicant && in.Role != domain.RoleRecruiter {
		return domain.ErrRoleMismatch
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("issue code: %w", err)
	}

	// The image goes to blob storage now; staging holds only its URL, so the
	// staging entry stays small and typed.
	imageURL, err := s.blobs.Upload(ctx, in.Image.Data, in.Image.ContentType)
	if err != nil {
		return fmt.Errorf("issue code: upload image: %w", err)
	}

	code := generateCode()
	if err := s.notifier.SendVerificationCode(ctx, in.Email, code); err != nil {
		s.log.Error().Err(err).Str("email", in.Email).Msg("verification email delivery failed")
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}

	reg := &domain.PendingRegistration{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Password:  in.Password,
		Role:      in.Role,
		ImageURL:  imageURL,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(codeTTL),
	}
	if err := s.staging.Put(ctx, reg); err != nil {
		return fmt.Errorf("issue code: stage registration: %w", err)
	}

	s.log.Info().Str("email", in.Email).Str("role", in.Role).Msg("verification code issued")
	return nil
}

// Commit consumes (email, code) and creates the permanent identity. Unknown
// email, wrong code, and expired code are indistinguishable to the caller.
func (s *RegistrationService) Commit(ctx context.Context, email, code string) (*ports.AuthResult, error) {
	if email == "" || code == "" {
		return nil, domain.ErrInvalidCode
	}

	reg, err := s.staging.Get(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrPendingNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("commit registration: %w", err)
	}
	if reg.Code != code {
		return nil, domain.ErrInvalidCode
	}
	if reg.Expired(time.Now().UTC()) {
		s.log.Debug().Str("email", email).Msg("commit attempted with expired code")
		return nil, domain.ErrInvalidCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("commit registration: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           newID(),
		Name:         reg.Name,
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: string(hash),
		Role:         reg.Role,
		Image:        reg.ImageURL,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Recruiters get a company. The store has no cross-document transaction,
	// so the company is created first (the user ID is pre-allocated) and
	// rolled back if the user insert fails.
	var company *domain.Company
	if reg.Role == domain.RoleRecruiter {
		company = &domain.Company{
			ID:           newID(),
			Name:         reg.Name,
			ContactEmail: reg.Email,
			Image:        reg.ImageURL,
			Size:         domain.CompanySizes[0],
			CreatedBy:    user.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.companies.Create(ctx, company); err != nil {
			return nil, fmt.Errorf("commit registration: create company: %w", err)
		}
		user.Profile.CompanyID = company.ID
	}

	if err := s.users.Create(ctx, user); err != nil {
		if company != nil {
			if cleanupErr := s.companies.Delete(ctx, company.ID); cleanupErr != nil {
				s.log.Error().Err(cleanupErr).Str("company_id", company.ID).Msg("company rollback failed")
			}
		}
		return nil, fmt.Errorf("commit registration: %w", err)
	}

	// Only now that the user is durable may the staging record go away.
	// A failed delete is harmless: the next commit attempt hits ErrEmailTaken
	// and the TTL reclaims the key.
	if err := s.staging.Delete(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to delete staging record")
	}

	token, err := signToken(s.jwtSecret, s.tokenTTL, user)
	if err != nil {
		return nil, fmt.Errorf("commit registration: %w", err)
	}

	s.log.Info().Str("email", email).Str("user_id", user.ID).Str("role", user.Role).Msg("registration committed")
	return &ports.AuthResult{Token: token, User: user}, nil
}

// ForgotPassword issues a reset code onto the user record. Unknown emails
// report success so the endpoint does not leak which addresses exist.
func (s *RegistrationService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("email", email).Msg("reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("forgot password: %w", err)
	}

	code := generateCode()
	if err := s.notifier.SendPasswordResetCode(ctx, email, code); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("reset email delivery failed")
		return fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
	}

	expires := time.Now().UTC().Add(codeTTL)
	if err := s.users.SetResetCode(ctx, user.ID, code, expires); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	s.log.Info().Str("email", email).Msg("password reset code issued")
	return nil
}

func (s *RegistrationService) VerifyResetCode(ctx context.Context, email, code string) error {
	_, err := s.findLiveResetSubject(ctx, email, code)
	return err
}

// ResetPassword consumes the code: the password write clears the reset-code
// fields so the same code can never be replayed.
func (s *RegistrationService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return domain.ErrMissingDetails
	}

	user, err := s.findLiveResetSubject(ctx, email, code)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *RegistrationService) findLiveResetSubject(ctx context.Context, email, code string) (*domain.User, error) {
	if email == "" || code == "" {
		return nil, domain.ErrInvalidCode
	}

	user, err := s.users.FindByEmailAndResetCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("verify reset code: %w", err)
	}
	if time.Now().UTC().After(user.ResetCodeExpires) {
		return nil, domain.ErrInvalidCode
	}
	return user, nil
}

// generateCode draws a uniform 6-digit verification code.
func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		// fallback: derive from the clock
		return strconv.FormatInt(codeMin+time.Now().UnixNano()%(codeMax-codeMin+1), 10)
	}
	return strconv.FormatInt(codeMin+n.Int64(), 10)
}

// newID allocates a 24-hex-char document ID. Pre-allocating in the service
// lets the company reference its owning user before either document exists.
func newID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%024x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
