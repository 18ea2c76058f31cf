package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	createErr error
	created   []*domain.User
	passwords map[string]string // userID → new hash written
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:      make(map[string]*domain.User),
		byEmail:   make(map[string]*domain.User),
		passwords: make(map[string]string),
	}
}

func (r *stubUserRepo) seed(u *domain.User) {
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailTaken
	}
	r.created = append(r.created, user)
	r.seed(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.seed(user)
	return nil
}

func (r *stubUserRepo) SetResetCode(_ context.Context, userID, code string, expires time.Time) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetCode = code
	u.ResetCodeExpires = expires
	return nil
}

func (r *stubUserRepo) FindByEmailAndResetCode(_ context.Context, email, code string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok || u.ResetCode == "" || u.ResetCode != code {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetCode = ""
	u.ResetCodeExpires = time.Time{}
	r.passwords[userID] = passwordHash
	return nil
}

type stubCompanyRepo struct {
	byID      map[string]*domain.Company
	createErr error
	created   []*domain.Company
	deleted   []string
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{byID: make(map[string]*domain.Company)}
}

func (r *stubCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, company)
	r.byID[company.ID] = company
	return nil
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id string) (*domain.Company, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCompanyNotFound
}

func (r *stubCompanyRepo) Update(_ context.Context, company *domain.Company) error {
	if _, ok := r.byID[company.ID]; !ok {
		return domain.ErrCompanyNotFound
	}
	r.byID[company.ID] = company
	return nil
}

func (r *stubCompanyRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubStaging struct {
	records map[string]*domain.PendingRegistration
	putErr  error
}

func newStubStaging() *stubStaging {
	return &stubStaging{records: make(map[string]*domain.PendingRegistration)}
}

func (s *stubStaging) Put(_ context.Context, reg *domain.PendingRegistration) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.records[reg.Email] = reg
	return nil
}

func (s *stubStaging) Get(_ context.Context, email string) (*domain.PendingRegistration, error) {
	if reg, ok := s.records[email]; ok {
		return reg, nil
	}
	return nil, domain.ErrPendingNotFound
}

func (s *stubStaging) Delete(_ context.Context, email string) error {
	delete(s.records, email)
	return nil
}

type stubNotifier struct {
	sendErr    error
	codes      []string // verification codes delivered
	resetCodes []string
}

func (n *stubNotifier) SendVerificationCode(_ context.Context, _, code string) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.codes = append(n.codes, code)
	return nil
}

func (n *stubNotifier) SendPasswordResetCode(_ context.Context, _, code string) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.resetCodes = append(n.resetCodes, code)
	return nil
}

type stubBlobs struct {
	url string
	err error
}

func (b *stubBlobs) Upload(_ context.Context, _ []byte, _ string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return b.url, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type regFixture struct {
	users     *stubUserRepo
	companies *stubCompanyRepo
	staging   *stubStaging
	notifier  *stubNotifier
	svc       *RegistrationService
}

func newRegFixture() *regFixture {
	f := &regFixture{
		users:     newStubUserRepo(),
		companies: newStubCompanyRepo(),
		staging:   newStubStaging(),
		notifier:  &stubNotifier{},
	}
	f.svc = NewRegistrationService(
		f.users, f.companies, f.staging, f.notifier,
		&stubBlobs{url: "https://blobs.test/avatar.png"},
		"test-secret", time.Hour, zerolog.Nop())
	return f
}

func applicantInput(email string) ports.IssueCodeInput {
	return ports.IssueCodeInput{
		Name:     "Ada Lovelace",
		Email:    email,
		Phone:    "+1555000111",
		Password: "hunter22",
		Role:     domain.RoleApplicant,
		Image:    ports.FileUpload{Data: []byte{0x89, 0x50, 0x4e, 0x47}, ContentType: "image/png"},
	}
}

// ---------------------------------------------------------------------------
// IssueCode
// ---------------------------------------------------------------------------

func TestRegistrationService_IssueCode_StagesAfterDelivery(t *testing.T) {
	f := newRegFixture()

	err := f.svc.IssueCode(context.Background(), applicantInput("ada@example.com"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	reg, ok := f.staging.records["ada@example.com"]
	if !ok {
		t.Fatal("expected a staged registration")
	}
	if len(f.notifier.codes) != 1 || reg.Code != f.notifier.codes[0] {
		t.Errorf("staged code %q does not match delivered code %v", reg.Code, f.notifier.codes)
	}
	if len(reg.Code) != 6 {
		t.Errorf("expected a 6-digit code, got %q", reg.Code)
	}
	if reg.ImageURL != "https://blobs.test/avatar.png" {
		t.Errorf("expected staged image URL, got %q", reg.ImageURL)
	}
	if !reg.ExpiresAt.After(time.Now().UTC()) {
		t.Error("expected expiry in the future")
	}
}

func TestRegistrationService_IssueCode_DeliveryFailureStagesNothing(t *testing.T) {
	f := newRegFixture()
	f.notifier.sendErr = errors.New("ses unavailable")

	err := f.svc.IssueCode(context.Background(), applicantInput("ada@example.com"))
	if !errors.Is(err, domain.ErrNotificationFailed) {
		t.Fatalf("expected ErrNotificationFailed, got: %v", err)
	}
	if len(f.staging.records) != 0 {
		t.Error("expected nothing staged when delivery fails")
	}
}

func TestRegistrationService_IssueCode_EmailTaken(t *testing.T) {
	f := newRegFixture()
	f.users.seed(&domain.User{ID: "u1", Email: "ada@example.com"})

	err := f.svc.IssueCode(context.Background(), applicantInput("ada@example.com"))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got: %v", err)
	}
}

func TestRegistrationService_IssueCode_MissingDetails(t *testing.T) {
	f := newRegFixture()
	in := applicantInput("ada@example.com")
	in.Phone = ""

	if err := f.svc.IssueCode(context.Background(), in); !errors.Is(err, domain.ErrMissingDetails) {
		t.Fatalf("expected ErrMissingDetails, got: %v", err)
	}
}

func TestRegistrationService_IssueCode_RejectsUnknownRole(t *testing.T) {
	f := newRegFixture()
	in := applicantInput("ada@example.com")
	in.Role = "Admin"

	if err := f.svc.IssueCode(context.Background(), in); !errors.Is(err, domain.ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got: %v", err)
	}
}

func TestRegistrationService_IssueCode_ReissueSupersedes(t *testing.T) {
	f := newRegFixture()
	ctx := context.Background()

	if err := f.svc.IssueCode(ctx, applicantInput("ada@example.com")); err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	firstCode := f.notifier.codes[0]

	if err := f.svc.IssueCode(ctx, applicantInput("ada@example.com")); err != nil {
		t.Fatalf("second issue failed: %v", err)
	}
	secondCode := f.notifier.codes[1]

	// Force distinct codes so the supersede check is meaningful.
	if firstCode == secondCode {
		f.staging.records["ada@example.com"].Code = "000000"
		secondCode = "000000"
		firstCode = "999999"
	}

	if _, err := f.svc.Commit(ctx, "ada@example.com", firstCode); !errors.Is(err, domain.ErrInvalidCode) {
		t.Errorf("expected superseded code to be rejected, got: %v", err)
	}
	if _, err := f.svc.Commit(ctx, "ada@example.com", secondCode); err != nil {
		t.Errorf("expected current code to commit, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

func issueAndGetCode(t *testing.T, f *regFixture, in ports.IssueCodeInput) string {
	t.Helper()
	if err := f.svc.IssueCode(context.Background(), in); err != nil {
		t.Fatalf("issue code failed: %v", err)
	}
	return f.staging.records[in.Email].Code
}

func TestRegistrationService_Commit_CreatesVerifiedUser(t *testing.T) {
	f := newRegFixture()
	code := issueAndGetCode(t, f, applicantInput("ada@example.com"))

	res, err := f.svc.Commit(context.Background(), "ada@example.com", code)
	if err != nil {
		t.Fatalf("expected commit to succeed, got: %v", err)
	}
	if res.Token == "" {
		t.Error("expected a session token")
	}
	if !res.User.IsVerified {
		t.Error("expected committed user to be verified")
	}
	if res.User.Image != "https://blobs.test/avatar.png" {
		t.Errorf("expected staged image URL on user, got %q", res.User.Image)
	}
	if bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("hunter22")) != nil {
		t.Error("expected password hash to match original password")
	}
	if _, ok := f.staging.records["ada@example.com"]; ok {
		t.Error("expected staging record removed after commit")
	}
}

func TestRegistrationService_Commit_WrongCode(t *testing.T) {
	f := newRegFixture()
	code := issueAndGetCode(t, f, applicantInput("ada@example.com"))

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if _, err := f.svc.Commit(context.Background(), "ada@example.com", wrong); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got: %v", err)
	}
	if len(f.users.created) != 0 {
		t.Error("expected no user created on wrong code")
	}
}

func TestRegistrationService_Commit_UnknownEmail(t *testing.T) {
	f := newRegFixture()

	if _, err := f.svc.Commit(context.Background(), "ghost@example.com", "123456"); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode for unknown email, got: %v", err)
	}
}

func TestRegistrationService_Commit_ExpiredCode(t *testing.T) {
	f := newRegFixture()
	code := issueAndGetCode(t, f, applicantInput("ada@example.com"))
	f.staging.records["ada@example.com"].ExpiresAt = time.Now().UTC().Add(-time.Millisecond)

	if _, err := f.svc.Commit(context.Background(), "ada@example.com", code); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode for expired code, got: %v", err)
	}
	if len(f.users.created) != 0 {
		t.Error("expected no user created from expired staging record")
	}
}

func TestRegistrationService_Commit_DoubleCommit(t *testing.T) {
	f := newRegFixture()
	code := issueAndGetCode(t, f, applicantInput("ada@example.com"))
	ctx := context.Background()

	if _, err := f.svc.Commit(ctx, "ada@example.com", code); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	if _, err := f.svc.Commit(ctx, "ada@example.com", code); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected second commit to fail with ErrInvalidCode, got: %v", err)
	}
	if len(f.users.created) != 1 {
		t.Errorf("expected exactly one user, got %d", len(f.users.created))
	}
}

func TestRegistrationService_Commit_RecruiterLinksCompany(t *testing.T) {
	f := newRegFixture()
	in := applicantInput("boss@example.com")
	in.Role = domain.RoleRecruiter
	code := issueAndGetCode(t, f, in)

	res, err := f.svc.Commit(context.Background(), "boss@example.com", code)
	if err != nil {
		t.Fatalf("expected commit to succeed, got: %v", err)
	}
	if len(f.companies.created) != 1 {
		t.Fatalf("expected one company, got %d", len(f.companies.created))
	}
	company := f.companies.created[0]
	if company.CreatedBy != res.User.ID {
		t.Errorf("expected company.CreatedBy = %q, got %q", res.User.ID, company.CreatedBy)
	}
	if res.User.Profile.CompanyID != company.ID {
		t.Errorf("expected user to reference company %q, got %q", company.ID, res.User.Profile.CompanyID)
	}
}

func TestRegistrationService_Commit_UserInsertFailureRollsBackCompany(t *testing.T) {
	f := newRegFixture()
	in := applicantInput("boss@example.com")
	in.Role = domain.RoleRecruiter
	code := issueAndGetCode(t, f, in)

	f.users.createErr = errors.New("mongo unavailable")

	if _, err := f.svc.Commit(context.Background(), "boss@example.com", code); err == nil {
		t.Fatal("expected commit to fail")
	}
	if len(f.companies.deleted) != 1 {
		t.Fatalf("expected the orphaned company deleted, got deletions: %v", f.companies.deleted)
	}
	if len(f.companies.byID) != 0 {
		t.Error("expected no surviving company after rollback")
	}
	// Staging must survive a failed commit so the user can retry.
	if _, ok := f.staging.records["boss@example.com"]; !ok {
		t.Error("expected staging record preserved after failed commit")
	}
}

// ---------------------------------------------------------------------------
// Password reset
// ---------------------------------------------------------------------------

func seedVerifiedUser(f *regFixture, email string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("original"), bcrypt.MinCost)
	u := &domain.User{
		ID:           "u1",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleApplicant,
		IsVerified:   true,
	}
	f.users.seed(u)
	return u
}

func TestRegistrationService_ForgotPassword_UnknownEmailSilent(t *testing.T) {
	f := newRegFixture()

	if err := f.svc.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("expected silent success, got: %v", err)
	}
	if len(f.notifier.resetCodes) != 0 {
		t.Error("expected no email sent for unknown address")
	}
}

func TestRegistrationService_ForgotPassword_SetsCodeOnUser(t *testing.T) {
	f := newRegFixture()
	u := seedVerifiedUser(f, "ada@example.com")

	if err := f.svc.ForgotPassword(context.Background(), "ada@example.com"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(f.notifier.resetCodes) != 1 || u.ResetCode != f.notifier.resetCodes[0] {
		t.Errorf("stored code %q does not match delivered code %v", u.ResetCode, f.notifier.resetCodes)
	}
	if !u.ResetCodeExpires.After(time.Now().UTC()) {
		t.Error("expected reset code expiry in the future")
	}
}

func TestRegistrationService_ResetPassword_ConsumesCode(t *testing.T) {
	f := newRegFixture()
	u := seedVerifiedUser(f, "ada@example.com")
	ctx := context.Background()

	if err := f.svc.ForgotPassword(ctx, "ada@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	code := u.ResetCode

	if err := f.svc.VerifyResetCode(ctx, "ada@example.com", code); err != nil {
		t.Fatalf("expected code to verify, got: %v", err)
	}
	if err := f.svc.ResetPassword(ctx, "ada@example.com", code, "newpassword"); err != nil {
		t.Fatalf("expected reset to succeed, got: %v", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpassword")) != nil {
		t.Error("expected new password to be written")
	}
	// The code is cleared with the password write, so a replay must fail.
	if err := f.svc.ResetPassword(ctx, "ada@example.com", code, "another"); !errors.Is(err, domain.ErrInvalidCode) {
		t.Errorf("expected consumed code to be rejected, got: %v", err)
	}
}

func TestRegistrationService_ResetPassword_ExpiredCode(t *testing.T) {
	f := newRegFixture()
	u := seedVerifiedUser(f, "ada@example.com")
	u.ResetCode = "123456"
	u.ResetCodeExpires = time.Now().UTC().Add(-time.Minute)

	err := f.svc.ResetPassword(context.Background(), "ada@example.com", "123456", "newpassword")
	if !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode for expired code, got: %v", err)
	}
}
