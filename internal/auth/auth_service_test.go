package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/VonnAirone/leave-management-system/internal/auditlog"
	autherrors "github.com/VonnAirone/leave-management-system/internal/auth/errors"
	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka"
	"github.com/VonnAirone/leave-management-system/internal/profile"
	"github.com/VonnAirone/leave-management-system/internal/shared/token"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	findByEmailFn func(ctx context.Context, email string) (*User, error)
	findByIDFn    func(ctx context.Context, id string) (*User, error)
	createFn      func(ctx context.Context, u *User) error

	mu      sync.Mutex
	created []*User
	updated []*User
}

func (f *fakeUserRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeUserRepo) Create(ctx context.Context, u *User) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, u); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *User) error {
	f.updated = append(f.updated, u)
	return nil
}

type fakeProfileRepo struct {
	findByUserIDFn func(ctx context.Context, userID string) (*profile.Profile, error)

	mu      sync.Mutex
	created []*profile.Profile
}

func (f *fakeProfileRepo) WithTx(tx *gorm.DB) profile.Repository { return f }

func (f *fakeProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	return nil
}

func (f *fakeProfileRepo) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	if f.findByUserIDFn != nil {
		return f.findByUserIDFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *profile.Profile) error { return nil }

func (f *fakeProfileRepo) List(ctx context.Context, office, search string, activeOnly bool, limit, offset int) ([]profile.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) Count(ctx context.Context, office, search string, activeOnly bool) (int64, error) {
	return 0, nil
}

type fakeAuditRepo struct {
	mu   sync.Mutex
	rows []*auditlog.AuditLog
}

func (f *fakeAuditRepo) WithTx(tx *gorm.DB) auditlog.Repository { return f }

func (f *fakeAuditRepo) Create(ctx context.Context, entry *auditlog.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, action string, limit, offset int) ([]auditlog.AuditLog, error) {
	return nil, nil
}

func (f *fakeAuditRepo) Count(ctx context.Context, action string) (int64, error) { return 0, nil }

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gdb, mock
}

func activeUser(t *testing.T, password string) *User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &User{
		ID:           uuid.New(),
		Email:        "juan.delacruz@lgu.gov.ph",
		PasswordHash: string(hash),
		Role:         RoleEmployee,
		IsActive:     true,
	}
}

func TestLoginSuccessBindsEmployeeProfile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := activeUser(t, "correct-horse")
	profileID := uuid.New()
	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}
	profileRepo := &fakeProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID string) (*profile.Profile, error) {
			return &profile.Profile{ID: profileID}, nil
		},
	}

	gdb, _ := newTestDB(t)
	svc := NewService(gdb, userRepo, profileRepo, &fakeAuditRepo{}, &fakeOutboxRepo{}, nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, profileID.String(), resp.User.EmployeeID)

	claims, err := token.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, profileID.String(), claims.EmployeeID)
	assert.Equal(t, RoleEmployee, claims.Role)

	// last login is recorded best-effort
	require.Len(t, userRepo.updated, 1)
	assert.NotNil(t, userRepo.updated[0].LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := activeUser(t, "correct-horse")
	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}

	gdb, _ := newTestDB(t)
	svc := NewService(gdb, userRepo, &fakeProfileRepo{}, &fakeAuditRepo{}, &fakeOutboxRepo{}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong",
	})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewService(gdb, &fakeUserRepo{}, &fakeProfileRepo{}, &fakeAuditRepo{}, &fakeOutboxRepo{}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@lgu.gov.ph",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	user := activeUser(t, "correct-horse")
	user.IsActive = false
	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}

	gdb, _ := newTestDB(t)
	svc := NewService(gdb, userRepo, &fakeProfileRepo{}, &fakeAuditRepo{}, &fakeOutboxRepo{}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	pair, err := token.GeneratePair(uuid.New().String(), uuid.New().String(), RoleEmployee)
	require.NoError(t, err)

	gdb, _ := newTestDB(t)
	svc := NewService(gdb, &fakeUserRepo{}, &fakeProfileRepo{}, &fakeAuditRepo{}, &fakeOutboxRepo{}, nil)

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.AccessToken})
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
}

func TestRefreshPicksUpRoleChange(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := activeUser(t, "correct-horse")
	pair, err := token.GeneratePair(user.ID.String(), uuid.New().String(), RoleHRAdmin)
	require.NoError(t, err)

	// demoted since the refresh token was issued
	user.Role = RoleEmployee
	userRepo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*User, error) {
			return user, nil
		},
	}

	gdb, _ := newTestDB(t)
	svc := NewService(gdb, userRepo, &fakeProfileRepo{}, &fakeAuditRepo{}, &fakeOutboxRepo{}, nil)

	fresh, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)

	claims, err := token.Parse(fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, claims.Role)
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		Email:            "maria.santos@lgu.gov.ph",
		Password:         "long-enough-password",
		Role:             RoleEmployee,
		FirstName:        "Maria",
		LastName:         "Santos",
		OfficeDepartment: "Treasury",
		PositionTitle:    "Clerk",
	}
}

func TestRegisterCreatesUserProfileAuditAndEvent(t *testing.T) {
	userRepo := &fakeUserRepo{}
	profileRepo := &fakeProfileRepo{}
	audit := &fakeAuditRepo{}
	outbox := &fakeOutboxRepo{}

	gdb, mock := newTestDB(t)
	svc := NewService(gdb, userRepo, profileRepo, audit, outbox, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Register(context.Background(), uuid.New().String(), registerRequest())
	require.NoError(t, err)

	require.Len(t, userRepo.created, 1)
	require.Len(t, profileRepo.created, 1)
	assert.Equal(t, profileRepo.created[0].ID.String(), resp.EmployeeID)
	assert.NotEqual(t, "long-enough-password", userRepo.created[0].PasswordHash)

	require.Len(t, audit.rows, 1)
	assert.Equal(t, auditlog.ActionEmployeeCreated, audit.rows[0].Action)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, "employee_provisioned", outbox.events[0].EventType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

type fakeRefResolver struct {
	offices map[string]int
	grades  map[string]int
}

func (f *fakeRefResolver) ResolveOffice(ctx context.Context, name string) (int, error) {
	return f.offices[name], nil
}

func (f *fakeRefResolver) ResolvePosition(ctx context.Context, title string) (int, error) {
	return 0, nil
}

func (f *fakeRefResolver) ResolveSalaryGrade(ctx context.Context, grade string) (int, error) {
	return f.grades[grade], nil
}

func TestRegisterResolvesProfileReferenceIDs(t *testing.T) {
	profileRepo := &fakeProfileRepo{}
	refs := &fakeRefResolver{
		offices: map[string]int{"Treasury": 4},
		grades:  map[string]int{"SG-6": 6},
	}

	gdb, mock := newTestDB(t)
	svc := NewService(gdb, &fakeUserRepo{}, profileRepo, &fakeAuditRepo{}, &fakeOutboxRepo{}, refs)

	mock.ExpectBegin()
	mock.ExpectCommit()

	req := registerRequest()
	sg := "SG-6"
	req.SalaryGrade = &sg
	_, err := svc.Register(context.Background(), uuid.New().String(), req)
	require.NoError(t, err)

	require.Len(t, profileRepo.created, 1)
	p := profileRepo.created[0]
	require.NotNil(t, p.OfficeID)
	assert.Equal(t, 4, *p.OfficeID)
	require.NotNil(t, p.SalaryGradeID)
	assert.Equal(t, 6, *p.SalaryGradeID)
	// "Clerk" is not in the position catalog
	assert.Nil(t, p.PositionID)
}

func TestBulkProvisionIsolatesRowFailures(t *testing.T) {
	userRepo := &fakeUserRepo{
		createFn: func(ctx context.Context, u *User) error {
			if u.Email == "taken@lgu.gov.ph" {
				return errors.New("email is already registered")
			}
			return nil
		},
	}
	profileRepo := &fakeProfileRepo{}

	gdb, mock := newTestDB(t)
	mock.MatchExpectationsInOrder(false)
	svc := NewService(gdb, userRepo, profileRepo, &fakeAuditRepo{}, &fakeOutboxRepo{}, nil)

	// two rows commit, one rolls back on the duplicate email
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	result, err := svc.BulkProvision(context.Background(), uuid.New().String(), BulkProvisionRequest{
		OfficeDepartment: "Treasury",
		Rows: []BulkProvisionRow{
			{Email: "a@lgu.gov.ph", Password: "long-enough-1", FirstName: "Ana", LastName: "Lopez", PositionTitle: "Clerk"},
			{Email: "taken@lgu.gov.ph", Password: "long-enough-2", FirstName: "Ben", LastName: "Reyes", PositionTitle: "Clerk"},
			{Email: "c@lgu.gov.ph", Password: "long-enough-3", FirstName: "Cara", LastName: "Santos", PositionTitle: "Clerk"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "Reyes, Ben", result.Errors[0].Name)
	assert.Contains(t, result.Errors[0].Message, "already registered")

	require.Len(t, profileRepo.created, 2)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewService(gdb, &fakeUserRepo{}, &fakeProfileRepo{}, &fakeAuditRepo{}, &fakeOutboxRepo{}, nil)

	req := registerRequest()
	req.Role = "superuser"
	_, err := svc.Register(context.Background(), uuid.New().String(), req)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	gdb, _ := newTestDB(t)
	svc := NewService(gdb, &fakeUserRepo{}, &fakeProfileRepo{}, &fakeAuditRepo{}, &fakeOutboxRepo{}, nil)

	req := registerRequest()
	req.Password = "short"
	_, err := svc.Register(context.Background(), uuid.New().String(), req)
	assert.ErrorIs(t, err, autherrors.ErrWeakPassword)
}
