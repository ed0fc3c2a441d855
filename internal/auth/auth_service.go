package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/auditlog"
	autherrors "github.com/VonnAirone/leave-management-system/internal/auth/errors"
	"github.com/VonnAirone/leave-management-system/internal/events"
	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka"
	"github.com/VonnAirone/leave-management-system/internal/profile"
	"github.com/VonnAirone/leave-management-system/internal/shared/contextutil"
	"github.com/VonnAirone/leave-management-system/internal/shared/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (token.TokenPair, error)
	Register(ctx context.Context, actorID string, req RegisterRequest) (UserResponse, error)
	BulkProvision(ctx context.Context, actorID string, req BulkProvisionRequest) (BulkProvisionResult, error)
	GetMe(ctx context.Context, userID string) (UserResponse, error)
}

// Batch registrations insert concurrently, capped like the worker import.
const bulkProvisionConcurrency = 5

// RefResolver maps the free-text office, position and salary grade of a
// registration onto reference rows. A miss returns (0, nil).
type RefResolver interface {
	ResolveOffice(ctx context.Context, name string) (int, error)
	ResolvePosition(ctx context.Context, title string) (int, error)
	ResolveSalaryGrade(ctx context.Context, grade string) (int, error)
}

type service struct {
	db          *gorm.DB
	repo        Repository
	profileRepo profile.Repository
	auditRepo   auditlog.Repository
	outboxRepo  kafka.OutboxRepository
	refs        RefResolver
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	profileRepo profile.Repository,
	auditRepo auditlog.Repository,
	outboxRepo kafka.OutboxRepository,
	refs RefResolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		outboxRepo:  outboxRepo,
		refs:        refs,
		logger:      l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a hash comparison so missing accounts take as long as
			// wrong passwords.
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B4TKh/zduzZc06P36ZMLuqhu7pGa"), []byte(req.Password))
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", req.Email))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return LoginResponse{}, autherrors.ErrAccountDisabled
	}

	employeeID := ""
	if p, err := s.profileRepo.FindByUserID(ctx, user.ID.String()); err == nil {
		employeeID = p.ID.String()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LoginResponse{}, err
	}

	pair, err := token.GeneratePair(user.ID.String(), employeeID, user.Role)
	if err != nil {
		return LoginResponse{}, err
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Warn("update last login failed", zap.Error(err))
	}

	s.logger.Info("login success", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return LoginResponse{
		TokenPair: pair,
		User: UserResponse{
			ID:         user.ID.String(),
			Email:      user.Email,
			Role:       user.Role,
			EmployeeID: employeeID,
		},
	}, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (token.TokenPair, error) {
	claims, err := token.Parse(req.RefreshToken)
	if err != nil {
		return token.TokenPair{}, autherrors.ErrInvalidToken
	}
	if claims.TokenUse != token.UseRefresh {
		return token.TokenPair{}, autherrors.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return token.TokenPair{}, autherrors.ErrInvalidToken
		}
		return token.TokenPair{}, err
	}
	if !user.IsActive {
		return token.TokenPair{}, autherrors.ErrAccountDisabled
	}

	// Role and employee binding are re-read so a demotion takes effect at the
	// next refresh, not at token expiry.
	return token.GeneratePair(user.ID.String(), claims.EmployeeID, user.Role)
}

// Register creates a login and its employee profile in one transaction. The
// audit row and the provisioning event ride the same commit.
func (s *service) Register(ctx context.Context, actorID string, req RegisterRequest) (UserResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return UserResponse{}, autherrors.ErrInvalidActorID
	}
	if req.Role != RoleEmployee && req.Role != RoleHRAdmin {
		return UserResponse{}, autherrors.ErrInvalidRole
	}
	if len(req.Password) < 8 {
		return UserResponse{}, autherrors.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}

	userID := user.ID
	p := &profile.Profile{
		ID:         uuid.New(),
		UserID:     &userID,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Sex:        req.Sex,

		OfficeDepartment: req.OfficeDepartment,
		PositionTitle:    req.PositionTitle,
		SalaryGrade:      req.SalaryGrade,

		IsActive: true,
	}
	if req.DateHired != nil {
		if hired, err := time.Parse("2006-01-02", *req.DateHired); err == nil {
			p.DateHired = &hired
		}
	}
	s.resolveProfileRefs(ctx, p)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return UserResponse{}, tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
		return UserResponse{}, autherrors.MapDBError(err)
	}
	if err := s.profileRepo.WithTx(tx).Create(ctx, p); err != nil {
		return UserResponse{}, autherrors.MapDBError(err)
	}

	if err := auditlog.AppendTx(ctx, tx, s.auditRepo, auditlog.Entry{
		Action:      auditlog.ActionEmployeeCreated,
		EntityType:  "profile",
		EntityID:    p.ID.String(),
		PerformedBy: actorUUID,
		Details: map[string]any{
			"name":     p.LastName + ", " + p.FirstName,
			"email":    user.Email,
			"role":     user.Role,
			"office":   p.OfficeDepartment,
			"position": p.PositionTitle,
		},
	}); err != nil {
		return UserResponse{}, err
	}

	payload, err := json.Marshal(events.EmployeeProvisionedEvent{
		EventType:  "employee_provisioned",
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: p.ID.String(),
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return UserResponse{}, err
	}
	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "profile",
		AggregateID:   p.ID.String(),
		EventType:     "employee_provisioned",
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return UserResponse{}, err
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, event); err != nil {
		return UserResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return UserResponse{}, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("employee_id", p.ID.String()),
		zap.String("role", user.Role),
	)
	return UserResponse{
		ID:         user.ID.String(),
		Email:      user.Email,
		Role:       user.Role,
		EmployeeID: p.ID.String(),
	}, nil
}

// BulkProvision registers each row independently; one failing row never stops
// the batch. Every successful row commits its own transaction.
func (s *service) BulkProvision(ctx context.Context, actorID string, req BulkProvisionRequest) (BulkProvisionResult, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return BulkProvisionResult{}, autherrors.ErrInvalidActorID
	}

	result := BulkProvisionResult{Total: len(req.Rows)}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkProvisionConcurrency)

	for i, row := range req.Rows {
		i, row := i, row
		g.Go(func() error {
			user, err := s.Register(gctx, actorID, RegisterRequest{
				Email:    row.Email,
				Password: row.Password,
				Role:     RoleEmployee,

				FirstName:  row.FirstName,
				MiddleName: row.MiddleName,
				LastName:   row.LastName,

				OfficeDepartment: req.OfficeDepartment,
				PositionTitle:    row.PositionTitle,
				SalaryGrade:      row.SalaryGrade,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, BulkProvisionRowError{
					Row:     i + 1,
					Name:    row.LastName + ", " + row.FirstName,
					Message: err.Error(),
				})
				return nil
			}
			result.Created++
			result.Users = append(result.Users, user)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BulkProvisionResult{}, err
	}

	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Row < result.Errors[j].Row
	})

	s.logger.Info("bulk provisioning finished",
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// resolveProfileRefs pins the profile's free-text office, position and salary
// grade to catalog ids. Text that matches no catalog row leaves the id nil;
// the text columns stay authoritative.
func (s *service) resolveProfileRefs(ctx context.Context, p *profile.Profile) {
	if s.refs == nil {
		return
	}
	if id, err := s.refs.ResolveOffice(ctx, p.OfficeDepartment); err != nil {
		s.logger.Warn("office lookup failed", zap.String("office", p.OfficeDepartment), zap.Error(err))
	} else if id > 0 {
		p.OfficeID = &id
	}
	if id, err := s.refs.ResolvePosition(ctx, p.PositionTitle); err != nil {
		s.logger.Warn("position lookup failed", zap.String("position", p.PositionTitle), zap.Error(err))
	} else if id > 0 {
		p.PositionID = &id
	}
	if p.SalaryGrade != nil && *p.SalaryGrade != "" {
		if id, err := s.refs.ResolveSalaryGrade(ctx, *p.SalaryGrade); err != nil {
			s.logger.Warn("salary grade lookup failed", zap.String("salary_grade", *p.SalaryGrade), zap.Error(err))
		} else if id > 0 {
			p.SalaryGradeID = &id
		}
	}
}

func (s *service) GetMe(ctx context.Context, userID string) (UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, autherrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	resp := UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  user.Role,
	}
	if p, err := s.profileRepo.FindByUserID(ctx, user.ID.String()); err == nil {
		resp.EmployeeID = p.ID.String()
	}
	return resp, nil
}
