package profile

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/auditlog"
	"github.com/VonnAirone/leave-management-system/internal/events"
	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka"
	profileerrors "github.com/VonnAirone/leave-management-system/internal/profile/errors"
	"github.com/VonnAirone/leave-management-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, actorID string, req CreateProfileRequest) (ProfileResponse, error)
	Update(ctx context.Context, actorID, employeeID string, req UpdateProfileRequest) (ProfileResponse, error)
	Deactivate(ctx context.Context, actorID, employeeID string) error
	GetByID(ctx context.Context, employeeID string) (ProfileResponse, error)
	GetMe(ctx context.Context, employeeID string) (ProfileResponse, error)
	List(ctx context.Context, office, search string, activeOnly bool, page, pageSize int) ([]ProfileResponse, int64, error)
}

// RefResolver maps free-text office, position and salary grade values onto
// reference rows. A miss returns (0, nil).
type RefResolver interface {
	ResolveOffice(ctx context.Context, name string) (int, error)
	ResolvePosition(ctx context.Context, title string) (int, error)
	ResolveSalaryGrade(ctx context.Context, grade string) (int, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	auditRepo  auditlog.Repository
	outboxRepo kafka.OutboxRepository
	refs       RefResolver
	logger     *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, auditRepo auditlog.Repository, outboxRepo kafka.OutboxRepository, refs RefResolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	return &service{db: db, repo: repo, auditRepo: auditRepo, outboxRepo: outboxRepo, refs: refs, logger: l}
}

// resolveRefs keeps the catalog ids in step with the text columns. Text that
// matches no catalog row clears the id rather than keeping a stale one.
func (s *service) resolveRefs(ctx context.Context, p *Profile) {
	if s.refs == nil {
		return
	}
	if id, err := s.refs.ResolveOffice(ctx, p.OfficeDepartment); err != nil {
		s.logger.Warn("office lookup failed", zap.String("office", p.OfficeDepartment), zap.Error(err))
	} else if id > 0 {
		p.OfficeID = &id
	} else {
		p.OfficeID = nil
	}
	if id, err := s.refs.ResolvePosition(ctx, p.PositionTitle); err != nil {
		s.logger.Warn("position lookup failed", zap.String("position", p.PositionTitle), zap.Error(err))
	} else if id > 0 {
		p.PositionID = &id
	} else {
		p.PositionID = nil
	}
	p.SalaryGradeID = nil
	if p.SalaryGrade != nil && *p.SalaryGrade != "" {
		if id, err := s.refs.ResolveSalaryGrade(ctx, *p.SalaryGrade); err != nil {
			s.logger.Warn("salary grade lookup failed", zap.String("salary_grade", *p.SalaryGrade), zap.Error(err))
		} else if id > 0 {
			p.SalaryGradeID = &id
		}
	}
}

// Create records a new plantilla employee without a login. The credit ledger
// is provisioned downstream off the lifecycle event.
func (s *service) Create(ctx context.Context, actorID string, req CreateProfileRequest) (ProfileResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidActorID
	}

	p := &Profile{
		ID:         uuid.New(),
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Sex:        req.Sex,

		Address:       req.Address,
		ContactNumber: req.ContactNumber,

		OfficeDepartment: req.OfficeDepartment,
		PositionTitle:    req.PositionTitle,
		SalaryGrade:      req.SalaryGrade,

		IsActive: true,
	}
	if req.DateOfBirth != nil {
		if dob, err := time.Parse(dateLayout, *req.DateOfBirth); err == nil {
			p.DateOfBirth = &dob
		}
	}
	if req.DateHired != nil {
		if hired, err := time.Parse(dateLayout, *req.DateHired); err == nil {
			p.DateHired = &hired
		}
	}
	s.resolveRefs(ctx, p)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ProfileResponse{}, tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		s.logger.Error("create profile failed", zap.Error(err))
		return ProfileResponse{}, profileerrors.MapDBError(err)
	}

	if err := auditlog.AppendTx(ctx, tx, s.auditRepo, auditlog.Entry{
		Action:      auditlog.ActionEmployeeCreated,
		EntityType:  "profile",
		EntityID:    p.ID.String(),
		PerformedBy: actorUUID,
		Details: map[string]any{
			"name":     p.LastName + ", " + p.FirstName,
			"office":   p.OfficeDepartment,
			"position": p.PositionTitle,
		},
	}); err != nil {
		return ProfileResponse{}, err
	}

	if err := s.enqueueProvisionedEvent(ctx, tx, p.ID.String(), ""); err != nil {
		return ProfileResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return ProfileResponse{}, err
	}

	s.logger.Info("employee profile created",
		zap.String("employee_id", p.ID.String()),
		zap.String("office", p.OfficeDepartment),
	)
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, actorID, employeeID string, req UpdateProfileRequest) (ProfileResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidEmployeeID
	}

	p, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, profileerrors.ErrProfileNotFound
		}
		return ProfileResponse{}, err
	}

	changed := applyUpdate(p, req)
	if len(changed) == 0 {
		return mapToResponse(*p), nil
	}
	s.resolveRefs(ctx, p)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ProfileResponse{}, tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, p); err != nil {
		return ProfileResponse{}, profileerrors.MapDBError(err)
	}

	if err := auditlog.AppendTx(ctx, tx, s.auditRepo, auditlog.Entry{
		Action:      auditlog.ActionEmployeeUpdated,
		EntityType:  "profile",
		EntityID:    p.ID.String(),
		PerformedBy: actorUUID,
		Details: map[string]any{
			"changed_fields": changed,
		},
	}); err != nil {
		return ProfileResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return ProfileResponse{}, err
	}
	return mapToResponse(*p), nil
}

// Deactivate soft-disables an employee. The row stays because approved
// applications and the audit trail reference it.
func (s *service) Deactivate(ctx context.Context, actorID, employeeID string) error {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return profileerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return profileerrors.ErrInvalidEmployeeID
	}

	p, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return profileerrors.ErrProfileNotFound
		}
		return err
	}
	if !p.IsActive {
		return profileerrors.ErrProfileInactive
	}
	p.IsActive = false

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, p); err != nil {
		return err
	}

	if err := auditlog.AppendTx(ctx, tx, s.auditRepo, auditlog.Entry{
		Action:      auditlog.ActionEmployeeUpdated,
		EntityType:  "profile",
		EntityID:    p.ID.String(),
		PerformedBy: actorUUID,
		Details: map[string]any{
			"changed_fields": []string{"is_active"},
			"is_active":      false,
		},
	}); err != nil {
		return err
	}

	return tx.Commit().Error
}

func (s *service) GetByID(ctx context.Context, employeeID string) (ProfileResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ProfileResponse{}, profileerrors.ErrInvalidEmployeeID
	}

	p, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, profileerrors.ErrProfileNotFound
		}
		return ProfileResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (ProfileResponse, error) {
	return s.GetByID(ctx, employeeID)
}

func (s *service) List(ctx context.Context, office, search string, activeOnly bool, page, pageSize int) ([]ProfileResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	total, err := s.repo.Count(ctx, office, search, activeOnly)
	if err != nil {
		return nil, 0, err
	}

	profiles, err := s.repo.List(ctx, office, search, activeOnly, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapToResponse(p)
	}
	return resp, total, nil
}

func (s *service) enqueueProvisionedEvent(ctx context.Context, tx *gorm.DB, employeeID, email string) error {
	payload, err := json.Marshal(events.EmployeeProvisionedEvent{
		EventType:  "employee_provisioned",
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: employeeID,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "profile",
		AggregateID:   employeeID,
		EventType:     "employee_provisioned",
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}
	return s.outboxRepo.WithTx(tx).Create(ctx, event)
}

func applyUpdate(p *Profile, req UpdateProfileRequest) []string {
	var changed []string
	set := func(field string, apply func()) {
		apply()
		changed = append(changed, field)
	}

	if req.FirstName != nil && *req.FirstName != p.FirstName {
		set("first_name", func() { p.FirstName = *req.FirstName })
	}
	if req.MiddleName != nil {
		set("middle_name", func() { p.MiddleName = req.MiddleName })
	}
	if req.LastName != nil && *req.LastName != p.LastName {
		set("last_name", func() { p.LastName = *req.LastName })
	}
	if req.Sex != nil {
		set("sex", func() { p.Sex = req.Sex })
	}
	if req.Address != nil {
		set("address", func() { p.Address = req.Address })
	}
	if req.ContactNumber != nil {
		set("contact_number", func() { p.ContactNumber = req.ContactNumber })
	}
	if req.DateOfBirth != nil {
		if dob, err := time.Parse(dateLayout, *req.DateOfBirth); err == nil {
			set("date_of_birth", func() { p.DateOfBirth = &dob })
		}
	}
	if req.DateHired != nil {
		if hired, err := time.Parse(dateLayout, *req.DateHired); err == nil {
			set("date_hired", func() { p.DateHired = &hired })
		}
	}
	if req.OfficeDepartment != nil && *req.OfficeDepartment != p.OfficeDepartment {
		set("office_department", func() { p.OfficeDepartment = *req.OfficeDepartment })
	}
	if req.PositionTitle != nil && *req.PositionTitle != p.PositionTitle {
		set("position_title", func() { p.PositionTitle = *req.PositionTitle })
	}
	if req.SalaryGrade != nil {
		set("salary_grade", func() { p.SalaryGrade = req.SalaryGrade })
	}
	return changed
}
