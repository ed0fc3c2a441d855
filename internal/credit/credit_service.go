package credit

import (
	"context"
	"errors"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/auditlog"
	crediterrors "github.com/VonnAirone/leave-management-system/internal/credit/errors"
	"github.com/VonnAirone/leave-management-system/internal/leavetype"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Leave types every employee gets a zeroed ledger row for on provisioning.
var defaultLeaveTypeIDs = []int{leavetype.VacationID, leavetype.SickID}

//go:generate mockgen -source=credit_service.go -destination=mock/credit_service_mock.go -package=mock
type Service interface {
	SetCredits(ctx context.Context, actorID string, req SetCreditsRequest) (CreditResponse, error)
	Adjust(ctx context.Context, actorID string, req AdjustCreditsRequest) (CreditResponse, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]CreditResponse, error)
	EnsureDefaults(ctx context.Context, employeeID string, year int) error
}

type service struct {
	db        *gorm.DB
	repo      Repository
	auditRepo auditlog.Repository
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, auditRepo auditlog.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("credit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("credit.service")
	}
	return &service{db: db, repo: repo, auditRepo: auditRepo, logger: l}
}

// SetCredits upserts a ledger row with the supplied earned total and a zeroed
// used total. A conflicting row is overwritten, not rejected.
func (s *service) SetCredits(ctx context.Context, actorID string, req SetCreditsRequest) (CreditResponse, error) {
	actorUUID, employeeUUID, err := parseActors(actorID, req.EmployeeID)
	if err != nil {
		return CreditResponse{}, err
	}
	if req.Year < 1000 || req.Year > 9999 {
		return CreditResponse{}, crediterrors.ErrInvalidYear
	}

	earned := decimal.NewFromFloat(req.Earned)
	if earned.IsNegative() {
		earned = decimal.Zero
	}

	row := &LeaveCredit{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		LeaveTypeID: req.LeaveTypeID,
		Year:        req.Year,
		TotalEarned: earned,
		TotalUsed:   decimal.Zero,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return CreditResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Upsert(ctx, row); err != nil {
		s.logger.Error("set credits upsert failed", zap.Error(err))
		return CreditResponse{}, err
	}

	if err := auditlog.AppendTx(ctx, tx, s.auditRepo, auditlog.Entry{
		Action:      auditlog.ActionCreditsAdjusted,
		EntityType:  "leave_credit",
		EntityID:    row.ID.String(),
		PerformedBy: actorUUID,
		Details: map[string]any{
			"employee_id":   req.EmployeeID,
			"leave_type_id": req.LeaveTypeID,
			"year":          req.Year,
			"earned":        earned.InexactFloat64(),
			"mode":          "set",
		},
	}); err != nil {
		s.logger.Error("set credits audit append failed", zap.Error(err))
		return CreditResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return CreditResponse{}, err
	}

	s.logger.Info("set credits success",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
	)
	return mapToResponse(*row), nil
}

// Adjust applies a signed delta to earned, clamped at zero. Used is never
// touched here; it only moves through the approval debit.
func (s *service) Adjust(ctx context.Context, actorID string, req AdjustCreditsRequest) (CreditResponse, error) {
	actorUUID, _, err := parseActors(actorID, req.EmployeeID)
	if err != nil {
		return CreditResponse{}, err
	}
	if req.Reason == "" {
		return CreditResponse{}, crediterrors.ErrAdjustmentReasonRequired
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return CreditResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByKey(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CreditResponse{}, crediterrors.ErrCreditNotFound
		}
		return CreditResponse{}, err
	}

	before := row.TotalEarned
	next := row.TotalEarned.Add(decimal.NewFromFloat(req.Delta))
	if next.IsNegative() {
		next = decimal.Zero
	}
	row.TotalEarned = next

	if err := qtx.Save(ctx, row); err != nil {
		s.logger.Error("adjust credits save failed", zap.Error(err))
		return CreditResponse{}, err
	}

	if err := auditlog.AppendTx(ctx, tx, s.auditRepo, auditlog.Entry{
		Action:      auditlog.ActionCreditsAdjusted,
		EntityType:  "leave_credit",
		EntityID:    row.ID.String(),
		PerformedBy: actorUUID,
		Details: map[string]any{
			"employee_id":   req.EmployeeID,
			"leave_type_id": req.LeaveTypeID,
			"year":          req.Year,
			"delta":         req.Delta,
			"earned_before": before.InexactFloat64(),
			"earned_after":  next.InexactFloat64(),
			"reason":        req.Reason,
			"mode":          "adjust",
		},
	}); err != nil {
		s.logger.Error("adjust credits audit append failed", zap.Error(err))
		return CreditResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return CreditResponse{}, err
	}

	s.logger.Info("adjust credits success",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("leave_type_id", req.LeaveTypeID),
		zap.Float64("delta", req.Delta),
	)
	return mapToResponse(*row), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string, year int) ([]CreditResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, crediterrors.ErrInvalidEmployeeID
	}

	credits, err := s.repo.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]CreditResponse, len(credits))
	for i, c := range credits {
		resp[i] = mapToResponse(c)
	}
	return resp, nil
}

// EnsureDefaults provisions zeroed VL and SL rows for a new employee. Safe to
// replay: the upsert writes the same zeros every time.
func (s *service) EnsureDefaults(ctx context.Context, employeeID string, year int) error {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return crediterrors.ErrInvalidEmployeeID
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	for _, leaveTypeID := range defaultLeaveTypeIDs {
		if _, err := s.repo.FindByKey(ctx, employeeID, leaveTypeID, year); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := &LeaveCredit{
			ID:          uuid.New(),
			EmployeeID:  employeeUUID,
			LeaveTypeID: leaveTypeID,
			Year:        year,
			TotalEarned: decimal.Zero,
			TotalUsed:   decimal.Zero,
		}
		if err := s.repo.Upsert(ctx, row); err != nil {
			return err
		}
		s.logger.Info("default leave credit provisioned",
			zap.String("employee_id", employeeID),
			zap.Int("leave_type_id", leaveTypeID),
			zap.Int("year", year),
		)
	}
	return nil
}

func parseActors(actorID, employeeID string) (uuid.UUID, uuid.UUID, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, crediterrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, crediterrors.ErrInvalidEmployeeID
	}
	return actorUUID, employeeUUID, nil
}

func mapToResponse(c LeaveCredit) CreditResponse {
	return CreditResponse{
		ID:          c.ID.String(),
		EmployeeID:  c.EmployeeID.String(),
		LeaveTypeID: c.LeaveTypeID,
		Year:        c.Year,
		TotalEarned: c.TotalEarned.InexactFloat64(),
		TotalUsed:   c.TotalUsed.InexactFloat64(),
		Balance:     c.Balance().InexactFloat64(),
	}
}
