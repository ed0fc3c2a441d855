package leave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/auditlog"
	"github.com/VonnAirone/leave-management-system/internal/credit"
	"github.com/VonnAirone/leave-management-system/internal/events"
	leaveerrors "github.com/VonnAirone/leave-management-system/internal/leave/errors"
	"github.com/VonnAirone/leave-management-system/internal/leavetype"
	"github.com/VonnAirone/leave-management-system/internal/messaging/kafka"
	"github.com/VonnAirone/leave-management-system/internal/shared/contextutil"
	"github.com/VonnAirone/leave-management-system/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock

type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveApplicationResponse, error)
	Approve(ctx context.Context, actorID, applicationID string, req ApproveLeaveRequest) (LeaveApplicationResponse, error)
	Reject(ctx context.Context, actorID, applicationID string, req RejectLeaveRequest) (LeaveApplicationResponse, error)
	GetByID(ctx context.Context, applicationID, requesterID string, canReadAll bool) (LeaveApplicationResponse, error)
	GetMine(ctx context.Context, employeeID string) ([]LeaveApplicationResponse, error)
	GetAll(ctx context.Context, status, department string, page, pageSize int) ([]LeaveApplicationResponse, int64, error)
}

type service struct {
	db            *gorm.DB
	repo          Repository
	leaveTypeRepo leavetype.Repository
	creditRepo    credit.Repository
	auditRepo     auditlog.Repository
	counterRepo   counter.Repository
	outboxRepo    kafka.OutboxRepository
	logger        *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	leaveTypeRepo leavetype.Repository,
	creditRepo credit.Repository,
	auditRepo auditlog.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		leaveTypeRepo: leaveTypeRepo,
		creditRepo:    creditRepo,
		auditRepo:     auditRepo,
		counterRepo:   counterRepo,
		outboxRepo:    outboxRepo,
		logger:        l,
	}
}

// Submit files a new application in "submitted" state. The filer's profile is
// snapshotted onto the row, working days are computed server-side and, when a
// ledger row exists for the leave type and year, the balance must cover them.
func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveApplicationResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	start, err := time.Parse(dateLayout, req.InclusiveDateStart)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, req.InclusiveDateEnd)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidDateRange
	}

	leaveType, err := s.leaveTypeRepo.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveApplicationResponse{}, leaveerrors.ErrUnknownLeaveType
		}
		return LeaveApplicationResponse{}, err
	}

	if err := validateDetails(leaveType.Code, req); err != nil {
		return LeaveApplicationResponse{}, err
	}

	numDays := CountWorkingDays(start, end)

	// Balance check applies only when a ledger row exists; employees without
	// one file unconstrained and HR decides on paper records. The pre-check
	// reads the filing year's row even when the dates fall in the next year;
	// the debit at approval hits the row for the year the leave starts in.
	ledger, err := s.creditRepo.FindByKey(ctx, employeeID, req.LeaveTypeID, time.Now().UTC().Year())
	switch {
	case err == nil:
		if decimal.NewFromInt(int64(numDays)).GreaterThan(ledger.Balance()) {
			return LeaveApplicationResponse{}, leaveerrors.ErrInsufficientCredits
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Debug("no ledger row for submission, skipping balance check",
			zap.String("employee_id", employeeID),
			zap.Int("leave_type_id", req.LeaveTypeID),
		)
	default:
		return LeaveApplicationResponse{}, err
	}

	snap, err := s.repo.GetEmployeeSnapshot(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveApplicationResponse{}, leaveerrors.ErrEmployeeProfileNotFound
		}
		return LeaveApplicationResponse{}, err
	}

	seq, err := s.counterRepo.GetNextValue(ctx, counter.TypeApplicationNumber)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}

	app := &LeaveApplication{
		ID:                uuid.New(),
		ApplicationNumber: fmt.Sprintf("APP-%06d", seq),
		EmployeeID:        employeeUUID,

		OfficeDepartment: snap.OfficeDepartment,
		EmployeeName:     snap.FormName(),
		PositionTitle:    snap.PositionTitle,
		Salary:           snap.SalaryGrade,
		DateOfFiling:     truncateToDate(time.Now().UTC()),

		LeaveTypeID:     req.LeaveTypeID,
		LeaveTypeOthers: req.LeaveTypeOthers,

		VacationLocationType:   req.VacationLocationType,
		VacationLocationDetail: req.VacationLocationDetail,
		SickLeaveType:          req.SickLeaveType,
		SickLeaveIllness:       req.SickLeaveIllness,
		StudyLeaveMasters:      req.StudyLeaveMasters,
		StudyLeaveBarReview:    req.StudyLeaveBarReview,
		OtherMonetization:      req.OtherMonetization,
		OtherTerminalLeave:     req.OtherTerminalLeave,
		SpecialLeaveIllness:    req.SpecialLeaveIllness,

		NumWorkingDays:     numDays,
		InclusiveDateStart: start,
		InclusiveDateEnd:   end,

		CommutationRequested: req.CommutationRequested,
		Status:               StatusSubmitted,
		LeaveType:            leaveType,
	}

	if err := s.repo.Create(ctx, app); err != nil {
		s.logger.Error("create leave application failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return LeaveApplicationResponse{}, err
	}

	s.logger.Info("leave application submitted",
		zap.String("application_number", app.ApplicationNumber),
		zap.String("employee_id", employeeID),
		zap.String("leave_type", leaveType.Code),
		zap.Int("num_working_days", numDays),
	)
	return mapToResponse(*app), nil
}

// Approve moves a submitted application to approved. The status write, audit
// row, credit debit, certification figures and outbox event commit in one
// transaction; a concurrent decision on the same row blocks on the lock and
// then fails the submitted-status check.
func (s *service) Approve(ctx context.Context, actorID, applicationID string, req ApproveLeaveRequest) (LeaveApplicationResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(applicationID); err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LeaveApplicationResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	app, err := qtx.FindByIDForUpdate(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotFound
		}
		return LeaveApplicationResponse{}, err
	}
	if app.Status != StatusSubmitted {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	leaveType, err := s.leaveTypeRepo.FindByID(ctx, app.LeaveTypeID)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}

	withPay, withoutPay, err := resolveDaysSplit(app.NumWorkingDays, req)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}

	now := time.Now().UTC()
	recommendation := RecommendApproval

	app.Status = StatusApproved
	app.Recommendation = &recommendation
	app.RecommendedBy = &actorUUID
	app.ApprovedDaysWithPay = &withPay
	app.ApprovedDaysWithoutPay = &withoutPay
	app.ApprovedOthers = req.Others
	app.ActionedBy = &actorUUID
	app.ActionedAt = &now

	creditQtx := s.creditRepo.WithTx(tx)

	// Debit the ledger for the leave year; absence of a row is tolerated and
	// only logged, matching how pre-ledger employees are handled.
	days := decimal.NewFromInt(int64(app.NumWorkingDays))
	debited, err := creditQtx.IncrementUsed(ctx, app.EmployeeID.String(), app.LeaveTypeID, app.InclusiveDateStart.Year(), days)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}
	if !debited {
		s.logger.Warn("approval debit skipped: no ledger row",
			zap.String("application_number", app.ApplicationNumber),
			zap.String("employee_id", app.EmployeeID.String()),
			zap.Int("leave_type_id", app.LeaveTypeID),
			zap.Int("year", app.InclusiveDateStart.Year()),
		)
	}

	s.fillCertification(ctx, creditQtx, app, now)

	if err := qtx.Update(ctx, app); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := s.appendDecisionAudit(ctx, tx, actorUUID, app, leaveType, auditlog.ActionLeaveApproved, map[string]any{
		"days_with_pay":    withPay.InexactFloat64(),
		"days_without_pay": withoutPay.InexactFloat64(),
	}); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := s.enqueueDecisionEvent(ctx, tx, app, leaveType); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return LeaveApplicationResponse{}, err
	}

	s.logger.Info("leave application approved",
		zap.String("application_number", app.ApplicationNumber),
		zap.String("actioned_by", actorID),
		zap.Bool("credits_debited", debited),
	)

	app.LeaveType = leaveType
	return mapToResponse(*app), nil
}

// Reject moves a submitted application to rejected. No credits move; the
// reason is mandatory and lands on both the recommendation and the decision.
func (s *service) Reject(ctx context.Context, actorID, applicationID string, req RejectLeaveRequest) (LeaveApplicationResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(applicationID); err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if req.Reason == "" {
		return LeaveApplicationResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LeaveApplicationResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	app, err := qtx.FindByIDForUpdate(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotFound
		}
		return LeaveApplicationResponse{}, err
	}
	if app.Status != StatusSubmitted {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	leaveType, err := s.leaveTypeRepo.FindByID(ctx, app.LeaveTypeID)
	if err != nil {
		return LeaveApplicationResponse{}, err
	}

	now := time.Now().UTC()
	recommendation := RecommendDisapproval
	reason := req.Reason

	app.Status = StatusRejected
	app.Recommendation = &recommendation
	app.RecommendationDisapprovalReason = &reason
	app.RecommendedBy = &actorUUID
	app.DisapprovalReason = &reason
	app.ActionedBy = &actorUUID
	app.ActionedAt = &now

	if err := qtx.Update(ctx, app); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := s.appendDecisionAudit(ctx, tx, actorUUID, app, leaveType, auditlog.ActionLeaveRejected, map[string]any{
		"reason": reason,
	}); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := s.enqueueDecisionEvent(ctx, tx, app, leaveType); err != nil {
		return LeaveApplicationResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return LeaveApplicationResponse{}, err
	}

	s.logger.Info("leave application rejected",
		zap.String("application_number", app.ApplicationNumber),
		zap.String("actioned_by", actorID),
	)

	app.LeaveType = leaveType
	return mapToResponse(*app), nil
}

func (s *service) GetByID(ctx context.Context, applicationID, requesterID string, canReadAll bool) (LeaveApplicationResponse, error) {
	if _, err := uuid.Parse(applicationID); err != nil {
		return LeaveApplicationResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	app, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveApplicationResponse{}, leaveerrors.ErrApplicationNotFound
		}
		return LeaveApplicationResponse{}, err
	}

	if !canReadAll && app.EmployeeID.String() != requesterID {
		return LeaveApplicationResponse{}, leaveerrors.ErrForbiddenApplicationRead
	}
	return mapToResponse(*app), nil
}

func (s *service) GetMine(ctx context.Context, employeeID string) ([]LeaveApplicationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	apps, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveApplicationResponse, len(apps))
	for i, app := range apps {
		resp[i] = mapToResponse(app)
	}
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, status, department string, page, pageSize int) ([]LeaveApplicationResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	total, err := s.repo.CountAll(ctx, status, department)
	if err != nil {
		return nil, 0, err
	}

	apps, err := s.repo.ListAll(ctx, status, department, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]LeaveApplicationResponse, len(apps))
	for i, app := range apps {
		resp[i] = mapToResponse(app)
	}
	return resp, total, nil
}

// validateDetails enforces the section 6.B branch for the chosen leave type.
func validateDetails(code string, req SubmitLeaveRequest) error {
	switch code {
	case leavetype.CodeVacation, leavetype.CodeForced, leavetype.CodeSpecialPrivilege:
		if req.VacationLocationType == nil {
			return leaveerrors.ErrVacationLocationRequired
		}
		if *req.VacationLocationType != LocationWithinPH && *req.VacationLocationType != LocationAbroad {
			return leaveerrors.ErrInvalidVacationLocation
		}
	case leavetype.CodeSick:
		if req.SickLeaveType == nil || req.SickLeaveIllness == nil || *req.SickLeaveIllness == "" {
			return leaveerrors.ErrSickDetailsRequired
		}
		if *req.SickLeaveType != SickInHospital && *req.SickLeaveType != SickOutPatient {
			return leaveerrors.ErrInvalidSickLeaveType
		}
	case leavetype.CodeSpecialWomen:
		if req.SpecialLeaveIllness == nil || *req.SpecialLeaveIllness == "" {
			return leaveerrors.ErrSpecialIllnessRequired
		}
	case leavetype.CodeOthers:
		if req.LeaveTypeOthers == nil || *req.LeaveTypeOthers == "" {
			return leaveerrors.ErrOthersDetailRequired
		}
	}
	return nil
}

// resolveDaysSplit defaults to all days with pay when HR leaves the split
// blank; an explicit split must be non-negative and sum to the working days.
func resolveDaysSplit(numWorkingDays int, req ApproveLeaveRequest) (decimal.Decimal, decimal.Decimal, error) {
	total := decimal.NewFromInt(int64(numWorkingDays))
	if req.DaysWithPay == nil && req.DaysWithoutPay == nil {
		return total, decimal.Zero, nil
	}

	withPay := decimal.Zero
	withoutPay := decimal.Zero
	if req.DaysWithPay != nil {
		withPay = decimal.NewFromFloat(*req.DaysWithPay)
	}
	if req.DaysWithoutPay != nil {
		withoutPay = decimal.NewFromFloat(*req.DaysWithoutPay)
	}
	if withPay.IsNegative() || withoutPay.IsNegative() || !withPay.Add(withoutPay).Equal(total) {
		return decimal.Zero, decimal.Zero, leaveerrors.ErrInvalidDaysSplit
	}
	return withPay, withoutPay, nil
}

// fillCertification copies the VL/SL ledger figures onto the 7.A block of the
// form. Missing rows leave the block blank; certification is informational and
// never blocks the decision.
func (s *service) fillCertification(ctx context.Context, creditRepo credit.Repository, app *LeaveApplication, asOf time.Time) {
	year := app.InclusiveDateStart.Year()
	asOfDate := truncateToDate(asOf)
	app.CertAsOfDate = &asOfDate

	if vl, err := creditRepo.FindByKey(ctx, app.EmployeeID.String(), leavetype.VacationID, year); err == nil {
		earned, balance := vl.TotalEarned, vl.Balance()
		app.CertVLTotalEarned = &earned
		app.CertVLBalance = &balance
		if app.LeaveTypeID == leavetype.VacationID {
			days := decimal.NewFromInt(int64(app.NumWorkingDays))
			app.CertVLLessThis = &days
		}
	}
	if sl, err := creditRepo.FindByKey(ctx, app.EmployeeID.String(), leavetype.SickID, year); err == nil {
		earned, balance := sl.TotalEarned, sl.Balance()
		app.CertSLTotalEarned = &earned
		app.CertSLBalance = &balance
		if app.LeaveTypeID == leavetype.SickID {
			days := decimal.NewFromInt(int64(app.NumWorkingDays))
			app.CertSLLessThis = &days
		}
	}
}

func (s *service) appendDecisionAudit(ctx context.Context, tx *gorm.DB, actor uuid.UUID, app *LeaveApplication, leaveType *leavetype.LeaveType, action string, extra map[string]any) error {
	details := map[string]any{
		"application_number": app.ApplicationNumber,
		"employee_name":      app.EmployeeName,
		"leave_type":         leaveType.Code,
		"leave_type_name":    leaveType.Name,
		"inclusive_dates":    app.InclusiveDateStart.Format(dateLayout) + " to " + app.InclusiveDateEnd.Format(dateLayout),
		"num_working_days":   app.NumWorkingDays,
	}
	for k, v := range extra {
		details[k] = v
	}
	return auditlog.AppendTx(ctx, tx, s.auditRepo, auditlog.Entry{
		Action:      action,
		EntityType:  "leave_application",
		EntityID:    app.ID.String(),
		PerformedBy: actor,
		Details:     details,
	})
}

func (s *service) enqueueDecisionEvent(ctx context.Context, tx *gorm.DB, app *LeaveApplication, leaveType *leavetype.LeaveType) error {
	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:         "leave_decided",
		RequestID:         contextutil.GetRequestID(ctx),
		ApplicationID:     app.ID.String(),
		ApplicationNumber: app.ApplicationNumber,
		EmployeeID:        app.EmployeeID.String(),
		LeaveTypeCode:     leaveType.Code,
		Status:            app.Status,
		NumWorkingDays:    float64(app.NumWorkingDays),
		OccurredAt:        time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_application",
		AggregateID:   app.ID.String(),
		EventType:     "leave_decided",
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}
	return s.outboxRepo.WithTx(tx).Create(ctx, event)
}
