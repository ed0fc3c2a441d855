package cosworker

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/auditlog"
	cosworkererrors "github.com/VonnAirone/leave-management-system/internal/cosworker/errors"
	"github.com/VonnAirone/leave-management-system/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Spreadsheet rows insert concurrently, capped so a large import cannot
// saturate the connection pool.
const bulkInsertConcurrency = 5

//go:generate mockgen -source=cosworker_service.go -destination=mock/cosworker_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, actorID string, req CreateWorkerRequest) (WorkerResponse, error)
	Update(ctx context.Context, actorID, workerID string, req UpdateWorkerRequest) (WorkerResponse, error)
	Delete(ctx context.Context, actorID, workerID string) error
	GetByID(ctx context.Context, workerID string) (WorkerResponse, error)
	List(ctx context.Context, status, office, search string, page, pageSize int) ([]WorkerResponse, int64, error)
	Stats(ctx context.Context) (WorkerStats, error)
	History(ctx context.Context, firstName, lastName string) ([]WorkerResponse, error)
	ImportWorkbook(ctx context.Context, actorID string, r io.Reader) (BulkImportResult, error)
}

// Resolver maps free-text office and position names onto reference rows.
// A miss returns (0, nil).
type Resolver interface {
	ResolveOffice(ctx context.Context, name string) (int, error)
	ResolvePosition(ctx context.Context, title string) (int, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	auditRepo auditlog.Repository
	refs      Resolver
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(db *gorm.DB, repo Repository, auditRepo auditlog.Repository, refs Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("cosworker.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cosworker.service")
	}
	return &service{db: db, repo: repo, auditRepo: auditRepo, refs: refs, logger: l, now: time.Now}
}

// resolveRefs pins the worker's free-text office and position to catalog ids.
// Spreadsheet spellings that match no catalog row leave the ids nil; the text
// columns stay authoritative either way.
func (s *service) resolveRefs(ctx context.Context, w *COSWorker) {
	if s.refs == nil {
		return
	}
	if id, err := s.refs.ResolveOffice(ctx, w.Office); err != nil {
		s.logger.Warn("office lookup failed", zap.String("office", w.Office), zap.Error(err))
	} else if id > 0 {
		w.OfficeID = &id
	}
	if id, err := s.refs.ResolvePosition(ctx, w.PositionTitle); err != nil {
		s.logger.Warn("position lookup failed", zap.String("position", w.PositionTitle), zap.Error(err))
	} else if id > 0 {
		w.PositionID = &id
	}
}

func (s *service) buildWorker(req CreateWorkerRequest) (*COSWorker, error) {
	start, err := time.Parse(dateLayout, req.ContractStart)
	if err != nil {
		return nil, cosworkererrors.ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, req.ContractEnd)
	if err != nil {
		return nil, cosworkererrors.ErrInvalidDateRange
	}
	if end.Before(start) {
		return nil, cosworkererrors.ErrInvalidDateRange
	}

	if req.Sex != nil && *req.Sex != SexMale && *req.Sex != SexFemale {
		return nil, cosworkererrors.ErrInvalidSex
	}

	w := &COSWorker{
		ID:            uuid.New(),
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Sex:           req.Sex,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Office:        req.Office,
		PositionTitle: req.PositionTitle,

		EmploymentType: EmploymentCOS,
		NatureOfHiring: "contractual",
		FundSource:     "mooe",

		ContractStart: start,
		ContractEnd:   end,
		Status:        ComputeStatus(end, s.now().UTC()),
		Remarks:       req.Remarks,
	}
	if req.EmploymentType != nil && *req.EmploymentType != "" {
		w.EmploymentType = *req.EmploymentType
	}
	if req.NatureOfHiring != nil && *req.NatureOfHiring != "" {
		w.NatureOfHiring = *req.NatureOfHiring
	}
	if req.FundSource != nil && *req.FundSource != "" {
		w.FundSource = *req.FundSource
	}
	if req.DateOfBirth != nil {
		if dob, err := time.Parse(dateLayout, *req.DateOfBirth); err == nil {
			w.DateOfBirth = &dob
		}
	}
	if req.MonthlyRate != nil && *req.MonthlyRate > 0 {
		rate := decimal.NewFromFloat(*req.MonthlyRate)
		w.MonthlyRate = &rate
	}
	return w, nil
}

func (s *service) Create(ctx context.Context, actorID string, req CreateWorkerRequest) (WorkerResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return WorkerResponse{}, cosworkererrors.ErrInvalidActorID
	}

	w, err := s.buildWorker(req)
	if err != nil {
		return WorkerResponse{}, err
	}
	s.resolveRefs(ctx, w)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return WorkerResponse{}, tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, w); err != nil {
		s.logger.Error("create worker failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	if err := auditlog.AppendTx(ctx, tx, s.auditRepo, auditlog.Entry{
		Action:      auditlog.ActionWorkerContracted,
		EntityType:  "cos_worker",
		EntityID:    w.ID.String(),
		PerformedBy: actorUUID,
		Details: map[string]any{
			"name":           w.LastName + ", " + w.FirstName,
			"office":         w.Office,
			"position":       w.PositionTitle,
			"contract_start": req.ContractStart,
			"contract_end":   req.ContractEnd,
		},
	}); err != nil {
		return WorkerResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return WorkerResponse{}, err
	}

	s.logger.Info("worker contract recorded",
		zap.String("worker_id", w.ID.String()),
		zap.String("office", w.Office),
		zap.String("status", w.Status),
	)
	return mapToResponse(*w, s.now().UTC()), nil
}

func (s *service) Update(ctx context.Context, actorID, workerID string, req UpdateWorkerRequest) (WorkerResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return WorkerResponse{}, cosworkererrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(workerID); err != nil {
		return WorkerResponse{}, cosworkererrors.ErrInvalidWorkerID
	}

	w, err := s.repo.FindByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkerResponse{}, cosworkererrors.ErrWorkerNotFound
		}
		return WorkerResponse{}, err
	}

	if err := applyUpdate(w, req); err != nil {
		return WorkerResponse{}, err
	}
	s.resolveRefs(ctx, w)
	w.Status = ComputeStatus(w.ContractEnd, s.now().UTC())

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return WorkerResponse{}, tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, w); err != nil {
		return WorkerResponse{}, err
	}

	if err := auditlog.AppendTx(ctx, tx, s.auditRepo, auditlog.Entry{
		Action:      auditlog.ActionWorkerContracted,
		EntityType:  "cos_worker",
		EntityID:    w.ID.String(),
		PerformedBy: actorUUID,
		Details: map[string]any{
			"name":         w.LastName + ", " + w.FirstName,
			"contract_end": w.ContractEnd.Format(dateLayout),
			"mode":         "update",
		},
	}); err != nil {
		return WorkerResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return WorkerResponse{}, err
	}
	return mapToResponse(*w, s.now().UTC()), nil
}

func (s *service) Delete(ctx context.Context, actorID, workerID string) error {
	if _, err := uuid.Parse(actorID); err != nil {
		return cosworkererrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(workerID); err != nil {
		return cosworkererrors.ErrInvalidWorkerID
	}

	if _, err := s.repo.FindByID(ctx, workerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cosworkererrors.ErrWorkerNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, workerID)
}

func (s *service) GetByID(ctx context.Context, workerID string) (WorkerResponse, error) {
	if _, err := uuid.Parse(workerID); err != nil {
		return WorkerResponse{}, cosworkererrors.ErrInvalidWorkerID
	}

	w, err := s.repo.FindByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkerResponse{}, cosworkererrors.ErrWorkerNotFound
		}
		return WorkerResponse{}, err
	}
	return mapToResponse(*w, s.now().UTC()), nil
}

func (s *service) List(ctx context.Context, status, office, search string, page, pageSize int) ([]WorkerResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	total, err := s.repo.Count(ctx, status, office, search)
	if err != nil {
		return nil, 0, err
	}

	workers, err := s.repo.List(ctx, status, office, search, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	now := s.now().UTC()
	resp := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		resp[i] = mapToResponse(w, now)
	}
	return resp, total, nil
}

func (s *service) Stats(ctx context.Context) (WorkerStats, error) {
	return s.repo.Stats(ctx, s.now().UTC())
}

func (s *service) History(ctx context.Context, firstName, lastName string) ([]WorkerResponse, error) {
	if firstName == "" {
		return nil, apperror.RequiredField("first_name")
	}
	if lastName == "" {
		return nil, apperror.RequiredField("last_name")
	}

	workers, err := s.repo.ListByName(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	resp := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		resp[i] = mapToResponse(w, now)
	}
	return resp, nil
}

// ImportWorkbook parses an uploaded xlsx sheet and inserts the valid rows.
// Each row succeeds or fails on its own; one bad row never aborts the batch.
func (s *service) ImportWorkbook(ctx context.Context, actorID string, r io.Reader) (BulkImportResult, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return BulkImportResult{}, cosworkererrors.ErrInvalidActorID
	}

	parsed, rowErrors, err := ParseWorkbook(r)
	if err != nil {
		return BulkImportResult{}, err
	}
	if len(parsed) == 0 && len(rowErrors) == 0 {
		return BulkImportResult{}, cosworkererrors.ErrNoImportableRows
	}

	result := BulkImportResult{
		Total:  len(parsed) + len(rowErrors),
		Errors: rowErrors,
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkInsertConcurrency)

	now := s.now().UTC()
	for _, row := range parsed {
		row := row
		g.Go(func() error {
			w, buildErr := s.buildWorker(row.Request)
			if buildErr == nil {
				s.resolveRefs(gctx, w)
				buildErr = s.repo.Create(gctx, w)
			}

			mu.Lock()
			defer mu.Unlock()
			if buildErr != nil {
				result.Errors = append(result.Errors, RowError{
					Row:    row.Row,
					Reason: buildErr.Error(),
				})
				return nil
			}
			result.Created++
			result.Workers = append(result.Workers, mapToResponse(*w, now))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BulkImportResult{}, err
	}

	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Row < result.Errors[j].Row
	})

	if auditErr := s.auditRepo.Create(ctx, mustBuildRow(auditlog.Entry{
		Action:      auditlog.ActionWorkerImported,
		EntityType:  "cos_worker",
		EntityID:    uuid.New().String(),
		PerformedBy: actorUUID,
		Details: map[string]any{
			"total":   result.Total,
			"created": result.Created,
			"errors":  len(result.Errors),
		},
	})); auditErr != nil {
		s.logger.Error("import audit append failed", zap.Error(auditErr))
	}

	s.logger.Info("worker import finished",
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func mustBuildRow(entry auditlog.Entry) *auditlog.AuditLog {
	row, err := auditlog.BuildRow(entry)
	if err != nil {
		// Details maps built here only hold scalars; marshalling cannot fail.
		panic(err)
	}
	return row
}

func applyUpdate(w *COSWorker, req UpdateWorkerRequest) error {
	if req.FirstName != nil {
		w.FirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		w.MiddleName = req.MiddleName
	}
	if req.LastName != nil {
		w.LastName = *req.LastName
	}
	if req.Sex != nil {
		if *req.Sex != SexMale && *req.Sex != SexFemale {
			return cosworkererrors.ErrInvalidSex
		}
		w.Sex = req.Sex
	}
	if req.Address != nil {
		w.Address = req.Address
	}
	if req.ContactNumber != nil {
		w.ContactNumber = req.ContactNumber
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return cosworkererrors.ErrInvalidDateRange
		}
		w.DateOfBirth = &dob
	}
	if req.Office != nil {
		w.Office = *req.Office
	}
	if req.PositionTitle != nil {
		w.PositionTitle = *req.PositionTitle
	}
	if req.EmploymentType != nil {
		w.EmploymentType = *req.EmploymentType
	}
	if req.NatureOfHiring != nil {
		w.NatureOfHiring = *req.NatureOfHiring
	}
	if req.FundSource != nil {
		rate := *req.FundSource
		w.FundSource = rate
	}
	if req.MonthlyRate != nil {
		rate := decimal.NewFromFloat(*req.MonthlyRate)
		w.MonthlyRate = &rate
	}
	if req.ContractStart != nil {
		start, err := time.Parse(dateLayout, *req.ContractStart)
		if err != nil {
			return cosworkererrors.ErrInvalidDateRange
		}
		w.ContractStart = start
	}
	if req.ContractEnd != nil {
		end, err := time.Parse(dateLayout, *req.ContractEnd)
		if err != nil {
			return cosworkererrors.ErrInvalidDateRange
		}
		w.ContractEnd = end
	}
	if w.ContractEnd.Before(w.ContractStart) {
		return cosworkererrors.ErrInvalidDateRange
	}
	if req.Remarks != nil {
		w.Remarks = req.Remarks
	}
	return nil
}
