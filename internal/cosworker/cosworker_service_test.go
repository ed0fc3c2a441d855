package cosworker

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/VonnAirone/leave-management-system/internal/auditlog"
	cosworkererrors "github.com/VonnAirone/leave-management-system/internal/cosworker/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeWorkerRepo struct {
	createFn func(ctx context.Context, w *COSWorker) error
	findFn   func(ctx context.Context, id string) (*COSWorker, error)

	mu      sync.Mutex
	created []*COSWorker
	updated []*COSWorker
	deleted []string
}

func (f *fakeWorkerRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeWorkerRepo) Create(ctx context.Context, w *COSWorker) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, w); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, w)
	return nil
}

func (f *fakeWorkerRepo) FindByID(ctx context.Context, id string) (*COSWorker, error) {
	if f.findFn != nil {
		return f.findFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w *COSWorker) error {
	f.updated = append(f.updated, w)
	return nil
}

func (f *fakeWorkerRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeWorkerRepo) List(ctx context.Context, status, office, search string, limit, offset int) ([]COSWorker, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) Count(ctx context.Context, status, office, search string) (int64, error) {
	return 0, nil
}

func (f *fakeWorkerRepo) ListByName(ctx context.Context, firstName, lastName string) ([]COSWorker, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) Stats(ctx context.Context, now time.Time) (WorkerStats, error) {
	return WorkerStats{}, nil
}

func (f *fakeWorkerRepo) RefreshStatuses(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type fakeAuditRepo struct {
	rows []*auditlog.AuditLog
}

func (f *fakeAuditRepo) WithTx(tx *gorm.DB) auditlog.Repository { return f }

func (f *fakeAuditRepo) Create(ctx context.Context, entry *auditlog.AuditLog) error {
	f.rows = append(f.rows, entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, action string, limit, offset int) ([]auditlog.AuditLog, error) {
	return nil, nil
}

func (f *fakeAuditRepo) Count(ctx context.Context, action string) (int64, error) { return 0, nil }

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

type fakeResolver struct {
	offices   map[string]int
	positions map[string]int
}

func (f *fakeResolver) ResolveOffice(ctx context.Context, name string) (int, error) {
	return f.offices[name], nil
}

func (f *fakeResolver) ResolvePosition(ctx context.Context, title string) (int, error) {
	return f.positions[title], nil
}

func newWorkerService(t *testing.T, repo *fakeWorkerRepo, audit *fakeAuditRepo, now time.Time) (Service, sqlmock.Sqlmock) {
	return newWorkerServiceWithRefs(t, repo, audit, nil, now)
}

func newWorkerServiceWithRefs(t *testing.T, repo *fakeWorkerRepo, audit *fakeAuditRepo, refs Resolver, now time.Time) (Service, sqlmock.Sqlmock) {
	t.Helper()

	gdb, mock := newTestDB(t)
	svc := NewService(gdb, repo, audit, refs).(*service)
	svc.now = func() time.Time { return now }
	return svc, mock
}

func createRequest() CreateWorkerRequest {
	return CreateWorkerRequest{
		FirstName:     "Jose",
		LastName:      "Reyes",
		Office:        "Engineering",
		PositionTitle: "Laborer",
		ContractStart: "2025-01-06",
		ContractEnd:   "2025-12-31",
	}
}

func TestCreateWorkerAppliesDefaultsAndStatus(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeWorkerRepo{}
	audit := &fakeAuditRepo{}
	svc, mock := newWorkerService(t, repo, audit, now)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), uuid.New().String(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, EmploymentCOS, resp.EmploymentType)
	assert.Equal(t, "contractual", resp.NatureOfHiring)
	assert.Equal(t, "mooe", resp.FundSource)
	assert.Equal(t, StatusActive, resp.Status)

	require.Len(t, repo.created, 1)
	require.Len(t, audit.rows, 1)
	assert.Equal(t, auditlog.ActionWorkerContracted, audit.rows[0].Action)
}

func TestCreateWorkerResolvesReferenceIDs(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeWorkerRepo{}
	refs := &fakeResolver{
		offices:   map[string]int{"Engineering": 7},
		positions: map[string]int{"Laborer": 12},
	}
	svc, mock := newWorkerServiceWithRefs(t, repo, &fakeAuditRepo{}, refs, now)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Create(context.Background(), uuid.New().String(), createRequest())
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	w := repo.created[0]
	require.NotNil(t, w.OfficeID)
	assert.Equal(t, 7, *w.OfficeID)
	require.NotNil(t, w.PositionID)
	assert.Equal(t, 12, *w.PositionID)

	// a second worker in an uncatalogued office keeps nil ids
	mock.ExpectBegin()
	mock.ExpectCommit()

	req := createRequest()
	req.Office = "Ad Hoc Task Force"
	req.PositionTitle = "Consultant"
	_, err = svc.Create(context.Background(), uuid.New().String(), req)
	require.NoError(t, err)

	require.Len(t, repo.created, 2)
	assert.Nil(t, repo.created[1].OfficeID)
	assert.Nil(t, repo.created[1].PositionID)
}

func TestCreateWorkerRejectsInvertedContract(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newWorkerService(t, &fakeWorkerRepo{}, &fakeAuditRepo{}, now)

	req := createRequest()
	req.ContractStart = "2025-12-31"
	req.ContractEnd = "2025-01-06"

	_, err := svc.Create(context.Background(), uuid.New().String(), req)
	assert.ErrorIs(t, err, cosworkererrors.ErrInvalidDateRange)
}

func TestCreateWorkerRejectsUnknownSex(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newWorkerService(t, &fakeWorkerRepo{}, &fakeAuditRepo{}, now)

	req := createRequest()
	bad := "other"
	req.Sex = &bad

	_, err := svc.Create(context.Background(), uuid.New().String(), req)
	assert.ErrorIs(t, err, cosworkererrors.ErrInvalidSex)
}

func TestImportWorkbookIsolatesRowFailures(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeWorkerRepo{
		createFn: func(ctx context.Context, w *COSWorker) error {
			if w.FirstName == "Pedro" {
				return errors.New("duplicate key value")
			}
			return nil
		},
	}
	audit := &fakeAuditRepo{}
	svc, _ := newWorkerService(t, repo, audit, now)

	buf := buildWorkbook(t, [][]any{
		{"First Name", "Last Name", "Office", "Position", "Contract Start", "Contract End"},
		{"Jose", "Reyes", "Engineering", "Laborer", "2025-01-06", "2025-12-31"},
		{"Pedro", "Cruz", "Motorpool", "Driver", "2025-01-06", "2025-12-31"},
		{"Maria", "Santos", "Treasury", "Clerk", "2025-01-06", "2025-12-31"},
	})

	result, err := svc.ImportWorkbook(context.Background(), uuid.New().String(), buf)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Reason, "duplicate key")

	require.Len(t, audit.rows, 1)
	assert.Equal(t, auditlog.ActionWorkerImported, audit.rows[0].Action)
}

func TestImportWorkbookMixesParseAndInsertErrors(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeWorkerRepo{}
	svc, _ := newWorkerService(t, repo, &fakeAuditRepo{}, now)

	buf := buildWorkbook(t, [][]any{
		{"First Name", "Last Name", "Office", "Position", "Contract Start", "Contract End"},
		{"Jose", "Reyes", "Engineering", "Laborer", "2025-01-06", "2025-12-31"},
		{"", "Cruz", "Motorpool", "Driver", "2025-01-06", "2025-12-31"},
	})

	result, err := svc.ImportWorkbook(context.Background(), uuid.New().String(), buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Reason, "first name")
}

func TestImportWorkbookErrorsCarrySheetRowNumbers(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeWorkerRepo{
		createFn: func(ctx context.Context, w *COSWorker) error {
			if w.FirstName == "Pedro" {
				return errors.New("duplicate key value")
			}
			return nil
		},
	}
	svc, _ := newWorkerService(t, repo, &fakeAuditRepo{}, now)

	// An unparseable row sits between two insertable ones; the insert failure
	// below it must still report its own sheet row.
	buf := buildWorkbook(t, [][]any{
		{"First Name", "Last Name", "Office", "Position", "Contract Start", "Contract End"},
		{"Jose", "Reyes", "Engineering", "Laborer", "2025-01-06", "2025-12-31"},
		{"", "Cruz", "Motorpool", "Driver", "2025-01-06", "2025-12-31"},
		{"Pedro", "Gomez", "Motorpool", "Driver", "2025-01-06", "2025-12-31"},
	})

	result, err := svc.ImportWorkbook(context.Background(), uuid.New().String(), buf)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Errors, 2)

	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Reason, "first name")
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Reason, "duplicate key")
}

func TestImportWorkbookUnreadableUpload(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newWorkerService(t, &fakeWorkerRepo{}, &fakeAuditRepo{}, now)

	_, err := svc.ImportWorkbook(context.Background(), uuid.New().String(), bytes.NewReader(nil))
	assert.ErrorIs(t, err, cosworkererrors.ErrUnreadableWorkbook)
}

func TestUpdateWorkerRecomputesStatus(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	existing := &COSWorker{
		ID:            uuid.New(),
		FirstName:     "Jose",
		LastName:      "Reyes",
		Office:        "Engineering",
		PositionTitle: "Laborer",
		ContractStart: time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
		ContractEnd:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		Status:        StatusActive,
	}
	repo := &fakeWorkerRepo{
		findFn: func(ctx context.Context, id string) (*COSWorker, error) {
			return existing, nil
		},
	}
	svc, mock := newWorkerService(t, repo, &fakeAuditRepo{}, now)

	mock.ExpectBegin()
	mock.ExpectCommit()

	newEnd := "2025-06-15"
	resp, err := svc.Update(context.Background(), uuid.New().String(), existing.ID.String(), UpdateWorkerRequest{
		ContractEnd: &newEnd,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusExpiring, resp.Status)
	require.Len(t, repo.updated, 1)
}

func TestDeleteWorkerRequiresExistingRow(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newWorkerService(t, &fakeWorkerRepo{}, &fakeAuditRepo{}, now)

	err := svc.Delete(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, cosworkererrors.ErrWorkerNotFound)
}
