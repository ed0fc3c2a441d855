package cosworker

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=cosworker_repo.go -destination=mock/cosworker_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, w *COSWorker) error
	FindByID(ctx context.Context, id string) (*COSWorker, error)
	Update(ctx context.Context, w *COSWorker) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status, office, search string, limit, offset int) ([]COSWorker, error)
	Count(ctx context.Context, status, office, search string) (int64, error)
	// ListByName returns every contract record sharing the worker's first and
	// last name, newest contract first. Names are the only link between a
	// worker's successive contracts.
	ListByName(ctx context.Context, firstName, lastName string) ([]COSWorker, error)
	Stats(ctx context.Context, now time.Time) (WorkerStats, error)
	// RefreshStatuses recomputes the stored status column from contract_end.
	RefreshStatuses(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, w *COSWorker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*COSWorker, error) {
	var w COSWorker
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) Update(ctx context.Context, w *COSWorker) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&COSWorker{}, "id = ?", id).Error
}

func (r *repository) applyFilters(q *gorm.DB, status, office, search string) *gorm.DB {
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if office != "" {
		q = q.Where("office = ?", office)
	}
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR position_title ILIKE ?", pattern, pattern, pattern)
	}
	return q
}

func (r *repository) List(ctx context.Context, status, office, search string, limit, offset int) ([]COSWorker, error) {
	var workers []COSWorker
	q := r.applyFilters(r.db.WithContext(ctx), status, office, search)
	err := q.Order("contract_end ASC").Limit(limit).Offset(offset).Find(&workers).Error
	return workers, err
}

func (r *repository) Count(ctx context.Context, status, office, search string) (int64, error) {
	var count int64
	q := r.applyFilters(r.db.WithContext(ctx).Model(&COSWorker{}), status, office, search)
	err := q.Count(&count).Error
	return count, err
}

func (r *repository) ListByName(ctx context.Context, firstName, lastName string) ([]COSWorker, error) {
	var workers []COSWorker
	err := r.db.WithContext(ctx).
		Where("LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)", firstName, lastName).
		Order("contract_start DESC").
		Find(&workers).Error
	return workers, err
}

func (r *repository) Stats(ctx context.Context, now time.Time) (WorkerStats, error) {
	var stats WorkerStats
	today := now.UTC().Format("2006-01-02")
	threshold := now.UTC().AddDate(0, 0, ExpiringThresholdDays).Format("2006-01-02")

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE contract_end > ?) AS active,
			COUNT(*) FILTER (WHERE contract_end >= ? AND contract_end <= ?) AS expiring,
			COUNT(*) FILTER (WHERE contract_end < ?) AS expired
		FROM cos_workers
	`, threshold, today, threshold, today).Scan(&stats).Error
	return stats, err
}

func (r *repository) RefreshStatuses(ctx context.Context, now time.Time) (int64, error) {
	today := now.UTC().Format("2006-01-02")
	threshold := now.UTC().AddDate(0, 0, ExpiringThresholdDays).Format("2006-01-02")

	res := r.db.WithContext(ctx).Exec(`
		UPDATE cos_workers
		SET status = CASE
			WHEN contract_end < ? THEN ?
			WHEN contract_end <= ? THEN ?
			ELSE ?
		END,
		updated_at = NOW()
		WHERE status <> CASE
			WHEN contract_end < ? THEN ?
			WHEN contract_end <= ? THEN ?
			ELSE ?
		END
	`, today, StatusExpired, threshold, StatusExpiring, StatusActive,
		today, StatusExpired, threshold, StatusExpiring, StatusActive)
	return res.RowsAffected, res.Error
}
