package auditlog

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auditlog_repo.go -destination=mock/auditlog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *AuditLog) error
	List(ctx context.Context, action string, limit, offset int) ([]AuditLog, error)
	Count(ctx context.Context, action string) (int64, error)
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

func (r *repository) Create(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) List(ctx context.Context, action string, limit, offset int) ([]AuditLog, error) {
	var logs []AuditLog
	db := r.db.WithContext(ctx).Order("created_at DESC")
	if action != "" {
		db = db.Where("action = ?", action)
	}
	err := db.Limit(limit).Offset(offset).Find(&logs).Error
	return logs, err
}

func (r *repository) Count(ctx context.Context, action string) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&AuditLog{})
	if action != "" {
		db = db.Where("action = ?", action)
	}
	err := db.Count(&count).Error
	return count, err
}
