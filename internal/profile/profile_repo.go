package profile

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	List(ctx context.Context, office, search string, activeOnly bool, limit, offset int) ([]Profile, error)
	Count(ctx context.Context, office, search string, activeOnly bool) (int64, error)
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

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) applyFilters(q *gorm.DB, office, search string, activeOnly bool) *gorm.DB {
	if office != "" {
		q = q.Where("office_department = ?", office)
	}
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR position_title ILIKE ?", pattern, pattern, pattern)
	}
	if activeOnly {
		q = q.Where("is_active = TRUE")
	}
	return q
}

func (r *repository) List(ctx context.Context, office, search string, activeOnly bool, limit, offset int) ([]Profile, error) {
	var profiles []Profile
	q := r.applyFilters(r.db.WithContext(ctx), office, search, activeOnly)
	err := q.Order("last_name ASC, first_name ASC").Limit(limit).Offset(offset).Find(&profiles).Error
	return profiles, err
}

func (r *repository) Count(ctx context.Context, office, search string, activeOnly bool) (int64, error) {
	var count int64
	q := r.applyFilters(r.db.WithContext(ctx).Model(&Profile{}), office, search, activeOnly)
	err := q.Count(&count).Error
	return count, err
}
