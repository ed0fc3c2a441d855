package leave

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, app *LeaveApplication) error
	FindByID(ctx context.Context, id string) (*LeaveApplication, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends,
	// so two concurrent decisions serialize on the same application.
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveApplication, error)
	Update(ctx context.Context, app *LeaveApplication) error
	ListAll(ctx context.Context, status, department string, limit, offset int) ([]LeaveApplication, error)
	CountAll(ctx context.Context, status, department string) (int64, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error)
	GetEmployeeSnapshot(ctx context.Context, employeeID string) (*EmployeeSnapshot, error)
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

func (r *repository) Create(ctx context.Context, app *LeaveApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveApplication, error) {
	var app LeaveApplication
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		First(&app, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveApplication, error) {
	var app LeaveApplication
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&app, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repository) Update(ctx context.Context, app *LeaveApplication) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *repository) ListAll(ctx context.Context, status, department string, limit, offset int) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	q := r.db.WithContext(ctx).Preload("LeaveType")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if department != "" {
		q = q.Where("office_department = ?", department)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&apps).Error
	return apps, err
}

func (r *repository) CountAll(ctx context.Context, status, department string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&LeaveApplication{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if department != "" {
		q = q.Where("office_department = ?", department)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// GetEmployeeSnapshot reads the filer's current profile fields so they can be
// frozen onto the application.
func (r *repository) GetEmployeeSnapshot(ctx context.Context, employeeID string) (*EmployeeSnapshot, error) {
	var snap EmployeeSnapshot
	err := r.db.WithContext(ctx).
		Table("profiles").
		Select("first_name, middle_name, last_name, office_department, position_title, salary_grade").
		Where("id = ?", employeeID).
		Take(&snap).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
