package refdata

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=refdata_repo.go -destination=mock/refdata_repo_mock.go -package=mock

type Repository interface {
	ListOffices(ctx context.Context) ([]Office, error)
	ListPositions(ctx context.Context) ([]Position, error)
	ListSalaryGrades(ctx context.Context) ([]SalaryGrade, error)
	FindOfficeByName(ctx context.Context, name string) (*Office, error)
	FindPositionByTitle(ctx context.Context, title string) (*Position, error)
	FindSalaryGradeByGrade(ctx context.Context, grade string) (*SalaryGrade, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListOffices(ctx context.Context) ([]Office, error) {
	var offices []Office
	err := r.db.WithContext(ctx).Where("is_active = TRUE").Order("name ASC").Find(&offices).Error
	return offices, err
}

func (r *repository) ListPositions(ctx context.Context) ([]Position, error) {
	var positions []Position
	err := r.db.WithContext(ctx).Where("is_active = TRUE").Order("title ASC").Find(&positions).Error
	return positions, err
}

func (r *repository) ListSalaryGrades(ctx context.Context) ([]SalaryGrade, error) {
	var grades []SalaryGrade
	err := r.db.WithContext(ctx).Order("id ASC").Find(&grades).Error
	return grades, err
}

func (r *repository) FindOfficeByName(ctx context.Context, name string) (*Office, error) {
	var office Office
	err := r.db.WithContext(ctx).First(&office, "LOWER(name) = LOWER(?)", name).Error
	if err != nil {
		return nil, err
	}
	return &office, nil
}

func (r *repository) FindPositionByTitle(ctx context.Context, title string) (*Position, error) {
	var position Position
	err := r.db.WithContext(ctx).First(&position, "LOWER(title) = LOWER(?)", title).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *repository) FindSalaryGradeByGrade(ctx context.Context, grade string) (*SalaryGrade, error) {
	var sg SalaryGrade
	err := r.db.WithContext(ctx).First(&sg, "LOWER(grade) = LOWER(?)", grade).Error
	if err != nil {
		return nil, err
	}
	return &sg, nil
}
