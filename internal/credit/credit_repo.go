package credit

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=credit_repo.go -destination=mock/credit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByKey(ctx context.Context, employeeID string, leaveTypeID, year int) (*LeaveCredit, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveCredit, error)
	Upsert(ctx context.Context, c *LeaveCredit) error
	Save(ctx context.Context, c *LeaveCredit) error
	IncrementUsed(ctx context.Context, employeeID string, leaveTypeID, year int, days decimal.Decimal) (bool, error)
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

func (r *repository) FindByKey(ctx context.Context, employeeID string, leaveTypeID, year int) (*LeaveCredit, error) {
	var c LeaveCredit
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string, year int) ([]LeaveCredit, error) {
	var credits []LeaveCredit
	db := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if year > 0 {
		db = db.Where("year = ?", year)
	}
	err := db.Order("leave_type_id ASC").Find(&credits).Error
	return credits, err
}

// Upsert overwrites earned and used on natural-key conflict. "Create new"
// deliberately replaces rather than errors.
func (r *repository) Upsert(ctx context.Context, c *LeaveCredit) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"},
				{Name: "leave_type_id"},
				{Name: "year"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"total_earned", "total_used", "updated_at"}),
		}).
		Create(c).Error
}

func (r *repository) Save(ctx context.Context, c *LeaveCredit) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// IncrementUsed adds days to total_used for the matching ledger row. Returns
// false when no row matched; the caller decides whether that is an error.
func (r *repository) IncrementUsed(ctx context.Context, employeeID string, leaveTypeID, year int, days decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveCredit{}).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		Update("total_used", gorm.Expr("total_used + ?", days))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
