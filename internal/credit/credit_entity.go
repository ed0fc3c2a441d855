package credit

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeaveCredit is the per-employee, per-leave-type, per-year balance row.
// TotalUsed only ever increases, and only through an approved application's
// debit; manual adjustments touch TotalEarned alone.
type LeaveCredit struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_credit_employee_type_year"`
	LeaveTypeID int             `gorm:"not null;uniqueIndex:uq_credit_employee_type_year"`
	Year        int             `gorm:"not null;uniqueIndex:uq_credit_employee_type_year"`
	TotalEarned decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	TotalUsed   decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`
	UpdatedAt   time.Time
}

func (LeaveCredit) TableName() string {
	return "leave_credits"
}

// Balance is earned minus used. It can go negative when two racing
// submissions both pass the pre-check; nothing downstream assumes otherwise.
func (c LeaveCredit) Balance() decimal.Decimal {
	return c.TotalEarned.Sub(c.TotalUsed)
}
