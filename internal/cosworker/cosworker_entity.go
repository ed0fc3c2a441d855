package cosworker

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract statuses derived from the contract end date, never set by clients.
const (
	StatusActive   = "active"
	StatusExpiring = "expiring"
	StatusExpired  = "expired"
)

// Days remaining at or under this threshold flag a contract as expiring.
const ExpiringThresholdDays = 30

const (
	SexMale   = "male"
	SexFemale = "female"
)

const (
	EmploymentCOS         = "cos"
	EmploymentJobOrder    = "jo"
	EmploymentContractual = "contractual"
)

// COSWorker is a contract-of-service or job-order worker. Workers are not
// system users; they exist only as HR records and have no leave credits.
type COSWorker struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName  string    `gorm:"type:varchar(100);not null;index:idx_cos_workers_name"`
	MiddleName *string   `gorm:"type:varchar(100)"`
	LastName   string    `gorm:"type:varchar(100);not null;index:idx_cos_workers_name"`
	Sex        *string   `gorm:"type:varchar(10)"`
	Address    *string
	ContactNumber *string    `gorm:"type:varchar(50)"`
	DateOfBirth   *time.Time `gorm:"type:date"`

	// Free text as it arrived on the sheet, plus the catalog ids when the
	// text matched a reference row.
	Office        string `gorm:"type:varchar(150);not null;index"`
	PositionTitle string `gorm:"type:varchar(150);not null"`
	OfficeID      *int   `gorm:"index"`
	PositionID    *int

	EmploymentType string  `gorm:"type:varchar(20);not null;default:'cos'"`
	NatureOfHiring string  `gorm:"type:varchar(20);not null;default:'contractual'"`
	FundSource     string  `gorm:"type:varchar(20);not null;default:'mooe'"`
	MonthlyRate    *decimal.Decimal `gorm:"type:numeric(12,2)"`

	ContractStart time.Time `gorm:"type:date;not null"`
	ContractEnd   time.Time `gorm:"type:date;not null;index"`
	Status        string    `gorm:"type:varchar(20);not null;index"`

	Remarks *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (COSWorker) TableName() string {
	return "cos_workers"
}
