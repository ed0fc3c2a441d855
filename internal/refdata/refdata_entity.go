package refdata

import "github.com/shopspring/decimal"

type Office struct {
	ID       int    `gorm:"primaryKey"`
	Name     string `gorm:"type:varchar(150);uniqueIndex;not null"`
	IsActive bool   `gorm:"not null;default:true"`
}

func (Office) TableName() string {
	return "offices"
}

type Position struct {
	ID       int    `gorm:"primaryKey"`
	Title    string `gorm:"type:varchar(150);uniqueIndex;not null"`
	IsActive bool   `gorm:"not null;default:true"`
}

func (Position) TableName() string {
	return "positions"
}

type SalaryGrade struct {
	ID          int             `gorm:"primaryKey"`
	Grade       string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	MonthlyRate decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (SalaryGrade) TableName() string {
	return "salary_grades"
}

// Fixed vocabularies that never get their own tables.
var (
	EmploymentTypes = []string{"cos", "jo", "contractual"}
	HiringNatures   = []string{"contractual", "casual", "temporary", "permanent"}
	FundSources     = []string{"mooe", "gf", "sef", "trust"}
	Sexes           = []string{"male", "female"}
)
