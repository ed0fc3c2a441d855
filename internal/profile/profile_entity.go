package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the HR record for a plantilla employee. Its id doubles as the
// employee id carried in JWT claims, leave applications and the credit ledger.
type Profile struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	FirstName  string  `gorm:"type:varchar(100);not null"`
	MiddleName *string `gorm:"type:varchar(100)"`
	LastName   string  `gorm:"type:varchar(100);not null"`
	Sex        *string `gorm:"type:varchar(10)"`

	Address       *string
	ContactNumber *string    `gorm:"type:varchar(50)"`
	DateOfBirth   *time.Time `gorm:"type:date"`
	DateHired     *time.Time `gorm:"type:date"`

	// Text columns drive the CS Form snapshot; the catalog ids are filled
	// when the text matches a reference row.
	OfficeDepartment string  `gorm:"type:varchar(150);not null;index"`
	PositionTitle    string  `gorm:"type:varchar(150);not null"`
	SalaryGrade      *string `gorm:"type:varchar(50)"`
	OfficeID         *int    `gorm:"index"`
	PositionID       *int
	SalaryGradeID    *int

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return "profiles"
}
