package leave

import (
	"time"

	"github.com/VonnAirone/leave-management-system/internal/leavetype"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Application statuses. "draft" exists in the model for forward
// compatibility but no operation creates it; submissions always start at
// "submitted" and end at exactly one of the terminal states.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

const (
	LocationWithinPH = "within_ph"
	LocationAbroad   = "abroad"

	SickInHospital = "in_hospital"
	SickOutPatient = "out_patient"

	RecommendApproval    = "for_approval"
	RecommendDisapproval = "for_disapproval"
)

// LeaveApplication mirrors CS Form No. 6. Sections 1-5 are a point-in-time
// snapshot of the filer's profile so later HR edits never rewrite history.
type LeaveApplication struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ApplicationNumber string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	EmployeeID        uuid.UUID `gorm:"type:uuid;not null;index"`

	// Sections 1-5 snapshot
	OfficeDepartment string    `gorm:"type:varchar(150);not null;index"`
	EmployeeName     string    `gorm:"type:varchar(200);not null"`
	PositionTitle    string    `gorm:"type:varchar(150);not null"`
	Salary           *string   `gorm:"type:varchar(50)"`
	DateOfFiling     time.Time `gorm:"type:date;not null"`

	// Section 6.A
	LeaveTypeID     int `gorm:"not null"`
	LeaveTypeOthers *string

	// Section 6.B details, populated only for the matching leave-type branch
	VacationLocationType   *string `gorm:"type:varchar(20)"`
	VacationLocationDetail *string
	SickLeaveType          *string `gorm:"type:varchar(20)"`
	SickLeaveIllness       *string
	StudyLeaveMasters      bool `gorm:"column:study_leave_completion_masters;not null;default:false"`
	StudyLeaveBarReview    bool `gorm:"column:study_leave_bar_review;not null;default:false"`
	OtherMonetization      bool `gorm:"column:other_purpose_monetization;not null;default:false"`
	OtherTerminalLeave     bool `gorm:"column:other_purpose_terminal_leave;not null;default:false"`
	SpecialLeaveIllness    *string

	// Section 6.C
	NumWorkingDays     int       `gorm:"not null"`
	InclusiveDateStart time.Time `gorm:"type:date;not null"`
	InclusiveDateEnd   time.Time `gorm:"type:date;not null"`

	// Section 6.D
	CommutationRequested bool `gorm:"not null;default:false"`

	// Section 7
	Status string `gorm:"type:varchar(20);not null;default:'submitted';index"`

	// 7.A leave credits certification (filled by HR at decision time)
	CertVLTotalEarned *decimal.Decimal `gorm:"column:cert_vl_total_earned;type:numeric(6,2)"`
	CertVLLessThis    *decimal.Decimal `gorm:"column:cert_vl_less_this;type:numeric(6,2)"`
	CertVLBalance     *decimal.Decimal `gorm:"column:cert_vl_balance;type:numeric(6,2)"`
	CertSLTotalEarned *decimal.Decimal `gorm:"column:cert_sl_total_earned;type:numeric(6,2)"`
	CertSLLessThis    *decimal.Decimal `gorm:"column:cert_sl_less_this;type:numeric(6,2)"`
	CertSLBalance     *decimal.Decimal `gorm:"column:cert_sl_balance;type:numeric(6,2)"`
	CertAsOfDate      *time.Time       `gorm:"type:date"`

	// 7.B recommendation
	Recommendation                 *string `gorm:"type:varchar(20)"`
	RecommendationDisapprovalReason *string
	RecommendedBy                  *uuid.UUID `gorm:"type:uuid"`

	// 7.C/D outcome
	ApprovedDaysWithPay    *decimal.Decimal `gorm:"type:numeric(6,2)"`
	ApprovedDaysWithoutPay *decimal.Decimal `gorm:"type:numeric(6,2)"`
	ApprovedOthers         *string
	DisapprovalReason      *string
	ActionedBy             *uuid.UUID `gorm:"type:uuid"`
	ActionedAt             *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	LeaveType *leavetype.LeaveType `gorm:"foreignKey:LeaveTypeID"`
}

func (LeaveApplication) TableName() string {
	return "leave_applications"
}

// EmployeeSnapshot carries the profile fields frozen onto an application at
// filing time.
type EmployeeSnapshot struct {
	FirstName        string
	MiddleName       *string
	LastName         string
	OfficeDepartment string
	PositionTitle    string
	SalaryGrade      *string
}

// FormName renders "Last, First Middle" as printed on the form.
func (s EmployeeSnapshot) FormName() string {
	name := s.LastName + ", " + s.FirstName
	if s.MiddleName != nil && *s.MiddleName != "" {
		name += " " + *s.MiddleName
	}
	return name
}
