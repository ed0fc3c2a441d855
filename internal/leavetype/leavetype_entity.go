package leavetype

// Codes with branch-specific detail requirements on the application form.
const (
	CodeVacation         = "VL"
	CodeForced           = "FL"
	CodeSick             = "SL"
	CodeMaternity        = "ML"
	CodePaternity        = "PL"
	CodeSpecialPrivilege = "SPL"
	CodeSoloParent       = "SOLO"
	CodeStudy            = "STL"
	CodeVAWC             = "VAWC"
	CodeRehabilitation   = "RL"
	CodeSpecialWomen     = "SLB"
	CodeCalamity         = "CQ"
	CodeAdoption         = "AL"
	CodeOthers           = "OTH"
)

// Well-known catalog ids referenced by certification figures and default
// credit provisioning. The catalog is seeded with fixed ids so these stay
// stable across deployments.
const (
	VacationID = 1
	SickID     = 3
)

type LeaveType struct {
	ID          int    `gorm:"primaryKey"`
	Code        string `gorm:"type:varchar(10);uniqueIndex;not null"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description *string
	MaxDays     *int
	IsActive    bool `gorm:"default:true"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

// DefaultCatalog is the CS Form No. 6 leave-type list. Immutable reference
// data; seeded once at startup and never edited through the API.
var DefaultCatalog = []LeaveType{
	{ID: 1, Code: CodeVacation, Name: "Vacation Leave", IsActive: true},
	{ID: 2, Code: CodeForced, Name: "Mandatory/Forced Leave", MaxDays: intPtr(5), IsActive: true},
	{ID: 3, Code: CodeSick, Name: "Sick Leave", IsActive: true},
	{ID: 4, Code: CodeMaternity, Name: "Maternity Leave", MaxDays: intPtr(105), IsActive: true},
	{ID: 5, Code: CodePaternity, Name: "Paternity Leave", MaxDays: intPtr(7), IsActive: true},
	{ID: 6, Code: CodeSpecialPrivilege, Name: "Special Privilege Leave", MaxDays: intPtr(3), IsActive: true},
	{ID: 7, Code: CodeSoloParent, Name: "Solo Parent Leave", MaxDays: intPtr(7), IsActive: true},
	{ID: 8, Code: CodeStudy, Name: "Study Leave", MaxDays: intPtr(180), IsActive: true},
	{ID: 9, Code: CodeVAWC, Name: "10-Day VAWC Leave", MaxDays: intPtr(10), IsActive: true},
	{ID: 10, Code: CodeRehabilitation, Name: "Rehabilitation Privilege", MaxDays: intPtr(180), IsActive: true},
	{ID: 11, Code: CodeSpecialWomen, Name: "Special Leave Benefits for Women", MaxDays: intPtr(60), IsActive: true},
	{ID: 12, Code: CodeCalamity, Name: "Special Emergency (Calamity) Leave", MaxDays: intPtr(5), IsActive: true},
	{ID: 13, Code: CodeAdoption, Name: "Adoption Leave", IsActive: true},
	{ID: 14, Code: CodeOthers, Name: "Others", IsActive: true},
}

func intPtr(v int) *int { return &v }
