package auditlog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit actions. The set is closed: anything new must be added here so the
// log listing can label and filter it.
const (
	ActionLeaveApproved    = "leave_approved"
	ActionLeaveRejected    = "leave_rejected"
	ActionEmployeeCreated  = "employee_created"
	ActionEmployeeUpdated  = "employee_updated"
	ActionCreditsAdjusted  = "credits_adjusted"
	ActionWorkerImported   = "worker_imported"
	ActionWorkerContracted = "worker_contract_added"
)

// AuditLog rows are append-only: there is no update or delete path anywhere
// in the codebase, and the repository interface does not expose one.
type AuditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Action      string         `gorm:"type:varchar(50);not null;index"`
	EntityType  string         `gorm:"type:varchar(50);not null"`
	EntityID    string         `gorm:"type:varchar(64);not null;index"`
	PerformedBy uuid.UUID      `gorm:"type:uuid;not null"`
	Details     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
