package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

type LeaveDecidedEvent struct {
	EventType         string    `json:"event_type"`
	RequestID         string    `json:"request_id,omitempty"`
	ApplicationID     string    `json:"application_id"`
	ApplicationNumber string    `json:"application_number"`
	EmployeeID        string    `json:"employee_id"`
	LeaveTypeCode     string    `json:"leave_type_code"`
	Status            string    `json:"status"`
	NumWorkingDays    float64   `json:"num_working_days"`
	OccurredAt        time.Time `json:"occurred_at"`
}
