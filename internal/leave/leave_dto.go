package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func decimalPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := d.InexactFloat64()
	return &v
}

type SubmitLeaveRequest struct {
	LeaveTypeID        int    `json:"leave_type_id" binding:"required"`
	InclusiveDateStart string `json:"inclusive_date_start" binding:"required,datetime=2006-01-02"`
	InclusiveDateEnd   string `json:"inclusive_date_end" binding:"required,datetime=2006-01-02"`

	LeaveTypeOthers        *string `json:"leave_type_others,omitempty"`
	VacationLocationType   *string `json:"vacation_location_type,omitempty"`
	VacationLocationDetail *string `json:"vacation_location_detail,omitempty"`
	SickLeaveType          *string `json:"sick_leave_type,omitempty"`
	SickLeaveIllness       *string `json:"sick_leave_illness,omitempty"`
	StudyLeaveMasters      bool    `json:"study_leave_completion_masters"`
	StudyLeaveBarReview    bool    `json:"study_leave_bar_review"`
	OtherMonetization      bool    `json:"other_purpose_monetization"`
	OtherTerminalLeave     bool    `json:"other_purpose_terminal_leave"`
	SpecialLeaveIllness    *string `json:"special_leave_illness,omitempty"`
	CommutationRequested   bool    `json:"commutation_requested"`
}

type ApproveLeaveRequest struct {
	DaysWithPay    *float64 `json:"days_with_pay,omitempty"`
	DaysWithoutPay *float64 `json:"days_without_pay,omitempty"`
	Others         *string  `json:"others,omitempty"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type LeaveApplicationResponse struct {
	ID                string `json:"id"`
	ApplicationNumber string `json:"application_number"`
	EmployeeID        string `json:"employee_id"`

	OfficeDepartment string  `json:"office_department"`
	EmployeeName     string  `json:"employee_name"`
	PositionTitle    string  `json:"position_title"`
	Salary           *string `json:"salary,omitempty"`
	DateOfFiling     string  `json:"date_of_filing"`

	LeaveTypeID   int     `json:"leave_type_id"`
	LeaveTypeCode string  `json:"leave_type_code,omitempty"`
	LeaveTypeName string  `json:"leave_type_name,omitempty"`
	LeaveTypeOthers *string `json:"leave_type_others,omitempty"`

	VacationLocationType   *string `json:"vacation_location_type,omitempty"`
	VacationLocationDetail *string `json:"vacation_location_detail,omitempty"`
	SickLeaveType          *string `json:"sick_leave_type,omitempty"`
	SickLeaveIllness       *string `json:"sick_leave_illness,omitempty"`
	StudyLeaveMasters      bool    `json:"study_leave_completion_masters"`
	StudyLeaveBarReview    bool    `json:"study_leave_bar_review"`
	OtherMonetization      bool    `json:"other_purpose_monetization"`
	OtherTerminalLeave     bool    `json:"other_purpose_terminal_leave"`
	SpecialLeaveIllness    *string `json:"special_leave_illness,omitempty"`

	NumWorkingDays     int    `json:"num_working_days"`
	InclusiveDateStart string `json:"inclusive_date_start"`
	InclusiveDateEnd   string `json:"inclusive_date_end"`

	CommutationRequested bool   `json:"commutation_requested"`
	Status               string `json:"status"`

	CertAsOfDate      *string  `json:"cert_as_of_date,omitempty"`
	CertVLTotalEarned *float64 `json:"cert_vl_total_earned,omitempty"`
	CertVLLessThis    *float64 `json:"cert_vl_less_this,omitempty"`
	CertVLBalance     *float64 `json:"cert_vl_balance,omitempty"`
	CertSLTotalEarned *float64 `json:"cert_sl_total_earned,omitempty"`
	CertSLLessThis    *float64 `json:"cert_sl_less_this,omitempty"`
	CertSLBalance     *float64 `json:"cert_sl_balance,omitempty"`

	Recommendation                  *string `json:"recommendation,omitempty"`
	RecommendationDisapprovalReason *string `json:"recommendation_disapproval_reason,omitempty"`

	ApprovedDaysWithPay    *float64 `json:"approved_days_with_pay,omitempty"`
	ApprovedDaysWithoutPay *float64 `json:"approved_days_without_pay,omitempty"`
	ApprovedOthers         *string  `json:"approved_others,omitempty"`
	DisapprovalReason      *string  `json:"disapproval_reason,omitempty"`
	ActionedBy             *string  `json:"actioned_by,omitempty"`
	ActionedAt             *string  `json:"actioned_at,omitempty"`

	CreatedAt string `json:"created_at"`
}

func mapToResponse(app LeaveApplication) LeaveApplicationResponse {
	resp := LeaveApplicationResponse{
		ID:                app.ID.String(),
		ApplicationNumber: app.ApplicationNumber,
		EmployeeID:        app.EmployeeID.String(),

		OfficeDepartment: app.OfficeDepartment,
		EmployeeName:     app.EmployeeName,
		PositionTitle:    app.PositionTitle,
		Salary:           app.Salary,
		DateOfFiling:     app.DateOfFiling.Format(dateLayout),

		LeaveTypeID:     app.LeaveTypeID,
		LeaveTypeOthers: app.LeaveTypeOthers,

		VacationLocationType:   app.VacationLocationType,
		VacationLocationDetail: app.VacationLocationDetail,
		SickLeaveType:          app.SickLeaveType,
		SickLeaveIllness:       app.SickLeaveIllness,
		StudyLeaveMasters:      app.StudyLeaveMasters,
		StudyLeaveBarReview:    app.StudyLeaveBarReview,
		OtherMonetization:      app.OtherMonetization,
		OtherTerminalLeave:     app.OtherTerminalLeave,
		SpecialLeaveIllness:    app.SpecialLeaveIllness,

		NumWorkingDays:     app.NumWorkingDays,
		InclusiveDateStart: app.InclusiveDateStart.Format(dateLayout),
		InclusiveDateEnd:   app.InclusiveDateEnd.Format(dateLayout),

		CommutationRequested: app.CommutationRequested,
		Status:               app.Status,

		Recommendation:                  app.Recommendation,
		RecommendationDisapprovalReason: app.RecommendationDisapprovalReason,

		ApprovedOthers:    app.ApprovedOthers,
		DisapprovalReason: app.DisapprovalReason,

		CreatedAt: app.CreatedAt.UTC().Format(time.RFC3339),
	}

	if app.LeaveType != nil {
		resp.LeaveTypeCode = app.LeaveType.Code
		resp.LeaveTypeName = app.LeaveType.Name
	}
	if app.CertAsOfDate != nil {
		v := app.CertAsOfDate.Format(dateLayout)
		resp.CertAsOfDate = &v
	}
	resp.CertVLTotalEarned = decimalPtr(app.CertVLTotalEarned)
	resp.CertVLLessThis = decimalPtr(app.CertVLLessThis)
	resp.CertVLBalance = decimalPtr(app.CertVLBalance)
	resp.CertSLTotalEarned = decimalPtr(app.CertSLTotalEarned)
	resp.CertSLLessThis = decimalPtr(app.CertSLLessThis)
	resp.CertSLBalance = decimalPtr(app.CertSLBalance)
	if app.ApprovedDaysWithPay != nil {
		v := app.ApprovedDaysWithPay.InexactFloat64()
		resp.ApprovedDaysWithPay = &v
	}
	if app.ApprovedDaysWithoutPay != nil {
		v := app.ApprovedDaysWithoutPay.InexactFloat64()
		resp.ApprovedDaysWithoutPay = &v
	}
	if app.ActionedBy != nil {
		v := app.ActionedBy.String()
		resp.ActionedBy = &v
	}
	if app.ActionedAt != nil {
		v := app.ActionedAt.UTC().Format(time.RFC3339)
		resp.ActionedAt = &v
	}
	return resp
}
