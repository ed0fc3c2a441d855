package credit

type SetCreditsRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID int     `json:"leave_type_id" binding:"required"`
	Year        int     `json:"year" binding:"required"`
	Earned      float64 `json:"earned" binding:"min=0"`
}

type AdjustCreditsRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID int     `json:"leave_type_id" binding:"required"`
	Year        int     `json:"year" binding:"required"`
	Delta       float64 `json:"delta" binding:"required"`
	Reason      string  `json:"reason" binding:"required"`
}

type CreditResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID int     `json:"leave_type_id"`
	Year        int     `json:"year"`
	TotalEarned float64 `json:"total_earned"`
	TotalUsed   float64 `json:"total_used"`
	Balance     float64 `json:"balance"`
}
