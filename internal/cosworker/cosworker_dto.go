package cosworker

import "time"

type CreateWorkerRequest struct {
	FirstName     string  `json:"first_name" binding:"required"`
	MiddleName    *string `json:"middle_name,omitempty"`
	LastName      string  `json:"last_name" binding:"required"`
	Sex           *string `json:"sex,omitempty"`
	Address       *string `json:"address,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`

	Office        string `json:"office" binding:"required"`
	PositionTitle string `json:"position_title" binding:"required"`

	EmploymentType *string  `json:"employment_type,omitempty"`
	NatureOfHiring *string  `json:"nature_of_hiring,omitempty"`
	FundSource     *string  `json:"fund_source,omitempty"`
	MonthlyRate    *float64 `json:"monthly_rate,omitempty"`

	ContractStart string  `json:"contract_start" binding:"required,datetime=2006-01-02"`
	ContractEnd   string  `json:"contract_end" binding:"required,datetime=2006-01-02"`
	Remarks       *string `json:"remarks,omitempty"`
}

type UpdateWorkerRequest struct {
	FirstName     *string  `json:"first_name,omitempty"`
	MiddleName    *string  `json:"middle_name,omitempty"`
	LastName      *string  `json:"last_name,omitempty"`
	Sex           *string  `json:"sex,omitempty"`
	Address       *string  `json:"address,omitempty"`
	ContactNumber *string  `json:"contact_number,omitempty"`
	DateOfBirth   *string  `json:"date_of_birth,omitempty"`
	Office        *string  `json:"office,omitempty"`
	PositionTitle *string  `json:"position_title,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	NatureOfHiring *string `json:"nature_of_hiring,omitempty"`
	FundSource     *string `json:"fund_source,omitempty"`
	MonthlyRate    *float64 `json:"monthly_rate,omitempty"`
	ContractStart  *string  `json:"contract_start,omitempty"`
	ContractEnd    *string  `json:"contract_end,omitempty"`
	Remarks        *string  `json:"remarks,omitempty"`
}

type WorkerResponse struct {
	ID            string  `json:"id"`
	FirstName     string  `json:"first_name"`
	MiddleName    *string `json:"middle_name,omitempty"`
	LastName      string  `json:"last_name"`
	Sex           *string `json:"sex,omitempty"`
	Address       *string `json:"address,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`

	Office        string `json:"office"`
	PositionTitle string `json:"position_title"`
	OfficeID      *int   `json:"office_id,omitempty"`
	PositionID    *int   `json:"position_id,omitempty"`

	EmploymentType string   `json:"employment_type"`
	NatureOfHiring string   `json:"nature_of_hiring"`
	FundSource     string   `json:"fund_source"`
	MonthlyRate    *float64 `json:"monthly_rate,omitempty"`

	ContractStart string  `json:"contract_start"`
	ContractEnd   string  `json:"contract_end"`
	Status        string  `json:"status"`
	DaysLeft      int     `json:"days_left"`
	Remarks       *string `json:"remarks,omitempty"`

	CreatedAt string `json:"created_at"`
}

// RowError reports a spreadsheet row that could not be imported. Row numbers
// are 1-based as shown in the sheet.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type BulkImportResult struct {
	Total   int           `json:"total"`
	Created int           `json:"created"`
	Errors  []RowError    `json:"errors"`
	Workers []WorkerResponse `json:"workers"`
}

type WorkerStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Expiring int64 `json:"expiring"`
	Expired  int64 `json:"expired"`
}

const dateLayout = "2006-01-02"

func mapToResponse(w COSWorker, now time.Time) WorkerResponse {
	resp := WorkerResponse{
		ID:            w.ID.String(),
		FirstName:     w.FirstName,
		MiddleName:    w.MiddleName,
		LastName:      w.LastName,
		Sex:           w.Sex,
		Address:       w.Address,
		ContactNumber: w.ContactNumber,

		Office:        w.Office,
		PositionTitle: w.PositionTitle,
		OfficeID:      w.OfficeID,
		PositionID:    w.PositionID,

		EmploymentType: w.EmploymentType,
		NatureOfHiring: w.NatureOfHiring,
		FundSource:     w.FundSource,

		ContractStart: w.ContractStart.Format(dateLayout),
		ContractEnd:   w.ContractEnd.Format(dateLayout),
		Status:        ComputeStatus(w.ContractEnd, now),
		DaysLeft:      DaysLeft(w.ContractEnd, now),
		Remarks:       w.Remarks,

		CreatedAt: w.CreatedAt.UTC().Format(time.RFC3339),
	}
	if w.DateOfBirth != nil {
		v := w.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &v
	}
	if w.MonthlyRate != nil {
		v := w.MonthlyRate.InexactFloat64()
		resp.MonthlyRate = &v
	}
	return resp
}
