package profile

import "time"

const dateLayout = "2006-01-02"

type CreateProfileRequest struct {
	FirstName  string  `json:"first_name" binding:"required"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   string  `json:"last_name" binding:"required"`
	Sex        *string `json:"sex,omitempty"`

	Address       *string `json:"address,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	DateHired     *string `json:"date_hired,omitempty"`

	OfficeDepartment string  `json:"office_department" binding:"required"`
	PositionTitle    string  `json:"position_title" binding:"required"`
	SalaryGrade      *string `json:"salary_grade,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name,omitempty"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Sex        *string `json:"sex,omitempty"`

	Address       *string `json:"address,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	DateHired     *string `json:"date_hired,omitempty"`

	OfficeDepartment *string `json:"office_department,omitempty"`
	PositionTitle    *string `json:"position_title,omitempty"`
	SalaryGrade      *string `json:"salary_grade,omitempty"`
}

type ProfileResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   string  `json:"last_name"`
	Sex        *string `json:"sex,omitempty"`

	Address       *string `json:"address,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	DateHired     *string `json:"date_hired,omitempty"`

	OfficeDepartment string  `json:"office_department"`
	PositionTitle    string  `json:"position_title"`
	SalaryGrade      *string `json:"salary_grade,omitempty"`
	OfficeID         *int    `json:"office_id,omitempty"`
	PositionID       *int    `json:"position_id,omitempty"`
	SalaryGradeID    *int    `json:"salary_grade_id,omitempty"`

	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

func mapToResponse(p Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:         p.ID.String(),
		FirstName:  p.FirstName,
		MiddleName: p.MiddleName,
		LastName:   p.LastName,
		Sex:        p.Sex,

		Address:       p.Address,
		ContactNumber: p.ContactNumber,

		OfficeDepartment: p.OfficeDepartment,
		PositionTitle:    p.PositionTitle,
		SalaryGrade:      p.SalaryGrade,
		OfficeID:         p.OfficeID,
		PositionID:       p.PositionID,
		SalaryGradeID:    p.SalaryGradeID,

		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.DateOfBirth != nil {
		v := p.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &v
	}
	if p.DateHired != nil {
		v := p.DateHired.Format(dateLayout)
		resp.DateHired = &v
	}
	return resp
}
