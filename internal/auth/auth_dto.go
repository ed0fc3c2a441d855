package auth

import "github.com/VonnAirone/leave-management-system/internal/shared/token"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterRequest creates a login together with its employee profile, HR-only.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`

	FirstName  string  `json:"first_name" binding:"required"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   string  `json:"last_name" binding:"required"`
	Sex        *string `json:"sex,omitempty"`

	OfficeDepartment string  `json:"office_department" binding:"required"`
	PositionTitle    string  `json:"position_title" binding:"required"`
	SalaryGrade      *string `json:"salary_grade,omitempty"`
	DateHired        *string `json:"date_hired,omitempty"`
}

// BulkProvisionRequest registers a batch of employees sharing one office.
type BulkProvisionRequest struct {
	OfficeDepartment string             `json:"office_department" binding:"required"`
	Rows             []BulkProvisionRow `json:"rows" binding:"required,min=1,dive"`
}

type BulkProvisionRow struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`

	FirstName  string  `json:"first_name" binding:"required"`
	MiddleName *string `json:"middle_name,omitempty"`
	LastName   string  `json:"last_name" binding:"required"`

	PositionTitle string  `json:"position_title" binding:"required"`
	SalaryGrade   *string `json:"salary_grade,omitempty"`
}

// BulkProvisionRowError reports a row that could not be provisioned. Rows are
// 1-based in request order.
type BulkProvisionRowError struct {
	Row     int    `json:"row"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type BulkProvisionResult struct {
	Total   int                     `json:"total"`
	Created int                     `json:"created"`
	Errors  []BulkProvisionRowError `json:"errors"`
	Users   []UserResponse          `json:"users"`
}

type LoginResponse struct {
	token.TokenPair
	User UserResponse `json:"user"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
}
