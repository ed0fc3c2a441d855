package leaveerrors

import (
	"net/http"

	"github.com/VonnAirone/leave-management-system/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(apperror.CodeInvalidInput, "invalid employee id", http.StatusBadRequest)
	ErrInvalidActorID    = apperror.New(apperror.CodeInvalidInput, "invalid actor id", http.StatusBadRequest)
	ErrInvalidLeaveID    = apperror.New(apperror.CodeInvalidInput, "invalid leave application id", http.StatusBadRequest)

	ErrInvalidDateRange = apperror.New(apperror.CodeInvalidInput, "inclusive end date must not precede start date", http.StatusBadRequest)
	ErrUnknownLeaveType = apperror.New(apperror.CodeInvalidInput, "unknown leave type", http.StatusBadRequest)

	ErrVacationLocationRequired = apperror.New(apperror.CodeInvalidInput, "vacation location is required for this leave type", http.StatusBadRequest)
	ErrInvalidVacationLocation  = apperror.New(apperror.CodeInvalidInput, "vacation location must be within_ph or abroad", http.StatusBadRequest)
	ErrSickDetailsRequired      = apperror.New(apperror.CodeInvalidInput, "sick leave type and illness are required", http.StatusBadRequest)
	ErrInvalidSickLeaveType     = apperror.New(apperror.CodeInvalidInput, "sick leave type must be in_hospital or out_patient", http.StatusBadRequest)
	ErrSpecialIllnessRequired   = apperror.New(apperror.CodeInvalidInput, "specify the illness for special leave benefits for women", http.StatusBadRequest)
	ErrOthersDetailRequired     = apperror.New(apperror.CodeInvalidInput, "specify the leave type under others", http.StatusBadRequest)

	ErrInsufficientCredits = apperror.New(apperror.CodeInvalidState, "insufficient leave credits for the requested period", http.StatusUnprocessableEntity)
	ErrRejectionReasonRequired = apperror.New(apperror.CodeInvalidInput, "a disapproval reason is required", http.StatusBadRequest)
	ErrInvalidDaysSplit        = apperror.New(apperror.CodeInvalidInput, "approved day split must be non-negative and total the working days", http.StatusBadRequest)

	ErrApplicationNotFound      = apperror.New(apperror.CodeNotFound, "leave application not found", http.StatusNotFound)
	ErrInvalidStatusTransition  = apperror.New(apperror.CodeInvalidState, "leave application is not awaiting a decision", http.StatusConflict)
	ErrEmployeeProfileNotFound  = apperror.New(apperror.CodeNotFound, "employee profile not found", http.StatusNotFound)
	ErrForbiddenApplicationRead = apperror.New(apperror.CodeForbidden, "not allowed to read this leave application", http.StatusForbidden)
)
