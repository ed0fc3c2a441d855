package crediterrors

import (
	"net/http"

	"github.com/VonnAirone/leave-management-system/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be a four-digit year",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a decimal number of days",
		http.StatusBadRequest,
	)
	ErrCreditNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave credit record not found",
		http.StatusNotFound,
	)
	ErrAdjustmentReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required for a credit adjustment",
		http.StatusBadRequest,
	)
)
