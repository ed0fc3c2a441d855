package cosworkererrors

import (
	"net/http"

	"github.com/VonnAirone/leave-management-system/internal/shared/apperror"
)

var (
	ErrInvalidWorkerID   = apperror.New(apperror.CodeInvalidInput, "invalid worker id", http.StatusBadRequest)
	ErrInvalidActorID    = apperror.New(apperror.CodeInvalidInput, "invalid actor id", http.StatusBadRequest)
	ErrWorkerNotFound    = apperror.New(apperror.CodeNotFound, "worker not found", http.StatusNotFound)
	ErrInvalidDateRange  = apperror.New(apperror.CodeInvalidInput, "contract end must not precede contract start", http.StatusBadRequest)
	ErrInvalidSex        = apperror.New(apperror.CodeInvalidInput, "sex must be male or female", http.StatusBadRequest)
	ErrEmptyWorkbook     = apperror.New(apperror.CodeInvalidInput, "workbook has no data rows", http.StatusBadRequest)
	ErrUnreadableWorkbook = apperror.New(apperror.CodeInvalidInput, "workbook could not be read", http.StatusBadRequest)
	ErrNoImportableRows  = apperror.New(apperror.CodeInvalidInput, "no importable rows found", http.StatusUnprocessableEntity)
)
