package profileerrors

import (
	"errors"
	"net/http"

	"github.com/VonnAirone/leave-management-system/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidEmployeeID = apperror.New(apperror.CodeInvalidInput, "invalid employee id", http.StatusBadRequest)
	ErrInvalidActorID    = apperror.New(apperror.CodeInvalidInput, "invalid actor id", http.StatusBadRequest)
	ErrProfileNotFound   = apperror.New(apperror.CodeNotFound, "employee profile not found", http.StatusNotFound)
	ErrDuplicateProfile  = apperror.New(apperror.CodeConflict, "a profile already exists for this employee", http.StatusConflict)
	ErrProfileInactive   = apperror.New(apperror.CodeInvalidState, "employee profile is deactivated", http.StatusConflict)
)

// MapDBError converts a unique-violation into the duplicate sentinel so
// handlers return 409 instead of 500.
func MapDBError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateProfile
	}
	return err
}
