package autherrors

import (
	"errors"
	"net/http"

	"github.com/VonnAirone/leave-management-system/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidCredentials = apperror.New(apperror.CodeUnauthorized, "invalid email or password", http.StatusUnauthorized)
	ErrAccountDisabled    = apperror.New(apperror.CodeForbidden, "account is disabled", http.StatusForbidden)
	ErrInvalidToken       = apperror.New(apperror.CodeUnauthorized, "invalid or expired token", http.StatusUnauthorized)
	ErrEmailTaken         = apperror.New(apperror.CodeConflict, "email is already registered", http.StatusConflict)
	ErrInvalidRole        = apperror.New(apperror.CodeInvalidInput, "role must be employee or hr_admin", http.StatusBadRequest)
	ErrWeakPassword       = apperror.New(apperror.CodeInvalidInput, "password must be at least 8 characters", http.StatusBadRequest)
	ErrInvalidActorID     = apperror.New(apperror.CodeInvalidInput, "invalid actor id", http.StatusBadRequest)
	ErrUserNotFound       = apperror.New(apperror.CodeNotFound, "user not found", http.StatusNotFound)
)

func MapDBError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}
