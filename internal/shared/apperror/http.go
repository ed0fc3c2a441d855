package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the shape handlers put on the wire.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

// ToHTTP maps any error onto an HTTP response. Unknown errors collapse into a
// generic 500 so internals never leak to clients.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
