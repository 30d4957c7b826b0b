package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "event-rental/pkg/errors"
)

type Response[T any] struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Body    T                   `json:"body,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type ListBody[T any] struct {
	List       []T             `json:"list"`
	Pagination *PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	TotalCount uint64 `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

// SuccessOne returns a single object.
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Response[T]{
		Status:  true,
		Message: message,
		Body:    data,
	})
}

func SuccessList[T any](c echo.Context, message string, list []T, total uint64, page, limit int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}

	if list == nil {
		list = make([]T, 0)
	}

	body := ListBody[T]{
		List: list,
		Pagination: &PaginationMeta{
			TotalCount: total,
			TotalPages: totalPages,
			Page:       page,
			Limit:      limit,
		},
	}

	return c.JSON(http.StatusOK, Response[ListBody[T]]{
		Status:  true,
		Message: message,
		Body:    body,
	})
}

// NoContent answers a successful delete.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// StatusFor maps an application error to its HTTP status code.
func StatusFor(err error) int {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) && httpErr.Code != 0 {
		return httpErr.Code
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrInvalidSigningMethod),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenNotYetValid),
		errors.Is(err, apperrors.ErrTokenIsNotAccess),
		errors.Is(err, apperrors.ErrTokenIsNotRefresh),
		errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func ErrorResponse(c echo.Context, err error) error {
	code := StatusFor(err)
	msg := err.Error()
	var fields map[string][]string

	var httpErr *apperrors.HttpError
	var validationErr *apperrors.ValidationError
	var refErr *apperrors.ReferenceError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &validationErr):
		msg = apperrors.ErrValidation.Error()
		fields = validationErr.Fields
	case errors.As(err, &refErr):
		msg = apperrors.ErrNotFound.Error()
		fields = map[string][]string{refErr.Field: {refErr.Error()}}
	case errors.As(err, &httpErr):
		// only the user-facing message, no technical details
		msg = httpErr.Message
	case errors.As(err, &echoErr):
		if m, ok := echoErr.Message.(string); ok {
			msg = m
		}
	}
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}

	return c.JSON(code, Response[any]{
		Status:  false,
		Message: msg,
		Errors:  fields,
	})
}
