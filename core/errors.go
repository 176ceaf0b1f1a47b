package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	GuardErrorBadInput         = "GUARD_BAD_INPUT"
	GuardErrorUnauthenticated  = "GUARD_UNAUTHENTICATED"
	GuardErrorForbidden        = "GUARD_FORBIDDEN"
	GuardErrorResourceNotFound = "GUARD_RESOURCE_NOT_FOUND"
	GuardErrorConflict         = "GUARD_CONFLICT"
	GuardErrorOperationFailed  = "GUARD_OPERATION_FAILED"
	GuardErrorInternal         = "GUARD_INTERNAL_ERROR"
)

// InternalFailureMessage is the fixed body message for unclassified
// conditions. Nothing else about the original condition reaches the caller.
const InternalFailureMessage = "Internal Server Error"

// ErrorMapper converts any raised condition into a rich guard error with a
// category, status code, and text code.
type ErrorMapper func(err error) *goerrors.Error

// ErrorFactory builds new rich errors; injectable for callers that stamp
// extra metadata on every error.
type ErrorFactory func(message string, category ...goerrors.Category) *goerrors.Error

// DefaultErrorMapper keeps recognized rich errors intact (filling status and
// text code from the category when missing) and demotes everything else to a
// generic internal failure with the fixed message.
func DefaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return EnsureGuardErrorEnvelope(richErr)
	}

	mapped := goerrors.New(InternalFailureMessage, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(GuardErrorInternal)
	mapped.WithMetadata(map[string]any{"cause": err.Error()})
	return mapped
}

// EnsureGuardErrorEnvelope fills status code, text code, and message defaults
// so every surfaced error carries a complete envelope.
func EnsureGuardErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = GuardHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultGuardTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = InternalFailureMessage
	}
	return err
}

func defaultGuardTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return GuardErrorBadInput
	case goerrors.CategoryAuth:
		return GuardErrorUnauthenticated
	case goerrors.CategoryAuthz:
		return GuardErrorForbidden
	case goerrors.CategoryNotFound:
		return GuardErrorResourceNotFound
	case goerrors.CategoryConflict:
		return GuardErrorConflict
	case goerrors.CategoryOperation, goerrors.CategoryExternal:
		return GuardErrorOperationFailed
	default:
		return GuardErrorInternal
	}
}

// GuardHTTPStatus maps an error category to its HTTP-equivalent status.
// Message and stream transports reuse the same numeric codes.
func GuardHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
