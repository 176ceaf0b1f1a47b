package users

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-guard/core"
)

func usersBadInput(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.GuardErrorBadInput)
}

func usersUnauthenticated(message string) error {
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(core.GuardErrorUnauthenticated)
}

func usersNotFound(message string) error {
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(core.GuardErrorResourceNotFound)
}

func usersConflict(message string) error {
	return goerrors.New(message, goerrors.CategoryConflict).
		WithCode(http.StatusConflict).
		WithTextCode(core.GuardErrorConflict)
}

func usersOperation(source error, message string) error {
	if source == nil {
		return goerrors.New(message, goerrors.CategoryOperation).
			WithCode(http.StatusInternalServerError).
			WithTextCode(core.GuardErrorOperationFailed)
	}
	return goerrors.Wrap(source, goerrors.CategoryOperation, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.GuardErrorOperationFailed)
}
