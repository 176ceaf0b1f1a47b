package auth

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-guard/core"
)

func authUnauthenticated(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(core.GuardErrorUnauthenticated)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func authWrapUnauthenticated(source error, message string, metadata map[string]any) error {
	if source == nil {
		return authUnauthenticated(message, metadata)
	}
	err := goerrors.Wrap(source, goerrors.CategoryAuth, message).
		WithCode(http.StatusUnauthorized).
		WithTextCode(core.GuardErrorUnauthenticated)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}
