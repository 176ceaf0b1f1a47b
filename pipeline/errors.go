package pipeline

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-guard/core"
)

func pipelineError(
	message string,
	category goerrors.Category,
	code int,
	textCode string,
	metadata map[string]any,
) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func pipelineWrapError(
	source error,
	category goerrors.Category,
	message string,
	code int,
	textCode string,
	metadata map[string]any,
) error {
	if source == nil {
		return pipelineError(message, category, code, textCode, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func pipelineUnauthenticated(message string, metadata map[string]any) error {
	return pipelineError(
		message,
		goerrors.CategoryAuth,
		http.StatusUnauthorized,
		core.GuardErrorUnauthenticated,
		metadata,
	)
}

func pipelineForbidden(message string, metadata map[string]any) error {
	return pipelineError(
		message,
		goerrors.CategoryAuthz,
		http.StatusForbidden,
		core.GuardErrorForbidden,
		metadata,
	)
}

func pipelineBadInput(message string, metadata map[string]any) error {
	return pipelineError(
		message,
		goerrors.CategoryBadInput,
		http.StatusBadRequest,
		core.GuardErrorBadInput,
		metadata,
	)
}

func pipelineInternal(message string, metadata map[string]any) error {
	return pipelineError(
		message,
		goerrors.CategoryInternal,
		http.StatusInternalServerError,
		core.GuardErrorInternal,
		metadata,
	)
}

func pipelineCanceled(source error, metadata map[string]any) error {
	return pipelineWrapError(
		source,
		goerrors.CategoryOperation,
		"pipeline: request canceled before gate evaluation",
		http.StatusInternalServerError,
		core.GuardErrorOperationFailed,
		metadata,
	)
}

// hiddenNotFound is the uniform ownership-mismatch surface: a 400 with a
// generic "<resource> not found" message so non-owners cannot confirm the
// resource exists. The real reason stays in metadata for logs only.
func hiddenNotFound(resource string, reason string, metadata map[string]any) error {
	resource = strings.TrimSpace(resource)
	if resource == "" {
		resource = "Resource"
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["reason"] = reason
	return pipelineError(
		resource+" not found",
		goerrors.CategoryBadInput,
		http.StatusBadRequest,
		core.GuardErrorResourceNotFound,
		metadata,
	)
}
