package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-guard/core"
)

// ResponsePayloadCarrier is the escape hatch for errors raised outside the
// guard taxonomy that already know their wire shape. The payload's
// "message" entry becomes the envelope message when present.
type ResponsePayloadCarrier interface {
	ResponsePayload() (int, map[string]any)
}

// RequestInfo is the transport-neutral request description attached to
// failure logs. Header values are logged as received; callers redact
// credentials before handing them over.
type RequestInfo struct {
	Kind     string
	Method   string
	Path     string
	Headers  map[string]string
	Metadata map[string]any
}

// Normalizer converts any raised error into a Failure. Recognized rich
// errors keep their category, status, and message; payload carriers keep
// their declared status and message; everything else collapses to a fixed
// internal failure so internals never leak.
type Normalizer struct {
	mapper core.ErrorMapper
	logger core.Logger
}

type NormalizerOption func(*Normalizer)

func WithErrorMapper(mapper core.ErrorMapper) NormalizerOption {
	return func(n *Normalizer) {
		if mapper != nil {
			n.mapper = mapper
		}
	}
}

func WithNormalizerLogger(logger core.Logger) NormalizerOption {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	normalizer := &Normalizer{
		mapper: core.DefaultErrorMapper,
		logger: glog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(normalizer)
		}
	}
	return normalizer
}

// Normalize logs the original cause with the request description, then maps
// it to the caller-safe failure shape.
func (n *Normalizer) Normalize(ctx context.Context, info RequestInfo, err error) Failure {
	if n == nil {
		return internalFailure()
	}
	if err == nil {
		return internalFailure()
	}

	n.logFailure(ctx, info, err)

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		rich = core.EnsureGuardErrorEnvelope(rich)
		return Failure{
			Status:   rich.Code,
			Category: rich.Category,
			Message:  rich.Message,
			TextCode: rich.TextCode,
		}
	}

	var carrier ResponsePayloadCarrier
	if errors.As(err, &carrier) {
		status, payload := carrier.ResponsePayload()
		return failureFromPayload(status, payload)
	}

	return internalFailure()
}

func (n *Normalizer) logFailure(ctx context.Context, info RequestInfo, err error) {
	fields := map[string]any{
		"transport": strings.TrimSpace(info.Kind),
		"method":    strings.TrimSpace(info.Method),
		"path":      strings.TrimSpace(info.Path),
		"error":     err.Error(),
	}
	if len(info.Headers) > 0 {
		fields["headers"] = info.Headers
	}
	for key, value := range info.Metadata {
		fields["meta_"+key] = value
	}
	if identity, ok := core.IdentityFromContext(ctx); ok {
		fields["identity_id"] = identity.ID
		fields["identity_role"] = string(identity.Role)
	}

	logger := glog.Ensure(n.logger).WithContext(ctx)
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	}
	logger.Error("request failed")
}

func failureFromPayload(status int, payload map[string]any) Failure {
	if status < 100 || status > 599 {
		status = http.StatusInternalServerError
	}
	message := core.InternalFailureMessage
	if raw, ok := payload["message"].(string); ok && strings.TrimSpace(raw) != "" {
		message = strings.TrimSpace(raw)
	}
	textCode := core.GuardErrorInternal
	if raw, ok := payload["text_code"].(string); ok && strings.TrimSpace(raw) != "" {
		textCode = strings.TrimSpace(raw)
	}
	return Failure{
		Status:   status,
		Category: goerrors.CategoryExternal,
		Message:  message,
		TextCode: textCode,
	}
}

func internalFailure() Failure {
	return Failure{
		Status:   http.StatusInternalServerError,
		Category: goerrors.CategoryInternal,
		Message:  core.InternalFailureMessage,
		TextCode: core.GuardErrorInternal,
	}
}
