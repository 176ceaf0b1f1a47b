package transport

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-guard/core"
)

// Failure is a fully normalized rejection: a numeric status, the message
// safe to show the caller, and the machine-readable text code. Internal
// detail never rides on a Failure; it is logged before normalization.
type Failure struct {
	Status   int
	Category goerrors.Category
	Message  string
	TextCode string

	// Detail is optional caller-safe elaboration, empty for most failures.
	// It is the only field besides Message that reaches the wire.
	Detail string
}

// Envelope renders the failure as the shared response body.
func (f Failure) Envelope() core.Envelope {
	return core.FailureEnvelope(f.Message, f.Detail)
}

// FailureError carries a normalized failure as an error value for
// transports that signal rejection out of band instead of writing a body.
type FailureError struct {
	Failure Failure
	Cause   error
}

func (e *FailureError) Error() string {
	if e == nil {
		return ""
	}
	code := strings.TrimSpace(e.Failure.TextCode)
	if code == "" {
		code = core.GuardErrorInternal
	}
	return fmt.Sprintf("%s (%d): %s", code, e.Failure.Status, e.Failure.Message)
}

func (e *FailureError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
