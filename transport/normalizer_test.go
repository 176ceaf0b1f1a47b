package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-guard/core"
)

func TestNormalizeKeepsRichErrors(t *testing.T) {
	normalizer := NewNormalizer()
	cause := goerrors.New("Note not found", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.GuardErrorResourceNotFound)

	failure := normalizer.Normalize(context.Background(), RequestInfo{Kind: KindHTTP}, cause)

	if failure.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", failure.Status)
	}
	if failure.Message != "Note not found" {
		t.Fatalf("expected rich message to survive, got %q", failure.Message)
	}
	if failure.TextCode != core.GuardErrorResourceNotFound {
		t.Fatalf("expected text code to survive, got %s", failure.TextCode)
	}
}

func TestNormalizeFillsEnvelopeDefaults(t *testing.T) {
	normalizer := NewNormalizer()
	cause := goerrors.New("credential is invalid", goerrors.CategoryAuth)

	failure := normalizer.Normalize(context.Background(), RequestInfo{Kind: KindHTTP}, cause)

	if failure.Status != http.StatusUnauthorized {
		t.Fatalf("expected status filled from category, got %d", failure.Status)
	}
	if failure.TextCode != core.GuardErrorUnauthenticated {
		t.Fatalf("expected text code filled from category, got %s", failure.TextCode)
	}
}

func TestNormalizeUsesPayloadCarrier(t *testing.T) {
	normalizer := NewNormalizer()
	cause := &payloadError{
		status:  http.StatusTooManyRequests,
		payload: map[string]any{"message": "Too many requests"},
	}

	failure := normalizer.Normalize(context.Background(), RequestInfo{Kind: KindHTTP}, cause)

	if failure.Status != http.StatusTooManyRequests {
		t.Fatalf("expected carrier status, got %d", failure.Status)
	}
	if failure.Message != "Too many requests" {
		t.Fatalf("expected carrier message, got %q", failure.Message)
	}
}

func TestNormalizeCollapsesUnknownErrors(t *testing.T) {
	normalizer := NewNormalizer()
	cause := errors.New("pq: connection refused at 10.0.0.3:5432")

	failure := normalizer.Normalize(context.Background(), RequestInfo{Kind: KindHTTP}, cause)

	if failure.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", failure.Status)
	}
	if failure.Message != core.InternalFailureMessage {
		t.Fatalf("expected fixed internal message, got %q", failure.Message)
	}
	if strings.Contains(failure.Message, "pq:") {
		t.Fatal("internal detail leaked into the failure message")
	}
}

func TestHTTPResponderWritesExactInternalBody(t *testing.T) {
	normalizer := NewNormalizer()
	responder := NewHTTPResponder()
	recorder := httptest.NewRecorder()

	failure := normalizer.Normalize(context.Background(), RequestInfo{Kind: KindHTTP}, errors.New("boom"))
	if err := responder.Respond(context.Background(), recorder, failure); err != nil {
		t.Fatalf("respond failed: %v", err)
	}

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", recorder.Code)
	}
	want := `{"success":false,"message":"Internal Server Error"}`
	if got := strings.TrimSpace(recorder.Body.String()); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestHTTPResponderRequiresResponseWriter(t *testing.T) {
	responder := NewHTTPResponder()
	if err := responder.Respond(context.Background(), "not a writer", internalFailure()); err == nil {
		t.Fatal("expected an error for a non-writer carrier")
	}
}

func TestSignalRespondersReturnFailureError(t *testing.T) {
	for _, responder := range []Responder{NewMessageResponder(), NewStreamResponder()} {
		failure := Failure{
			Status:   http.StatusForbidden,
			Category: goerrors.CategoryAuthz,
			Message:  "Forbidden",
			TextCode: core.GuardErrorForbidden,
		}
		err := responder.Respond(context.Background(), nil, failure)
		if err == nil {
			t.Fatalf("%s responder must signal through the error value", responder.Kind())
		}
		var failureErr *FailureError
		if !errors.As(err, &failureErr) {
			t.Fatalf("expected a FailureError, got %T", err)
		}
		if failureErr.Failure.Message != "Forbidden" {
			t.Fatalf("expected failure to ride the error, got %+v", failureErr.Failure)
		}
	}
}

type payloadError struct {
	status  int
	payload map[string]any
}

func (e *payloadError) Error() string {
	return "payload error"
}

func (e *payloadError) ResponsePayload() (int, map[string]any) {
	return e.status, e.payload
}
