package transport

import (
	"context"
	"encoding/json"
	"net/http"
)

// Responder delivers a normalized failure over one transport kind. The
// carrier argument is transport specific: HTTP delivery expects an
// http.ResponseWriter, message and stream delivery ignore it and report the
// failure through the returned error instead.
type Responder interface {
	Kind() string
	Respond(ctx context.Context, carrier any, failure Failure) error
}

// HTTPResponder writes the failure status and JSON envelope to the response
// writer.
type HTTPResponder struct{}

func NewHTTPResponder() *HTTPResponder {
	return &HTTPResponder{}
}

func (r *HTTPResponder) Kind() string {
	return KindHTTP
}

func (r *HTTPResponder) Respond(ctx context.Context, carrier any, failure Failure) error {
	writer, ok := carrier.(http.ResponseWriter)
	if !ok {
		return transportError("transport: http delivery requires an http.ResponseWriter", nil)
	}
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(failure.Status)
	return json.NewEncoder(writer).Encode(failure.Envelope())
}

// signalResponder reports the failure as an error value. The broker consumer
// or stream session owns the protocol-level signaling (nack, close frame).
type signalResponder struct {
	kind string
}

func (r *signalResponder) Kind() string {
	if r == nil {
		return ""
	}
	return r.kind
}

func (r *signalResponder) Respond(ctx context.Context, carrier any, failure Failure) error {
	return &FailureError{Failure: failure}
}

func NewMessageResponder() Responder {
	return &signalResponder{kind: KindMessage}
}

func NewStreamResponder() Responder {
	return &signalResponder{kind: KindStream}
}
