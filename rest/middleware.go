package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-guard/auth"
	"github.com/goliatone/go-guard/core"
	"github.com/goliatone/go-guard/pipeline"
	"github.com/goliatone/go-guard/transport"
)

// guard runs the route's gate chain before the handler. Gate rejections and
// handler errors both leave through fail, so the caller sees one shape.
func (h *Handlers) guard(routeID string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		credential, _ := auth.ExtractBearer(r.Header.Get("Authorization"))

		params := map[string]string{}
		if id := chi.URLParam(r, "id"); id != "" {
			params["id"] = id
		}

		ctx, _, err := h.chain.Authorize(r.Context(), pipeline.Request{
			RouteID:    routeID,
			Method:     r.Method,
			Path:       r.URL.Path,
			Credential: credential,
			Params:     params,
		})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		next(w, r.WithContext(ctx))
	}
}

// fail normalizes any error and delivers it over the http responder.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	failure := h.normalizer.Normalize(r.Context(), transport.RequestInfo{
		Kind:    transport.KindHTTP,
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: redactedHeaders(r),
	}, err)

	responder, responderErr := h.responders.Get(transport.KindHTTP)
	if responderErr != nil {
		h.logger.Error("http responder unavailable", "error", responderErr)
		writeJSON(w, http.StatusInternalServerError, core.FailureEnvelope(core.InternalFailureMessage, ""))
		return
	}
	if respondErr := responder.Respond(r.Context(), w, failure); respondErr != nil {
		h.logger.Error("failure delivery failed", "error", respondErr)
	}
}

func restConfigError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.GuardErrorInternal)
}

func redactedHeaders(r *http.Request) map[string]string {
	out := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		if strings.EqualFold(name, "Authorization") || strings.EqualFold(name, "Cookie") {
			out[name] = "[REDACTED]"
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}
