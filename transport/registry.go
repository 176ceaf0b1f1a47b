package transport

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

const (
	KindHTTP    = "http"
	KindMessage = "message"
	KindStream  = "stream"
)

// knownKinds is the closed transport kind set. Adding a kind means adding
// delivery semantics here, not configuring one in.
var knownKinds = map[string]struct{}{
	KindHTTP:    {},
	KindMessage: {},
	KindStream:  {},
}

// Registry maps transport kinds to their responders. Asking for an unknown
// kind is a configuration error, not a fallback to HTTP behavior.
type Registry struct {
	mu         sync.RWMutex
	responders map[string]Responder
}

func NewRegistry() *Registry {
	return &Registry{responders: map[string]Responder{}}
}

// NewDefaultRegistry wires the three supported kinds.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	_ = registry.Register(NewHTTPResponder())
	_ = registry.Register(NewMessageResponder())
	_ = registry.Register(NewStreamResponder())
	return registry
}

func (r *Registry) Register(responder Responder) error {
	if r == nil {
		return transportError("transport: registry is nil", nil)
	}
	if responder == nil {
		return transportError("transport: responder is nil", nil)
	}
	kind := normalizeKind(responder.Kind())
	if _, known := knownKinds[kind]; !known {
		return transportError(fmt.Sprintf("transport: unknown transport kind %q", kind), map[string]any{
			"kind": kind,
		})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.responders[kind]; exists {
		return transportError(fmt.Sprintf("transport: responder kind %q already registered", kind), map[string]any{
			"kind": kind,
		})
	}
	r.responders[kind] = responder
	return nil
}

func (r *Registry) Get(kind string) (Responder, error) {
	if r == nil {
		return nil, transportError("transport: registry is nil", nil)
	}
	kind = normalizeKind(kind)
	if _, known := knownKinds[kind]; !known {
		return nil, transportError(fmt.Sprintf("transport: unknown transport kind %q", kind), map[string]any{
			"kind": kind,
		})
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	responder, ok := r.responders[kind]
	if !ok {
		return nil, transportError(fmt.Sprintf("transport: no responder registered for kind %q", kind), map[string]any{
			"kind": kind,
		})
	}
	return responder, nil
}

func (r *Registry) Kinds() []string {
	if r == nil {
		return []string{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.responders))
	for kind := range r.responders {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func normalizeKind(kind string) string {
	return strings.TrimSpace(strings.ToLower(kind))
}
