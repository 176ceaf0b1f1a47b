package pipeline

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-guard/core"
)

// OwnershipRule configures the ownership gate for a route: which route
// parameter carries the resource id, the display name used in the hidden
// rejection message, and the collaborator that maps a resource id to its
// owner.
type OwnershipRule struct {
	Param    string
	Resource string
	Lookup   core.OwnershipLookup
}

// Descriptor is the static per-route authorization requirement set. A gate
// left unset is not evaluated; it is not applicable to the route, not a
// default pass or fail. A zero descriptor describes a public route.
type Descriptor struct {
	RequiresAuth bool
	ActiveGate   *bool
	AllowedRoles []core.Role
	Ownership    *OwnershipRule
}

// Public reports whether no gate applies to the route.
func (d Descriptor) Public() bool {
	return !d.RequiresAuth && d.ActiveGate == nil && len(d.AllowedRoles) == 0 && d.Ownership == nil
}

func (d Descriptor) validate() error {
	for _, role := range d.AllowedRoles {
		if !role.Valid() {
			return pipelineInternal("pipeline: descriptor allows unknown role "+string(role), nil)
		}
	}
	if d.Ownership != nil {
		if strings.TrimSpace(d.Ownership.Param) == "" {
			return pipelineInternal("pipeline: ownership rule requires a parameter name", nil)
		}
		if d.Ownership.Lookup == nil {
			return pipelineInternal("pipeline: ownership rule requires a lookup", nil)
		}
	}
	return nil
}

// ActiveOnly is shorthand for the common expected-active gate value.
func ActiveOnly() *bool {
	active := true
	return &active
}

// Registry is the closed route descriptor table, built at startup and read
// without synchronization afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Descriptor
}

func NewRegistry() *Registry {
	return &Registry{entries: map[string]Descriptor{}}
}

func (r *Registry) Register(routeID string, descriptor Descriptor) error {
	if r == nil {
		return pipelineInternal("pipeline: registry is nil", nil)
	}
	routeID = normalizeRouteID(routeID)
	if routeID == "" {
		return pipelineInternal("pipeline: route id is required", nil)
	}
	if err := descriptor.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[routeID]; exists {
		return pipelineInternal("pipeline: route "+routeID+" already registered", map[string]any{
			"route_id": routeID,
		})
	}
	r.entries[routeID] = descriptor
	return nil
}

func (r *Registry) Get(routeID string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.entries[normalizeRouteID(routeID)]
	return descriptor, ok
}

func (r *Registry) Routes() []string {
	if r == nil {
		return []string{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	routes := make([]string, 0, len(r.entries))
	for routeID := range r.entries {
		routes = append(routes, routeID)
	}
	sort.Strings(routes)
	return routes
}

func normalizeRouteID(routeID string) string {
	return strings.TrimSpace(strings.ToLower(routeID))
}
