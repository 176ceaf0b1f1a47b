package pipeline

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-guard/core"
)

func TestRegistryNormalizesRouteIDs(t *testing.T) {
	registry := NewRegistry()
	mustRegister(t, registry, "  GET /Users/Me  ", Descriptor{RequiresAuth: true})

	descriptor, ok := registry.Get("get /users/me")
	if !ok {
		t.Fatal("expected normalized lookup to find the descriptor")
	}
	if !descriptor.RequiresAuth {
		t.Fatal("expected descriptor to survive registration")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	mustRegister(t, registry, "GET /users", Descriptor{RequiresAuth: true})

	if err := registry.Register("get /users", Descriptor{}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistryRejectsInvalidDescriptors(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register("", Descriptor{}); err == nil {
		t.Fatal("expected empty route id to fail")
	}
	if err := registry.Register("GET /users", Descriptor{
		AllowedRoles: []core.Role{core.Role("owner")},
	}); err == nil {
		t.Fatal("expected unknown role to fail validation")
	}
	if err := registry.Register("GET /notes/:id", Descriptor{
		Ownership: &OwnershipRule{Resource: "Note", Lookup: &staticOwners{}},
	}); err == nil {
		t.Fatal("expected ownership rule without a param to fail validation")
	}
	if err := registry.Register("GET /notes/:id", Descriptor{
		Ownership: &OwnershipRule{Param: "id", Resource: "Note"},
	}); err == nil {
		t.Fatal("expected ownership rule without a lookup to fail validation")
	}
}

func TestRegistryRoutesAreSorted(t *testing.T) {
	registry := NewRegistry()
	mustRegister(t, registry, "POST /users", Descriptor{RequiresAuth: true})
	mustRegister(t, registry, "GET /notes", Descriptor{RequiresAuth: true})
	mustRegister(t, registry, "GET /users", Descriptor{RequiresAuth: true})

	want := []string{"get /notes", "get /users", "post /users"}
	if got := registry.Routes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDescriptorPublic(t *testing.T) {
	if !(Descriptor{}).Public() {
		t.Fatal("zero descriptor must be public")
	}
	if (Descriptor{RequiresAuth: true}).Public() {
		t.Fatal("auth-gated descriptor must not be public")
	}
	if (Descriptor{ActiveGate: ActiveOnly()}).Public() {
		t.Fatal("active-gated descriptor must not be public")
	}
}
