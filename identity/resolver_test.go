package identity

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-guard/core"
)

type staticLookup struct {
	identities map[string]core.Identity
	err        error
	calls      int
}

func (l *staticLookup) FindByID(_ context.Context, id string) (core.Identity, bool, error) {
	l.calls++
	if l.err != nil {
		return core.Identity{}, false, l.err
	}
	identity, ok := l.identities[id]
	return identity, ok, nil
}

func assertUnauthenticated(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected unauthenticated error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryAuth {
		t.Fatalf("expected auth category, got %q", rich.Category)
	}
	if rich.TextCode != core.GuardErrorUnauthenticated {
		t.Fatalf("expected %q text code, got %q", core.GuardErrorUnauthenticated, rich.TextCode)
	}
}

func TestResolver_ResolvesKnownIdentity(t *testing.T) {
	lookup := &staticLookup{identities: map[string]core.Identity{
		"u1": {ID: "u1", Role: core.RoleUser, Active: true},
	}}
	resolver, err := NewResolver(Config{Lookup: lookup})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	identity, err := resolver.Resolve(context.Background(), "u1")
	if err != nil {
		t.Fatalf("resolve identity: %v", err)
	}
	if identity.ID != "u1" || identity.Role != core.RoleUser {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestResolver_UnknownSubjectIsUnauthenticatedNotNotFound(t *testing.T) {
	resolver, err := NewResolver(Config{Lookup: &staticLookup{identities: map[string]core.Identity{}}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	_, err = resolver.Resolve(context.Background(), "ghost")
	assertUnauthenticated(t, err)

	var rich *goerrors.Error
	goerrors.As(err, &rich)
	if rich.Category == goerrors.CategoryNotFound {
		t.Fatalf("stale credentials must not surface as not-found")
	}
}

func TestResolver_LookupFailureIsUnauthenticated(t *testing.T) {
	resolver, err := NewResolver(Config{Lookup: &staticLookup{err: errors.New("store timeout")}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	_, err = resolver.Resolve(context.Background(), "u1")
	assertUnauthenticated(t, err)
}

func TestResolver_BlankSubjectIsUnauthenticated(t *testing.T) {
	resolver, err := NewResolver(Config{Lookup: &staticLookup{}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	_, err = resolver.Resolve(context.Background(), "   ")
	assertUnauthenticated(t, err)
}

func TestNewResolver_RequiresLookup(t *testing.T) {
	if _, err := NewResolver(Config{}); err == nil {
		t.Fatalf("expected missing lookup to be rejected")
	}
}

func TestUserStoreLookup_ProjectsIdentity(t *testing.T) {
	lookup := UserStoreLookup{Store: staticUserStore{users: map[string]core.User{
		"u1": {ID: "u1", Email: "a@b.c", Role: core.RoleAdmin, Active: true, PasswordHash: "hash"},
	}}}

	identity, found, err := lookup.FindByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if !found {
		t.Fatalf("expected identity to be found")
	}
	if identity.Role != core.RoleAdmin || identity.Email != "a@b.c" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

type staticUserStore struct {
	users map[string]core.User
}

func (s staticUserStore) Create(context.Context, core.CreateUserInput, string) (core.User, error) {
	return core.User{}, errors.New("not implemented")
}

func (s staticUserStore) GetByID(_ context.Context, id string) (core.User, bool, error) {
	user, ok := s.users[id]
	return user, ok, nil
}

func (s staticUserStore) GetByEmail(context.Context, string) (core.User, bool, error) {
	return core.User{}, false, nil
}

func (s staticUserStore) List(context.Context, core.UserFilter) ([]core.User, error) {
	return nil, nil
}

func (s staticUserStore) Update(context.Context, string, core.UpdateUserInput) (core.User, error) {
	return core.User{}, errors.New("not implemented")
}

func (s staticUserStore) SetActive(context.Context, string, bool) (core.User, error) {
	return core.User{}, errors.New("not implemented")
}

func (s staticUserStore) Delete(context.Context, string) error {
	return errors.New("not implemented")
}

func TestIdentityCacheKey_EscapesSegments(t *testing.T) {
	key, err := IdentityCacheKey("user/1")
	if err != nil {
		t.Fatalf("cache key: %v", err)
	}
	if key != "go-guard::identity::v1::user%2F1" {
		t.Fatalf("unexpected cache key %q", key)
	}
	if _, err := IdentityCacheKey("  "); err == nil {
		t.Fatalf("expected blank id to be rejected")
	}
}
