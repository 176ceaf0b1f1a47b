package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

// CredentialVerifier validates a raw bearer credential and produces its
// claim set. Pure over the credential and the verification key.
type CredentialVerifier interface {
	Verify(credential string) (Claims, error)
}

// CredentialIssuer signs a new credential for an identity. Used by the
// login and registration paths.
type CredentialIssuer interface {
	Issue(identityID string, role Role) (string, error)
}

// IdentityLookup is the external identity-store collaborator contract:
// findById(id) -> Identity | absent.
type IdentityLookup interface {
	FindByID(ctx context.Context, id string) (Identity, bool, error)
}

// OwnershipLookup is the external ownership collaborator contract:
// findOwner(resourceId) -> ownerId | absent.
type OwnershipLookup interface {
	FindOwner(ctx context.Context, resourceID string) (string, bool, error)
}

// IdentityResolver maps a verified claim subject to a full identity record.
type IdentityResolver interface {
	Resolve(ctx context.Context, id string) (Identity, error)
}

type UserStore interface {
	Create(ctx context.Context, in CreateUserInput, passwordHash string) (User, error)
	GetByID(ctx context.Context, id string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	List(ctx context.Context, filter UserFilter) ([]User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (User, error)
	SetActive(ctx context.Context, id string, active bool) (User, error)
	Delete(ctx context.Context, id string) error
}

type NoteStore interface {
	Create(ctx context.Context, ownerID string, in CreateNoteInput) (Note, error)
	GetByID(ctx context.Context, id string) (Note, bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Note, error)
	List(ctx context.Context, filter NoteFilter) ([]Note, error)
	Update(ctx context.Context, id string, in UpdateNoteInput) (Note, error)
	Delete(ctx context.Context, id string) error
}

// StoreProvider exposes the concrete collaborator stores built by a
// repository factory.
type StoreProvider interface {
	UserStore() UserStore
	NoteStore() NoteStore
}

type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type authContextKey struct{}

// WithIdentity attaches the resolved identity to the request-scoped
// authorization context. The value is never shared across requests.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, authContextKey{}, identity)
}

// IdentityFromContext reads the resolved identity populated by the guard
// chain, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(authContextKey{}).(Identity)
	return identity, ok
}
