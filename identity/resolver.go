// Package identity resolves verified claim subjects to full identity
// records through the external identity-lookup collaborator.
package identity

import (
	"context"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-guard/core"
)

type Config struct {
	Lookup core.IdentityLookup
	Logger core.Logger
}

// Resolver maps a claim subject to the authoritative identity record. A
// subject the store no longer knows is an invalid credential, not a missing
// resource: stale tokens must be indistinguishable from forged ones.
type Resolver struct {
	lookup core.IdentityLookup
	logger core.Logger
}

func NewResolver(cfg Config) (*Resolver, error) {
	if cfg.Lookup == nil {
		return nil, resolverInternal("identity: lookup is required", nil)
	}
	return &Resolver{
		lookup: cfg.Lookup,
		logger: glog.Ensure(cfg.Logger),
	}, nil
}

func (r *Resolver) Resolve(ctx context.Context, id string) (core.Identity, error) {
	if r == nil || r.lookup == nil {
		return core.Identity{}, resolverInternal("identity: resolver is not configured", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return core.Identity{}, resolverUnauthenticated("identity: credential subject is required", nil)
	}

	resolved, found, err := r.lookup.FindByID(ctx, id)
	if err != nil {
		r.logger.WithContext(ctx).Error("identity lookup failed",
			"identity_id", id,
			"error", err.Error(),
		)
		return core.Identity{}, resolverWrapUnauthenticated(err, "identity: lookup failed", map[string]any{
			"identity_id": id,
		})
	}
	if !found {
		return core.Identity{}, resolverUnauthenticated("identity: credential references an unknown identity", map[string]any{
			"identity_id": id,
		})
	}
	return resolved, nil
}

func resolverUnauthenticated(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(core.GuardErrorUnauthenticated)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func resolverWrapUnauthenticated(source error, message string, metadata map[string]any) error {
	if source == nil {
		return resolverUnauthenticated(message, metadata)
	}
	err := goerrors.Wrap(source, goerrors.CategoryAuth, message).
		WithCode(http.StatusUnauthorized).
		WithTextCode(core.GuardErrorUnauthenticated)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func resolverInternal(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.GuardErrorInternal)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// UserStoreLookup adapts a user store to the narrow identity-lookup
// contract so the resolver never sees password hashes.
type UserStoreLookup struct {
	Store core.UserStore
}

func (l UserStoreLookup) FindByID(ctx context.Context, id string) (core.Identity, bool, error) {
	if l.Store == nil {
		return core.Identity{}, false, resolverInternal("identity: user store is not configured", nil)
	}
	user, found, err := l.Store.GetByID(ctx, strings.TrimSpace(id))
	if err != nil || !found {
		return core.Identity{}, false, err
	}
	return user.Identity(), true, nil
}

var (
	_ core.IdentityResolver = (*Resolver)(nil)
	_ core.IdentityLookup   = UserStoreLookup{}
)
