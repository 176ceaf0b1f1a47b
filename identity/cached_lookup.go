package identity

import (
	"context"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-guard/core"
)

const identityCacheKeyPrefix = "go-guard::identity::v1"

type cachedIdentity struct {
	Identity core.Identity
	Found    bool
}

// CachedLookup decorates an identity lookup with a read-through cache.
// Identity records only; authorization decisions are never cached.
type CachedLookup struct {
	base  core.IdentityLookup
	cache repositorycache.CacheService
}

func NewCachedLookup(base core.IdentityLookup, cacheService repositorycache.CacheService) (*CachedLookup, error) {
	if base == nil {
		return nil, resolverInternal("identity: base lookup is required", nil)
	}
	if cacheService == nil {
		return nil, resolverInternal("identity: cache service is required", nil)
	}
	return &CachedLookup{base: base, cache: cacheService}, nil
}

// IdentityCacheKey returns the deterministic cache key contract for identity
// reads: go-guard::identity::v1::<identity-id> with the id URL-path escaped.
func IdentityCacheKey(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", resolverInternal("identity: cache key requires an identity id", nil)
	}
	return identityCacheKeyPrefix + "::" + url.PathEscape(id), nil
}

func (l *CachedLookup) FindByID(ctx context.Context, id string) (core.Identity, bool, error) {
	if l == nil || l.base == nil || l.cache == nil {
		return core.Identity{}, false, resolverInternal("identity: cached lookup is not configured", nil)
	}
	id = strings.TrimSpace(id)
	cacheKey, err := IdentityCacheKey(id)
	if err != nil {
		return core.Identity{}, false, err
	}

	cached, err := repositorycache.GetOrFetch(ctx, l.cache, cacheKey, func(ctx context.Context) (cachedIdentity, error) {
		identity, found, fetchErr := l.base.FindByID(ctx, id)
		if fetchErr != nil {
			return cachedIdentity{}, fetchErr
		}
		return cachedIdentity{Identity: identity, Found: found}, nil
	})
	if err != nil {
		return core.Identity{}, false, err
	}
	return cached.Identity, cached.Found, nil
}

var _ core.IdentityLookup = (*CachedLookup)(nil)
