package users

import (
	"context"
	"strings"

	"github.com/goliatone/go-guard/core"
)

// SelfOwnership maps a user resource to its owner: the user itself. It backs
// ownership gates on profile routes, where "owning" the resource means the
// route id matches the caller's own id.
type SelfOwnership struct {
	Store core.UserStore
}

func (s SelfOwnership) FindOwner(ctx context.Context, resourceID string) (string, bool, error) {
	if s.Store == nil {
		return "", false, usersOperation(nil, "users: ownership store is required")
	}
	id := strings.TrimSpace(resourceID)
	if id == "" {
		return "", false, nil
	}
	_, found, err := s.Store.GetByID(ctx, id)
	if err != nil || !found {
		return "", false, err
	}
	return id, true, nil
}

var _ core.OwnershipLookup = (*SelfOwnership)(nil)
