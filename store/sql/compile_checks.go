package sqlstore

import "github.com/goliatone/go-guard/core"

var (
	_ core.UserStore              = (*UserStore)(nil)
	_ core.NoteStore              = (*NoteStore)(nil)
	_ core.IdentityLookup         = (*UserStore)(nil)
	_ core.OwnershipLookup        = (*NoteStore)(nil)
	_ core.StoreProvider          = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory = (*RepositoryFactory)(nil)
)
