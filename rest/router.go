package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-guard/core"
	"github.com/goliatone/go-guard/notes"
	"github.com/goliatone/go-guard/pipeline"
	"github.com/goliatone/go-guard/transport"
	"github.com/goliatone/go-guard/users"
)

type Config struct {
	Users      *users.Service
	Notes      *notes.Service
	Chain      *pipeline.Chain
	Normalizer *transport.Normalizer
	Responders *transport.Registry
	UserOwners core.OwnershipLookup
	NoteOwners core.OwnershipLookup
	Logger     core.Logger
}

type Handlers struct {
	users      *users.Service
	notes      *notes.Service
	chain      *pipeline.Chain
	normalizer *transport.Normalizer
	responders *transport.Registry
	logger     core.Logger
}

func NewHandlers(cfg Config) (*Handlers, error) {
	if cfg.Users == nil || cfg.Notes == nil {
		return nil, restConfigError("rest: user and note services are required")
	}
	if cfg.Chain == nil {
		return nil, restConfigError("rest: guard chain is required")
	}
	if cfg.UserOwners == nil || cfg.NoteOwners == nil {
		return nil, restConfigError("rest: ownership lookups are required")
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = transport.NewNormalizer()
	}
	if cfg.Responders == nil {
		cfg.Responders = transport.NewDefaultRegistry()
	}

	h := &Handlers{
		users:      cfg.Users,
		notes:      cfg.Notes,
		chain:      cfg.Chain,
		normalizer: cfg.Normalizer,
		responders: cfg.Responders,
		logger:     glog.Ensure(cfg.Logger),
	}
	if err := h.registerDescriptors(cfg.UserOwners, cfg.NoteOwners); err != nil {
		return nil, err
	}
	return h, nil
}

// registerDescriptors is the startup route table: one descriptor per
// protected route, keyed by method and chi pattern. Registration routes
// stay unlisted, which makes them public.
func (h *Handlers) registerDescriptors(userOwners, noteOwners core.OwnershipLookup) error {
	bothRoles := []core.Role{core.RoleUser, core.RoleAdmin}
	adminOnly := []core.Role{core.RoleAdmin}
	userOwned := &pipeline.OwnershipRule{Param: "id", Resource: "User", Lookup: userOwners}
	noteOwned := &pipeline.OwnershipRule{Param: "id", Resource: "Note", Lookup: noteOwners}

	table := map[string]pipeline.Descriptor{
		"GET /users": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
			AllowedRoles: bothRoles,
		},
		"GET /users/{id}": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
			AllowedRoles: bothRoles,
			Ownership:    userOwned,
		},
		"PUT /users/block/{id}": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
			AllowedRoles: adminOnly,
		},
		"PUT /users/{id}": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
			AllowedRoles: bothRoles,
			Ownership:    userOwned,
		},
		"DELETE /users/{id}": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
			AllowedRoles: bothRoles,
			Ownership:    userOwned,
		},
		"POST /notes": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
		},
		"GET /notes": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
		},
		"GET /notes/all": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
			AllowedRoles: adminOnly,
		},
		"GET /notes/{id}": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
			AllowedRoles: bothRoles,
			Ownership:    noteOwned,
		},
		"PUT /notes/{id}": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
			AllowedRoles: bothRoles,
			Ownership:    noteOwned,
		},
		"DELETE /notes/{id}": {
			RequiresAuth: true,
			ActiveGate:   pipeline.ActiveOnly(),
			AllowedRoles: bothRoles,
			Ownership:    noteOwned,
		},
	}

	registry := h.chain.Descriptors()
	for routeID, descriptor := range table {
		if err := registry.Register(routeID, descriptor); err != nil {
			return err
		}
	}
	return nil
}

// Router wires the chi routes. Guarded routes pass through the chain first.
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.registerUser)
		r.Post("/login", h.login)
		r.Get("/", h.guard("GET /users", h.listUsers))
		r.Get("/{id}", h.guard("GET /users/{id}", h.getUser))
		r.Put("/block/{id}", h.guard("PUT /users/block/{id}", h.blockUser))
		r.Put("/{id}", h.guard("PUT /users/{id}", h.updateUser))
		r.Delete("/{id}", h.guard("DELETE /users/{id}", h.deleteUser))
	})

	r.Route("/notes", func(r chi.Router) {
		r.Post("/", h.guard("POST /notes", h.createNote))
		r.Get("/", h.guard("GET /notes", h.listMyNotes))
		r.Get("/all", h.guard("GET /notes/all", h.listAllNotes))
		r.Get("/{id}", h.guard("GET /notes/{id}", h.getNote))
		r.Put("/{id}", h.guard("PUT /notes/{id}", h.updateNote))
		r.Delete("/{id}", h.guard("DELETE /notes/{id}", h.deleteNote))
	})

	return r
}
