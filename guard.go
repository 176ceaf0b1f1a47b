package guard

import (
	"context"
	"net/http"

	glog "github.com/goliatone/go-logger/glog"
	repositorycache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-guard/auth"
	"github.com/goliatone/go-guard/core"
	"github.com/goliatone/go-guard/identity"
	"github.com/goliatone/go-guard/notes"
	"github.com/goliatone/go-guard/pipeline"
	"github.com/goliatone/go-guard/rest"
	sqlstore "github.com/goliatone/go-guard/store/sql"
	"github.com/goliatone/go-guard/transport"
	"github.com/goliatone/go-guard/users"
)

type Config = core.Config

type TokenConfig = core.TokenConfig

type HashConfig = core.HashConfig

type Identity = core.Identity
type User = core.User
type Note = core.Note
type Role = core.Role
type Claims = core.Claims
type Envelope = core.Envelope

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// Guard is the assembled stack: credential verification, identity
// resolution, the gate chain, the domain services, and the transport
// surfaces, all built from one resolved configuration.
type Guard struct {
	config     core.Config
	logger     core.Logger
	verifier   *auth.Verifier
	resolver   *identity.Resolver
	chain      *pipeline.Chain
	normalizer *transport.Normalizer
	responders *transport.Registry
	stores     core.StoreProvider
	users      *users.Service
	notes      *notes.Service
	handlers   *rest.Handlers
	commands   Commands
}

type Option func(*setupOptions)

type setupOptions struct {
	logger          core.Logger
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	runtime         core.Config
	client          any
	storeFactory    core.RepositoryStoreFactory
	stores          core.StoreProvider
	identityCache   repositorycache.CacheService
	errorMapper     core.ErrorMapper
	dbDriver        string
	dbDSN           string
}

func WithLogger(logger core.Logger) Option {
	return func(o *setupOptions) { o.logger = logger }
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(o *setupOptions) { o.configProvider = provider }
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(o *setupOptions) { o.optionsResolver = resolver }
}

// WithRuntimeConfig layers programmatic overrides on top of loaded
// configuration. Runtime values win.
func WithRuntimeConfig(cfg Config) Option {
	return func(o *setupOptions) { o.runtime = cfg }
}

// WithPersistenceClient accepts a go-persistence-bun client, a *bun.DB, or
// anything exposing DB() *bun.DB.
func WithPersistenceClient(client any) Option {
	return func(o *setupOptions) { o.client = client }
}

// WithDatabase opens the database from a driver name and DSN instead of an
// injected client.
func WithDatabase(driver, dsn string) Option {
	return func(o *setupOptions) {
		o.dbDriver = driver
		o.dbDSN = dsn
	}
}

func WithStoreFactory(factory core.RepositoryStoreFactory) Option {
	return func(o *setupOptions) { o.storeFactory = factory }
}

// WithStores bypasses the repository factory entirely. Test seams and
// non-SQL backends plug in here.
func WithStores(stores core.StoreProvider) Option {
	return func(o *setupOptions) { o.stores = stores }
}

// WithIdentityCache decorates identity reads with a read-through cache.
// Authorization decisions are never cached, only the records they read.
func WithIdentityCache(cache repositorycache.CacheService) Option {
	return func(o *setupOptions) { o.identityCache = cache }
}

func WithErrorMapper(mapper core.ErrorMapper) Option {
	return func(o *setupOptions) { o.errorMapper = mapper }
}

// Setup resolves configuration, builds every collaborator, and wires the
// full request path. It is the single entry point a host application needs.
func Setup(ctx context.Context, opts ...Option) (*Guard, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := setupOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}
	logger := glog.Ensure(options.logger)

	cfg, err := resolveConfig(ctx, options)
	if err != nil {
		return nil, err
	}

	verifier, err := auth.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	stores, err := resolveStores(options)
	if err != nil {
		return nil, err
	}

	var lookup core.IdentityLookup = identity.UserStoreLookup{Store: stores.UserStore()}
	if options.identityCache != nil {
		cached, err := identity.NewCachedLookup(lookup, options.identityCache)
		if err != nil {
			return nil, err
		}
		lookup = cached
	}
	resolver, err := identity.NewResolver(identity.Config{
		Lookup: lookup,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := users.NewHasher(cfg.Hash.Cost)
	if err != nil {
		return nil, err
	}
	userService, err := users.NewService(users.Config{
		Store:  stores.UserStore(),
		Issuer: verifier,
		Hasher: hasher,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	noteService, err := notes.NewService(notes.Config{
		Store:  stores.NoteStore(),
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	chain, err := pipeline.NewChain(
		pipeline.WithVerifier(verifier),
		pipeline.WithResolver(resolver),
		pipeline.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	normalizerOpts := []transport.NormalizerOption{
		transport.WithNormalizerLogger(logger),
	}
	if options.errorMapper != nil {
		normalizerOpts = append(normalizerOpts, transport.WithErrorMapper(options.errorMapper))
	}
	normalizer := transport.NewNormalizer(normalizerOpts...)
	responders := transport.NewDefaultRegistry()

	noteOwners, err := resolveNoteOwners(stores)
	if err != nil {
		return nil, err
	}
	handlers, err := rest.NewHandlers(rest.Config{
		Users:      userService,
		Notes:      noteService,
		Chain:      chain,
		Normalizer: normalizer,
		Responders: responders,
		UserOwners: users.SelfOwnership{Store: stores.UserStore()},
		NoteOwners: noteOwners,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	return &Guard{
		config:     cfg,
		logger:     logger,
		verifier:   verifier,
		resolver:   resolver,
		chain:      chain,
		normalizer: normalizer,
		responders: responders,
		stores:     stores,
		users:      userService,
		notes:      noteService,
		handlers:   handlers,
		commands:   NewCommands(userService, noteService),
	}, nil
}

func resolveConfig(ctx context.Context, options setupOptions) (core.Config, error) {
	defaults := core.DefaultConfig()

	provider := options.configProvider
	if provider == nil {
		provider = core.NewCfgxConfigProvider(nil)
	}
	loaded, err := provider.Load(ctx, defaults)
	if err != nil {
		return core.Config{}, err
	}

	resolver := options.optionsResolver
	if resolver == nil {
		resolver = core.GoOptionsResolver{}
	}
	return resolver.Resolve(defaults, loaded, options.runtime)
}

func resolveStores(options setupOptions) (core.StoreProvider, error) {
	if options.stores != nil {
		return options.stores, nil
	}

	client := options.client
	if client == nil && options.dbDSN != "" {
		db, err := sqlstore.OpenDB(options.dbDriver, options.dbDSN)
		if err != nil {
			return nil, err
		}
		client = db
	}
	if client == nil {
		return nil, guardConfigError("guard: a persistence client, database DSN, or store provider is required")
	}

	factory := options.storeFactory
	if factory == nil {
		factory = sqlstore.NewRepositoryFactory()
	}
	return factory.BuildStores(client)
}

func resolveNoteOwners(stores core.StoreProvider) (core.OwnershipLookup, error) {
	if provider, ok := stores.(interface{ NoteOwners() core.OwnershipLookup }); ok {
		if owners := provider.NoteOwners(); owners != nil {
			return owners, nil
		}
	}
	if owners, ok := stores.NoteStore().(core.OwnershipLookup); ok {
		return owners, nil
	}
	return nil, guardConfigError("guard: note store does not expose an ownership lookup")
}

func (g *Guard) Config() core.Config {
	if g == nil {
		return core.Config{}
	}
	return g.config
}

// Router returns the fully wired HTTP surface.
func (g *Guard) Router() http.Handler {
	if g == nil || g.handlers == nil {
		return http.NotFoundHandler()
	}
	return g.handlers.Router()
}

func (g *Guard) Handlers() *rest.Handlers {
	if g == nil {
		return nil
	}
	return g.handlers
}

func (g *Guard) Chain() *pipeline.Chain {
	if g == nil {
		return nil
	}
	return g.chain
}

func (g *Guard) Normalizer() *transport.Normalizer {
	if g == nil {
		return nil
	}
	return g.normalizer
}

func (g *Guard) Responders() *transport.Registry {
	if g == nil {
		return nil
	}
	return g.responders
}

func (g *Guard) Verifier() *auth.Verifier {
	if g == nil {
		return nil
	}
	return g.verifier
}

func (g *Guard) Resolver() *identity.Resolver {
	if g == nil {
		return nil
	}
	return g.resolver
}

func (g *Guard) Stores() core.StoreProvider {
	if g == nil {
		return nil
	}
	return g.stores
}

func (g *Guard) Users() *users.Service {
	if g == nil {
		return nil
	}
	return g.users
}

func (g *Guard) Notes() *notes.Service {
	if g == nil {
		return nil
	}
	return g.notes
}

func (g *Guard) Commands() Commands {
	if g == nil {
		return Commands{}
	}
	return g.commands
}
