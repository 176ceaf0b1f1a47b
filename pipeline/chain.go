package pipeline

import (
	"context"
	"slices"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-guard/core"
)

// State names the guard chain's position. The chain only ever moves forward
// through the gate order; any failure is terminal.
type State string

const (
	StateUnauthenticated  State = "unauthenticated"
	StateAuthenticated    State = "authenticated"
	StateActiveChecked    State = "active_checked"
	StateRoleChecked      State = "role_checked"
	StateOwnershipChecked State = "ownership_checked"
	StateRejected         State = "rejected"
)

// Request is the transport-neutral view of one inbound request the chain
// evaluates.
type Request struct {
	RouteID    string
	Method     string
	Path       string
	Credential string
	Params     map[string]string
	Metadata   map[string]any
}

// Decision is the outcome of one chain run. OwnerID is populated when an
// ownership gate ran so downstream business logic can reuse the fetched
// owner instead of re-querying.
type Decision struct {
	State    State
	Allowed  bool
	Identity *core.Identity
	OwnerID  string
}

// Chain runs the ordered gate sequence {authentication, active-account,
// role, ownership} for a route, short-circuiting on the first failure and
// attaching the resolved identity to the request context.
type Chain struct {
	verifier    core.CredentialVerifier
	resolver    core.IdentityResolver
	descriptors *Registry
	ownership   *OwnershipEvaluator
	logger      core.Logger
}

type Option func(*Chain)

func WithVerifier(verifier core.CredentialVerifier) Option {
	return func(c *Chain) {
		c.verifier = verifier
	}
}

func WithResolver(resolver core.IdentityResolver) Option {
	return func(c *Chain) {
		c.resolver = resolver
	}
}

func WithDescriptors(registry *Registry) Option {
	return func(c *Chain) {
		c.descriptors = registry
	}
}

func WithLogger(logger core.Logger) Option {
	return func(c *Chain) {
		c.logger = logger
	}
}

func NewChain(opts ...Option) (*Chain, error) {
	chain := &Chain{
		descriptors: NewRegistry(),
		logger:      glog.Nop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(chain)
	}
	if chain.verifier == nil {
		return nil, pipelineInternal("pipeline: credential verifier is required", nil)
	}
	if chain.resolver == nil {
		return nil, pipelineInternal("pipeline: identity resolver is required", nil)
	}
	chain.logger = glog.Ensure(chain.logger)
	chain.ownership = NewOwnershipEvaluator(chain.logger)
	return chain, nil
}

// Descriptors exposes the route table for registration at startup.
func (c *Chain) Descriptors() *Registry {
	if c == nil {
		return nil
	}
	return c.descriptors
}

// Authorize evaluates the gate chain for the request's route. On success the
// returned context carries the resolved identity (when authentication ran)
// for downstream business logic. On failure the decision is terminal and the
// error carries the surfaced category, status, and message.
func (c *Chain) Authorize(ctx context.Context, req Request) (context.Context, Decision, error) {
	if c == nil {
		return ctx, Decision{State: StateRejected}, pipelineInternal("pipeline: chain is not configured", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	descriptor, registered := c.descriptors.Get(req.RouteID)
	if !registered || descriptor.Public() {
		return ctx, Decision{State: StateUnauthenticated, Allowed: true}, nil
	}

	state := StateUnauthenticated
	var identity *core.Identity

	if descriptor.RequiresAuth {
		if err := ctx.Err(); err != nil {
			return c.reject(ctx, req, state, identity, pipelineCanceled(err, nil))
		}
		claims, err := c.verifier.Verify(req.Credential)
		if err != nil {
			return c.reject(ctx, req, state, identity, err)
		}
		resolved, err := c.resolver.Resolve(ctx, claims.SubjectID)
		if err != nil {
			return c.reject(ctx, req, state, identity, err)
		}
		identity = &resolved
		ctx = core.WithIdentity(ctx, resolved)
		state = StateAuthenticated
	}

	if descriptor.ActiveGate != nil {
		if err := ctx.Err(); err != nil {
			return c.reject(ctx, req, state, identity, pipelineCanceled(err, nil))
		}
		// An absent identity fails this gate; it is a check, not a skip.
		if identity == nil || identity.Active != *descriptor.ActiveGate {
			return c.reject(ctx, req, state, identity, pipelineForbidden("Forbidden", map[string]any{
				"gate": "active",
			}))
		}
		state = StateActiveChecked
	}

	if len(descriptor.AllowedRoles) > 0 {
		if err := ctx.Err(); err != nil {
			return c.reject(ctx, req, state, identity, pipelineCanceled(err, nil))
		}
		if identity == nil || !slices.Contains(descriptor.AllowedRoles, identity.Role) {
			return c.reject(ctx, req, state, identity, pipelineForbidden(
				"You do not have permission to access this resource",
				map[string]any{"gate": "role"},
			))
		}
		state = StateRoleChecked
	}

	ownerID := ""
	if descriptor.Ownership != nil {
		if err := ctx.Err(); err != nil {
			return c.reject(ctx, req, state, identity, pipelineCanceled(err, nil))
		}
		resolvedOwner, err := c.ownership.Evaluate(ctx, *descriptor.Ownership, req.Params, identity)
		if err != nil {
			return c.reject(ctx, req, state, identity, err)
		}
		ownerID = resolvedOwner
		state = StateOwnershipChecked
	}

	return ctx, Decision{
		State:    state,
		Allowed:  true,
		Identity: identity,
		OwnerID:  ownerID,
	}, nil
}

func (c *Chain) reject(ctx context.Context, req Request, state State, identity *core.Identity, cause error) (context.Context, Decision, error) {
	fields := map[string]any{
		"route_id": strings.TrimSpace(req.RouteID),
		"method":   strings.TrimSpace(req.Method),
		"path":     strings.TrimSpace(req.Path),
		"state":    string(state),
	}
	if identity != nil {
		fields["identity_id"] = identity.ID
		fields["identity_role"] = string(identity.Role)
	}
	var rich *goerrors.Error
	if goerrors.As(cause, &rich) {
		fields["status"] = rich.Code
		fields["text_code"] = rich.TextCode
	}
	fields["error"] = cause.Error()

	logger := c.logger.WithContext(ctx)
	if fieldsLogger, ok := logger.(core.FieldsLogger); ok {
		logger = fieldsLogger.WithFields(fields)
	}
	logger.Warn("request rejected by guard chain")

	return ctx, Decision{State: StateRejected, Identity: identity}, cause
}
