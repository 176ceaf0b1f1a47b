package pipeline

import (
	"context"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-guard/core"
)

// OwnershipEvaluator checks that the authenticated identity owns the
// resource named by a route parameter. Admins pass regardless of owner.
//
// Failures that would reveal whether a resource exists are reported as a
// generic "<Resource> not found" instead: a caller probing someone else's
// resource learns nothing it could not learn from a random identifier.
type OwnershipEvaluator struct {
	logger core.Logger
}

func NewOwnershipEvaluator(logger core.Logger) *OwnershipEvaluator {
	return &OwnershipEvaluator{logger: glog.Ensure(logger)}
}

// Evaluate returns the resource's owner id when access is allowed.
func (e *OwnershipEvaluator) Evaluate(ctx context.Context, rule OwnershipRule, params map[string]string, identity *core.Identity) (string, error) {
	if e == nil {
		return "", pipelineInternal("pipeline: ownership evaluator is not configured", nil)
	}
	if rule.Lookup == nil {
		return "", pipelineInternal("pipeline: ownership rule has no lookup", map[string]any{
			"resource": rule.Resource,
		})
	}

	resourceID := strings.TrimSpace(params[rule.Param])
	if resourceID == "" {
		return "", pipelineBadInput("resource id is required", map[string]any{
			"param":    rule.Param,
			"resource": rule.Resource,
		})
	}

	if identity == nil {
		return "", pipelineUnauthenticated("authentication is required", map[string]any{
			"gate":     "ownership",
			"resource": rule.Resource,
		})
	}

	ownerID, found, err := rule.Lookup.FindOwner(ctx, resourceID)
	if err != nil {
		e.logger.WithContext(ctx).Error("ownership lookup failed",
			"resource", rule.Resource,
			"resource_id", resourceID,
			"error", err,
		)
		return "", hiddenNotFound(rule.Resource, "ownership lookup failed", map[string]any{
			"resource_id": resourceID,
		})
	}
	if !found {
		return "", hiddenNotFound(rule.Resource, "resource does not exist", map[string]any{
			"resource_id": resourceID,
		})
	}

	if identity.Role == core.RoleAdmin || ownerID == identity.ID {
		return ownerID, nil
	}

	return "", hiddenNotFound(rule.Resource, "identity does not own the resource", map[string]any{
		"resource_id": resourceID,
	})
}
