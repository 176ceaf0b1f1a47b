// Package pipeline evaluates the per-route authorization chain: credential
// verification, account-activity gating, role matching, and resource
// ownership, in that fixed order, short-circuiting on the first failure.
//
// Descriptors are registered once at startup and never mutated afterwards,
// so concurrent requests read them without synchronization. Each request
// carries its own authorization context; no decision state survives a
// request.
package pipeline
