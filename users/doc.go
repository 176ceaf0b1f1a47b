// Package users implements account management: registration, login,
// profile reads and updates, blocking, and deletion. Route-level gates run
// before any of these; the service only enforces rules that depend on
// stored state, like email uniqueness and login checks.
package users
