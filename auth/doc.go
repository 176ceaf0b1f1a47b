// Package auth verifies and issues the bearer credentials the guard chain
// consumes. Verification is pure over the credential and the process-wide
// signing secret; every failure mode collapses to an unauthenticated
// rejection so callers cannot distinguish expired, forged, and malformed
// credentials.
package auth
