// Package core contains the canonical guard domain contracts, entities, and
// error taxonomy. Gate evaluators and transport responders must depend on
// this package; core must not depend on transport- or storage-specific
// adapters.
package core
