// Package notes implements the note CRUD surface. Ownership checks run in
// the guard chain before these operations; the service trusts the owner id
// it is handed.
package notes
