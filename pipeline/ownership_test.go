package pipeline

import (
	"context"
	"errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-guard/core"
)

func TestOwnershipEvaluatorRequiresResourceID(t *testing.T) {
	evaluator := NewOwnershipEvaluator(nil)
	rule := OwnershipRule{Param: "id", Resource: "Note", Lookup: &staticOwners{}}

	identity := activeUser()
	_, err := evaluator.Evaluate(context.Background(), rule, map[string]string{}, &identity)
	if err == nil {
		t.Fatal("expected missing resource id to fail")
	}
	assertCategory(t, err, goerrors.CategoryBadInput, http.StatusBadRequest)
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != core.GuardErrorBadInput {
		t.Fatalf("expected bad input text code, got %v", err)
	}
}

func TestOwnershipEvaluatorRequiresIdentity(t *testing.T) {
	evaluator := NewOwnershipEvaluator(nil)
	rule := OwnershipRule{Param: "id", Resource: "Note", Lookup: &staticOwners{}}

	_, err := evaluator.Evaluate(context.Background(), rule, map[string]string{"id": "note-1"}, nil)
	if err == nil {
		t.Fatal("expected missing identity to fail")
	}
	assertCategory(t, err, goerrors.CategoryAuth, http.StatusUnauthorized)
}

func TestOwnershipEvaluatorHidesMissingAndForeignResources(t *testing.T) {
	cases := []struct {
		name   string
		owners *staticOwners
	}{
		{name: "absent resource", owners: &staticOwners{owners: map[string]string{}}},
		{name: "foreign resource", owners: &staticOwners{owners: map[string]string{"note-1": "someone-else"}}},
		{name: "lookup failure", owners: &staticOwners{err: errors.New("db down")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			evaluator := NewOwnershipEvaluator(nil)
			rule := OwnershipRule{Param: "id", Resource: "Note", Lookup: tc.owners}

			identity := activeUser()
			_, err := evaluator.Evaluate(context.Background(), rule, map[string]string{"id": "note-1"}, &identity)
			if err == nil {
				t.Fatal("expected hidden rejection")
			}
			assertCategory(t, err, goerrors.CategoryBadInput, http.StatusBadRequest)
			var rich *goerrors.Error
			if !goerrors.As(err, &rich) {
				t.Fatalf("expected a rich error, got %v", err)
			}
			if rich.Message != "Note not found" {
				t.Fatalf("expected uniform hidden message, got %q", rich.Message)
			}
			if rich.TextCode != core.GuardErrorResourceNotFound {
				t.Fatalf("expected resource not found text code, got %s", rich.TextCode)
			}
		})
	}
}

func TestOwnershipEvaluatorAllowsOwnerAndAdmin(t *testing.T) {
	owners := &staticOwners{owners: map[string]string{"note-1": "user-1"}}
	rule := OwnershipRule{Param: "id", Resource: "Note", Lookup: owners}
	evaluator := NewOwnershipEvaluator(nil)

	owner := activeUser()
	ownerID, err := evaluator.Evaluate(context.Background(), rule, map[string]string{"id": "note-1"}, &owner)
	if err != nil {
		t.Fatalf("expected owner to pass, got %v", err)
	}
	if ownerID != "user-1" {
		t.Fatalf("expected resolved owner user-1, got %s", ownerID)
	}

	admin := activeUser()
	admin.ID = "admin-1"
	admin.Role = core.RoleAdmin
	if _, err := evaluator.Evaluate(context.Background(), rule, map[string]string{"id": "note-1"}, &admin); err != nil {
		t.Fatalf("expected admin to pass regardless of owner, got %v", err)
	}
}
