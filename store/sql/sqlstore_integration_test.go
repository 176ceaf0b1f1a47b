package sqlstore_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-guard/core"
	sqlstore "github.com/goliatone/go-guard/store/sql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestUserStoreLifecycle(t *testing.T) {
	factory, cleanup := newSQLiteFactory(t)
	defer cleanup()
	ctx := context.Background()
	users := factory.UserStore()

	created, err := users.Create(ctx, core.CreateUserInput{
		Email: "  Alice@Example.COM ",
		Name:  "Alice",
	}, "hashed-password")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated user id")
	}
	if created.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.Role != core.RoleUser {
		t.Fatalf("expected default user role, got %s", created.Role)
	}
	if !created.Active {
		t.Fatal("expected new users to start active")
	}

	fetched, found, err := users.GetByID(ctx, created.ID)
	if err != nil || !found {
		t.Fatalf("get by id: found=%v err=%v", found, err)
	}
	if fetched.PasswordHash != "hashed-password" {
		t.Fatalf("expected stored hash, got %q", fetched.PasswordHash)
	}

	byEmail, found, err := users.GetByEmail(ctx, "ALICE@example.com")
	if err != nil || !found {
		t.Fatalf("get by email: found=%v err=%v", found, err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("expected same user, got %s", byEmail.ID)
	}

	updated, err := users.Update(ctx, created.ID, core.UpdateUserInput{Name: "Alice B"})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Name != "Alice B" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	if updated.Email != created.Email {
		t.Fatalf("expected email untouched, got %q", updated.Email)
	}

	blocked, err := users.SetActive(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("set active: %v", err)
	}
	if blocked.Active {
		t.Fatal("expected user to be blocked")
	}

	if err := users.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, found, err := users.GetByID(ctx, created.ID); err != nil || found {
		t.Fatalf("expected user gone, found=%v err=%v", found, err)
	}
	if err := users.Delete(ctx, created.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected no rows on double delete, got %v", err)
	}
}

func TestUserStoreListFilters(t *testing.T) {
	factory, cleanup := newSQLiteFactory(t)
	defer cleanup()
	ctx := context.Background()
	users := factory.UserStore()

	seedUser(t, users, "alice@example.com", "Alice")
	bob := seedUser(t, users, "bob@example.com", "Bob")
	seedUser(t, users, "carol@example.com", "Carol")

	if _, err := users.SetActive(ctx, bob.ID, false); err != nil {
		t.Fatalf("block bob: %v", err)
	}

	active := true
	listed, err := users.List(ctx, core.UserFilter{Active: &active})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 active users, got %d", len(listed))
	}

	named, err := users.List(ctx, core.UserFilter{Name: "bo"})
	if err != nil {
		t.Fatalf("list by name: %v", err)
	}
	if len(named) != 1 || named[0].ID != bob.ID {
		t.Fatalf("expected bob only, got %+v", named)
	}

	paged, err := users.List(ctx, core.UserFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list paged: %v", err)
	}
	if len(paged) != 1 {
		t.Fatalf("expected a single page entry, got %d", len(paged))
	}
}

func TestNoteStoreLifecycleAndOwnership(t *testing.T) {
	factory, cleanup := newSQLiteFactory(t)
	defer cleanup()
	ctx := context.Background()
	users := factory.UserStore()
	notes := factory.NoteStore()

	owner := seedUser(t, users, "owner@example.com", "Owner")
	other := seedUser(t, users, "other@example.com", "Other")

	created, err := notes.Create(ctx, owner.ID, core.CreateNoteInput{
		Title:   "groceries",
		Content: "milk, eggs",
	})
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if created.OwnerID != owner.ID {
		t.Fatalf("expected owner %s, got %s", owner.ID, created.OwnerID)
	}

	if _, err := notes.Create(ctx, other.ID, core.CreateNoteInput{Title: "todo"}); err != nil {
		t.Fatalf("create second note: %v", err)
	}

	mine, err := notes.ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("expected only the owner's note, got %+v", mine)
	}

	all, err := notes.List(ctx, core.NoteFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(all))
	}

	owners := factory.NoteOwners()
	ownerID, found, err := owners.FindOwner(ctx, created.ID)
	if err != nil || !found {
		t.Fatalf("find owner: found=%v err=%v", found, err)
	}
	if ownerID != owner.ID {
		t.Fatalf("expected owner %s, got %s", owner.ID, ownerID)
	}
	if _, found, err := owners.FindOwner(ctx, "missing-note"); err != nil || found {
		t.Fatalf("expected absent owner, found=%v err=%v", found, err)
	}

	updated, err := notes.Update(ctx, created.ID, core.UpdateNoteInput{Content: "milk only"})
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	if updated.Content != "milk only" || updated.Title != "groceries" {
		t.Fatalf("expected partial update, got %+v", updated)
	}

	if err := notes.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	if _, found, err := notes.GetByID(ctx, created.ID); err != nil || found {
		t.Fatalf("expected note gone, found=%v err=%v", found, err)
	}
}

func TestFactoryRejectsUnsupportedClients(t *testing.T) {
	if _, err := sqlstore.NewRepositoryFactory().BuildStores(nil); err == nil {
		t.Fatal("expected nil client to fail")
	}
	if _, err := sqlstore.NewRepositoryFactory().BuildStores("not a db"); err == nil {
		t.Fatal("expected unsupported client to fail")
	}
}

func newSQLiteFactory(t *testing.T) (*sqlstore.RepositoryFactory, func()) {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:guard-test-%d?mode=memory&cache=shared&_foreign_keys=on",
		time.Now().UnixNano(),
	)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	ctx := context.Background()
	for _, model := range []any{(*userModel)(nil), (*noteModel)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			_ = db.Close()
			t.Fatalf("create table: %v", err)
		}
	}

	factory, err := sqlstore.NewRepositoryFactoryFromDB(db)
	if err != nil {
		_ = db.Close()
		t.Fatalf("build factory: %v", err)
	}
	return factory, func() {
		_ = db.Close()
	}
}

func seedUser(t *testing.T, users core.UserStore, email, name string) core.User {
	t.Helper()
	user, err := users.Create(context.Background(), core.CreateUserInput{
		Email: email,
		Name:  name,
	}, "hash")
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

// test-side table definitions mirroring the store's records
type userModel struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string    `bun:"id,pk"`
	Email        string    `bun:"email,notnull,unique"`
	Name         string    `bun:"name,notnull"`
	Role         string    `bun:"role,notnull"`
	Active       bool      `bun:"active,notnull"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type noteModel struct {
	bun.BaseModel `bun:"table:notes,alias:n"`

	ID        string    `bun:"id,pk"`
	Title     string    `bun:"title,notnull"`
	Content   string    `bun:"content"`
	UserID    string    `bun:"user_id,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
