package notes

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-guard/core"
)

func TestCreateRequiresOwnerAndTitle(t *testing.T) {
	service := newTestService(t)

	if _, err := service.Create(context.Background(), "", core.CreateNoteInput{Title: "x"}); err == nil {
		t.Fatal("expected missing owner rejection")
	}
	if _, err := service.Create(context.Background(), "user-1", core.CreateNoteInput{Title: "  "}); err == nil {
		t.Fatal("expected missing title rejection")
	}

	note, err := service.Create(context.Background(), "user-1", core.CreateNoteInput{Title: "groceries"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if note.OwnerID != "user-1" {
		t.Fatalf("expected owner user-1, got %s", note.OwnerID)
	}
}

func TestGetHidesMissingNotes(t *testing.T) {
	service := newTestService(t)

	_, err := service.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected hidden rejection")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %v", err)
	}
	if rich.Code != http.StatusBadRequest || rich.Message != "Note not found" {
		t.Fatalf("expected 400 Note not found, got %d %q", rich.Code, rich.Message)
	}
}

func TestListMineIsScopedToOwner(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if _, err := service.Create(ctx, "user-1", core.CreateNoteInput{Title: "mine"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := service.Create(ctx, "user-2", core.CreateNoteInput{Title: "theirs"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, err := service.ListMine(ctx, "user-1")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 1 || mine[0].Title != "mine" {
		t.Fatalf("expected only the owner's note, got %+v", mine)
	}

	all, err := service.ListAll(ctx, core.NoteFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both notes, got %d", len(all))
	}
}

func TestUpdateAndDeleteLifecycle(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	note, err := service.Create(ctx, "user-1", core.CreateNoteInput{Title: "groceries", Content: "milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.Update(ctx, note.ID, core.UpdateNoteInput{Content: "milk, eggs"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != "milk, eggs" {
		t.Fatalf("expected updated content, got %q", updated.Content)
	}

	if err := service.Delete(ctx, note.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := service.Delete(ctx, note.ID); err == nil {
		t.Fatal("expected hidden rejection on double delete")
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	service, err := NewService(Config{Store: &memoryNoteStore{notes: map[string]core.Note{}}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

type memoryNoteStore struct {
	notes map[string]core.Note
	next  int
}

func (m *memoryNoteStore) Create(ctx context.Context, ownerID string, in core.CreateNoteInput) (core.Note, error) {
	m.next++
	note := core.Note{
		ID:      fmt.Sprintf("note-%d", m.next),
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		OwnerID: ownerID,
	}
	m.notes[note.ID] = note
	return note, nil
}

func (m *memoryNoteStore) GetByID(ctx context.Context, id string) (core.Note, bool, error) {
	note, ok := m.notes[id]
	return note, ok, nil
}

func (m *memoryNoteStore) ListByOwner(ctx context.Context, ownerID string) ([]core.Note, error) {
	out := []core.Note{}
	for _, note := range m.notes {
		if note.OwnerID == ownerID {
			out = append(out, note)
		}
	}
	return out, nil
}

func (m *memoryNoteStore) List(ctx context.Context, filter core.NoteFilter) ([]core.Note, error) {
	out := []core.Note{}
	for _, note := range m.notes {
		if filter.OwnerID != "" && note.OwnerID != filter.OwnerID {
			continue
		}
		out = append(out, note)
	}
	return out, nil
}

func (m *memoryNoteStore) Update(ctx context.Context, id string, in core.UpdateNoteInput) (core.Note, error) {
	note, ok := m.notes[id]
	if !ok {
		return core.Note{}, sql.ErrNoRows
	}
	if title := strings.TrimSpace(in.Title); title != "" {
		note.Title = title
	}
	if in.Content != "" {
		note.Content = in.Content
	}
	m.notes[id] = note
	return note, nil
}

func (m *memoryNoteStore) Delete(ctx context.Context, id string) error {
	if _, ok := m.notes[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.notes, id)
	return nil
}
