package notes

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-guard/core"
)

type Config struct {
	Store  core.NoteStore
	Logger core.Logger
}

type Service struct {
	store  core.NoteStore
	logger core.Logger
}

func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, notesOperation(nil, "notes: store is required")
	}
	return &Service{
		store:  cfg.Store,
		logger: glog.Ensure(cfg.Logger),
	}, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, in core.CreateNoteInput) (core.Note, error) {
	if s == nil {
		return core.Note{}, notesOperation(nil, "notes: service is not configured")
	}
	if strings.TrimSpace(ownerID) == "" {
		return core.Note{}, notesBadInput("An owner is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return core.Note{}, notesBadInput("Title is required")
	}

	created, err := s.store.Create(ctx, ownerID, in)
	if err != nil {
		return core.Note{}, notesOperation(err, "notes: create failed")
	}
	return created, nil
}

// ListMine returns the caller's own notes.
func (s *Service) ListMine(ctx context.Context, ownerID string) ([]core.Note, error) {
	if s == nil {
		return nil, notesOperation(nil, "notes: service is not configured")
	}
	listed, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, notesOperation(err, "notes: list failed")
	}
	return listed, nil
}

// ListAll returns notes across all owners. Reaching it requires the admin
// role gate.
func (s *Service) ListAll(ctx context.Context, filter core.NoteFilter) ([]core.Note, error) {
	if s == nil {
		return nil, notesOperation(nil, "notes: service is not configured")
	}
	listed, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, notesOperation(err, "notes: list failed")
	}
	return listed, nil
}

func (s *Service) Get(ctx context.Context, id string) (core.Note, error) {
	if s == nil {
		return core.Note{}, notesOperation(nil, "notes: service is not configured")
	}
	note, found, err := s.store.GetByID(ctx, id)
	if err != nil {
		return core.Note{}, notesOperation(err, "notes: lookup failed")
	}
	if !found {
		return core.Note{}, notesHidden()
	}
	return note, nil
}

func (s *Service) Update(ctx context.Context, id string, in core.UpdateNoteInput) (core.Note, error) {
	if s == nil {
		return core.Note{}, notesOperation(nil, "notes: service is not configured")
	}
	updated, err := s.store.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Note{}, notesHidden()
		}
		return core.Note{}, notesOperation(err, "notes: update failed")
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil {
		return notesOperation(nil, "notes: service is not configured")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notesHidden()
		}
		return notesOperation(err, "notes: delete failed")
	}
	return nil
}

func notesBadInput(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.GuardErrorBadInput)
}

// notesHidden matches the ownership gate's surface so a missing note and a
// foreign note are indistinguishable to the caller.
func notesHidden() error {
	return goerrors.New("Note not found", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.GuardErrorResourceNotFound)
}

func notesOperation(source error, message string) error {
	if source == nil {
		return goerrors.New(message, goerrors.CategoryOperation).
			WithCode(http.StatusInternalServerError).
			WithTextCode(core.GuardErrorOperationFailed)
	}
	return goerrors.Wrap(source, goerrors.CategoryOperation, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.GuardErrorOperationFailed)
}
