package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-guard/core"
	"github.com/uptrace/bun"
)

type NoteStore struct {
	db   *bun.DB
	repo repository.Repository[*noteRecord]
}

func (s *NoteStore) Create(ctx context.Context, ownerID string, in core.CreateNoteInput) (core.Note, error) {
	if s == nil || s.repo == nil {
		return core.Note{}, fmt.Errorf("sqlstore: note store is not configured")
	}
	if strings.TrimSpace(ownerID) == "" {
		return core.Note{}, fmt.Errorf("sqlstore: note owner id is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return core.Note{}, fmt.Errorf("sqlstore: note title is required")
	}

	record := newNoteRecord(ownerID, in, time.Now().UTC())
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.Note{}, err
	}
	return created.toDomain(), nil
}

func (s *NoteStore) GetByID(ctx context.Context, id string) (core.Note, bool, error) {
	if s == nil || s.db == nil {
		return core.Note{}, false, fmt.Errorf("sqlstore: note store is not configured")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return core.Note{}, false, nil
	}

	record := &noteRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", trimmed).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.Note{}, false, nil
		}
		return core.Note{}, false, err
	}
	return record.toDomain(), true, nil
}

func (s *NoteStore) ListByOwner(ctx context.Context, ownerID string) ([]core.Note, error) {
	return s.List(ctx, core.NoteFilter{OwnerID: ownerID})
}

func (s *NoteStore) List(ctx context.Context, filter core.NoteFilter) ([]core.Note, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: note store is not configured")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 25
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	selectors := []repository.SelectCriteria{
		repository.OrderBy("created_at DESC"),
		repository.SelectPaginate(limit, offset),
	}
	if ownerID := strings.TrimSpace(filter.OwnerID); ownerID != "" {
		selectors = append(selectors, repository.SelectBy("user_id", "=", ownerID))
	}

	records, _, err := s.repo.List(ctx, selectors...)
	if err != nil {
		return nil, err
	}
	out := make([]core.Note, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *NoteStore) Update(ctx context.Context, id string, in core.UpdateNoteInput) (core.Note, error) {
	if s == nil || s.repo == nil {
		return core.Note{}, fmt.Errorf("sqlstore: note store is not configured")
	}
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return core.Note{}, fmt.Errorf("sqlstore: note id is required")
	}

	current, found, err := s.GetByID(ctx, trimmedID)
	if err != nil {
		return core.Note{}, err
	}
	if !found {
		return core.Note{}, sql.ErrNoRows
	}

	record := &noteRecord{
		ID:        current.ID,
		Title:     current.Title,
		Content:   current.Content,
		UserID:    current.OwnerID,
		CreatedAt: current.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	if title := strings.TrimSpace(in.Title); title != "" {
		record.Title = title
	}
	if in.Content != "" {
		record.Content = in.Content
	}

	updated, err := s.repo.Update(ctx, record, repository.UpdateByID(trimmedID))
	if err != nil {
		return core.Note{}, err
	}
	return updated.toDomain(), nil
}

func (s *NoteStore) Delete(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: note store is not configured")
	}
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return fmt.Errorf("sqlstore: note id is required")
	}

	result, err := s.db.NewDelete().
		Model((*noteRecord)(nil)).
		Where("id = ?", trimmedID).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindOwner adapts the store to the ownership lookup contract: it maps a
// note id to the owning user id without loading the full record.
func (s *NoteStore) FindOwner(ctx context.Context, resourceID string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, fmt.Errorf("sqlstore: note store is not configured")
	}
	trimmed := strings.TrimSpace(resourceID)
	if trimmed == "" {
		return "", false, nil
	}

	var ownerID string
	err := s.db.NewSelect().
		Model((*noteRecord)(nil)).
		Column("user_id").
		Where("?TableAlias.id = ?", trimmed).
		Limit(1).
		Scan(ctx, &ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return ownerID, true, nil
}
