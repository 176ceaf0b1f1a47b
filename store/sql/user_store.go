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

type UserStore struct {
	db   *bun.DB
	repo repository.Repository[*userRecord]
}

func (s *UserStore) Create(ctx context.Context, in core.CreateUserInput, passwordHash string) (core.User, error) {
	if s == nil || s.repo == nil {
		return core.User{}, fmt.Errorf("sqlstore: user store is not configured")
	}
	if strings.TrimSpace(in.Email) == "" {
		return core.User{}, fmt.Errorf("sqlstore: user email is required")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return core.User{}, fmt.Errorf("sqlstore: password hash is required")
	}

	record := newUserRecord(in, core.RoleUser, passwordHash, time.Now().UTC())
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.User{}, err
	}
	return created.toDomain(), nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (core.User, bool, error) {
	if s == nil || s.db == nil {
		return core.User{}, false, fmt.Errorf("sqlstore: user store is not configured")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return core.User{}, false, nil
	}

	record := &userRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", trimmed).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.User{}, false, nil
		}
		return core.User{}, false, err
	}
	return record.toDomain(), true, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (core.User, bool, error) {
	if s == nil || s.db == nil {
		return core.User{}, false, fmt.Errorf("sqlstore: user store is not configured")
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return core.User{}, false, nil
	}

	record := &userRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("lower(?TableAlias.email) = ?", normalized).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.User{}, false, nil
		}
		return core.User{}, false, err
	}
	return record.toDomain(), true, nil
}

func (s *UserStore) List(ctx context.Context, filter core.UserFilter) ([]core.User, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: user store is not configured")
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
		repository.OrderBy("created_at ASC"),
		repository.SelectPaginate(limit, offset),
	}
	if filter.Active != nil {
		active := *filter.Active
		selectors = append(selectors, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.active = ?", active)
		}))
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		pattern := "%" + strings.ToLower(name) + "%"
		selectors = append(selectors, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("lower(?TableAlias.name) LIKE ?", pattern)
		}))
	}

	records, _, err := s.repo.List(ctx, selectors...)
	if err != nil {
		return nil, err
	}
	out := make([]core.User, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *UserStore) Update(ctx context.Context, id string, in core.UpdateUserInput) (core.User, error) {
	if s == nil || s.repo == nil {
		return core.User{}, fmt.Errorf("sqlstore: user store is not configured")
	}
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return core.User{}, fmt.Errorf("sqlstore: user id is required")
	}

	current, found, err := s.GetByID(ctx, trimmedID)
	if err != nil {
		return core.User{}, err
	}
	if !found {
		return core.User{}, sql.ErrNoRows
	}

	record := &userRecord{
		ID:           current.ID,
		Email:        current.Email,
		Name:         current.Name,
		Role:         string(current.Role),
		Active:       current.Active,
		PasswordHash: current.PasswordHash,
		CreatedAt:    current.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		record.Email = email
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		record.Name = name
	}

	updated, err := s.repo.Update(ctx, record, repository.UpdateByID(trimmedID))
	if err != nil {
		return core.User{}, err
	}
	return updated.toDomain(), nil
}

func (s *UserStore) SetActive(ctx context.Context, id string, active bool) (core.User, error) {
	if s == nil || s.db == nil {
		return core.User{}, fmt.Errorf("sqlstore: user store is not configured")
	}
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return core.User{}, fmt.Errorf("sqlstore: user id is required")
	}

	result, err := s.db.NewUpdate().
		Model((*userRecord)(nil)).
		Set("active = ?", active).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", trimmedID).
		Exec(ctx)
	if err != nil {
		return core.User{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return core.User{}, err
	}
	if affected == 0 {
		return core.User{}, sql.ErrNoRows
	}

	updated, _, err := s.GetByID(ctx, trimmedID)
	return updated, err
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: user store is not configured")
	}
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return fmt.Errorf("sqlstore: user id is required")
	}

	result, err := s.db.NewDelete().
		Model((*userRecord)(nil)).
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

// FindByID adapts the store to the identity lookup contract.
func (s *UserStore) FindByID(ctx context.Context, id string) (core.Identity, bool, error) {
	user, found, err := s.GetByID(ctx, id)
	if err != nil || !found {
		return core.Identity{}, false, err
	}
	return user.Identity(), true, nil
}
