package sqlstore

import (
	"strings"
	"time"

	"github.com/goliatone/go-guard/core"
)

func newUserRecord(in core.CreateUserInput, role core.Role, passwordHash string, now time.Time) *userRecord {
	return &userRecord{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Name:         strings.TrimSpace(in.Name),
		Role:         string(role),
		Active:       true,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (r *userRecord) toDomain() core.User {
	if r == nil {
		return core.User{}
	}
	return core.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		Role:         core.Role(r.Role),
		Active:       r.Active,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func newNoteRecord(ownerID string, in core.CreateNoteInput, now time.Time) *noteRecord {
	return &noteRecord{
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		UserID:    strings.TrimSpace(ownerID),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *noteRecord) toDomain() core.Note {
	if r == nil {
		return core.Note{}
	}
	return core.Note{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		OwnerID:   r.UserID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
