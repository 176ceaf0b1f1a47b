package core

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(value string) (Role, error) {
	switch Role(strings.TrimSpace(strings.ToLower(value))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("core: unknown role %q", value)
	}
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the read view of a caller the pipeline attaches to a request:
// everything a gate needs and nothing it must not see.
type Identity struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is the full persisted record. The password hash never leaves the
// stores and the users service.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	Active       bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Identity() Identity {
	return Identity{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type Note struct {
	ID        string
	Title     string
	Content   string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Claims is the decoded, verified payload of a credential.
type Claims struct {
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}

type UpdateUserInput struct {
	Email string
	Name  string
}

type UserFilter struct {
	Name   string
	Active *bool
	Limit  int
	Offset int
}

type CreateNoteInput struct {
	Title   string
	Content string
}

type UpdateNoteInput struct {
	Title   string
	Content string
}

type NoteFilter struct {
	OwnerID string
	Limit   int
	Offset  int
}
