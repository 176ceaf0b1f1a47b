package command

import (
	"strings"

	"github.com/goliatone/go-guard/core"
)

const (
	TypeRegisterUser = "guard.command.user.register"
	TypeUpdateUser   = "guard.command.user.update"
	TypeBlockUser    = "guard.command.user.block"
	TypeDeleteUser   = "guard.command.user.delete"
	TypeCreateNote   = "guard.command.note.create"
	TypeUpdateNote   = "guard.command.note.update"
	TypeDeleteNote   = "guard.command.note.delete"
)

type RegisterUserMessage struct {
	Input core.CreateUserInput
}

func (RegisterUserMessage) Type() string { return TypeRegisterUser }

func (m RegisterUserMessage) Validate() error {
	if strings.TrimSpace(m.Input.Email) == "" {
		return commandValidationError("email", "email is required")
	}
	if m.Input.Password == "" {
		return commandValidationError("password", "password is required")
	}
	return nil
}

type UpdateUserMessage struct {
	UserID string
	Input  core.UpdateUserInput
}

func (UpdateUserMessage) Type() string { return TypeUpdateUser }

func (m UpdateUserMessage) Validate() error {
	if strings.TrimSpace(m.UserID) == "" {
		return commandValidationError("user_id", "user id is required")
	}
	return nil
}

type BlockUserMessage struct {
	UserID string
	Active bool
}

func (BlockUserMessage) Type() string { return TypeBlockUser }

func (m BlockUserMessage) Validate() error {
	if strings.TrimSpace(m.UserID) == "" {
		return commandValidationError("user_id", "user id is required")
	}
	return nil
}

type DeleteUserMessage struct {
	UserID string
}

func (DeleteUserMessage) Type() string { return TypeDeleteUser }

func (m DeleteUserMessage) Validate() error {
	if strings.TrimSpace(m.UserID) == "" {
		return commandValidationError("user_id", "user id is required")
	}
	return nil
}

type CreateNoteMessage struct {
	OwnerID string
	Input   core.CreateNoteInput
}

func (CreateNoteMessage) Type() string { return TypeCreateNote }

func (m CreateNoteMessage) Validate() error {
	if strings.TrimSpace(m.OwnerID) == "" {
		return commandValidationError("owner_id", "owner id is required")
	}
	if strings.TrimSpace(m.Input.Title) == "" {
		return commandValidationError("title", "title is required")
	}
	return nil
}

type UpdateNoteMessage struct {
	NoteID string
	Input  core.UpdateNoteInput
}

func (UpdateNoteMessage) Type() string { return TypeUpdateNote }

func (m UpdateNoteMessage) Validate() error {
	if strings.TrimSpace(m.NoteID) == "" {
		return commandValidationError("note_id", "note id is required")
	}
	return nil
}

type DeleteNoteMessage struct {
	NoteID string
}

func (DeleteNoteMessage) Type() string { return TypeDeleteNote }

func (m DeleteNoteMessage) Validate() error {
	if strings.TrimSpace(m.NoteID) == "" {
		return commandValidationError("note_id", "note id is required")
	}
	return nil
}
