package guard

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-guard/command"
	"github.com/goliatone/go-guard/core"
)

// Commands groups the mutation handlers for hosts that dispatch through a
// command bus instead of calling the services directly.
type Commands struct {
	RegisterUser *command.RegisterUserCommand
	UpdateUser   *command.UpdateUserCommand
	BlockUser    *command.BlockUserCommand
	DeleteUser   *command.DeleteUserCommand
	CreateNote   *command.CreateNoteCommand
	UpdateNote   *command.UpdateNoteCommand
	DeleteNote   *command.DeleteNoteCommand
}

func NewCommands(userService command.UserMutatingService, noteService command.NoteMutatingService) Commands {
	return Commands{
		RegisterUser: command.NewRegisterUserCommand(userService),
		UpdateUser:   command.NewUpdateUserCommand(userService),
		BlockUser:    command.NewBlockUserCommand(userService),
		DeleteUser:   command.NewDeleteUserCommand(userService),
		CreateNote:   command.NewCreateNoteCommand(noteService),
		UpdateNote:   command.NewUpdateNoteCommand(noteService),
		DeleteNote:   command.NewDeleteNoteCommand(noteService),
	}
}

func guardConfigError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.GuardErrorInternal)
}
