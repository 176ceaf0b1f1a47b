package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-guard/core"
)

type UserMutatingService interface {
	Register(ctx context.Context, in core.CreateUserInput) (core.User, string, error)
	Update(ctx context.Context, id string, in core.UpdateUserInput) (core.User, error)
	Block(ctx context.Context, id string, active bool) (core.User, error)
	Delete(ctx context.Context, id string) error
}

type NoteMutatingService interface {
	Create(ctx context.Context, ownerID string, in core.CreateNoteInput) (core.Note, error)
	Update(ctx context.Context, id string, in core.UpdateNoteInput) (core.Note, error)
	Delete(ctx context.Context, id string) error
}

// Registration is the composite outcome of a register command.
type Registration struct {
	User  core.User
	Token string
}

type RegisterUserCommand struct {
	service UserMutatingService
}

func NewRegisterUserCommand(service UserMutatingService) *RegisterUserCommand {
	return &RegisterUserCommand{service: service}
}

func (c *RegisterUserCommand) Execute(ctx context.Context, msg RegisterUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: user service is required")
	}
	user, token, err := c.service.Register(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, Registration{User: user, Token: token})
	return nil
}

type UpdateUserCommand struct {
	service UserMutatingService
}

func NewUpdateUserCommand(service UserMutatingService) *UpdateUserCommand {
	return &UpdateUserCommand{service: service}
}

func (c *UpdateUserCommand) Execute(ctx context.Context, msg UpdateUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: user service is required")
	}
	user, err := c.service.Update(ctx, msg.UserID, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, user)
	return nil
}

type BlockUserCommand struct {
	service UserMutatingService
}

func NewBlockUserCommand(service UserMutatingService) *BlockUserCommand {
	return &BlockUserCommand{service: service}
}

func (c *BlockUserCommand) Execute(ctx context.Context, msg BlockUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: user service is required")
	}
	user, err := c.service.Block(ctx, msg.UserID, msg.Active)
	if err != nil {
		return err
	}
	storeResult(ctx, user)
	return nil
}

type DeleteUserCommand struct {
	service UserMutatingService
}

func NewDeleteUserCommand(service UserMutatingService) *DeleteUserCommand {
	return &DeleteUserCommand{service: service}
}

func (c *DeleteUserCommand) Execute(ctx context.Context, msg DeleteUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: user service is required")
	}
	return c.service.Delete(ctx, msg.UserID)
}

type CreateNoteCommand struct {
	service NoteMutatingService
}

func NewCreateNoteCommand(service NoteMutatingService) *CreateNoteCommand {
	return &CreateNoteCommand{service: service}
}

func (c *CreateNoteCommand) Execute(ctx context.Context, msg CreateNoteMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: note service is required")
	}
	note, err := c.service.Create(ctx, msg.OwnerID, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, note)
	return nil
}

type UpdateNoteCommand struct {
	service NoteMutatingService
}

func NewUpdateNoteCommand(service NoteMutatingService) *UpdateNoteCommand {
	return &UpdateNoteCommand{service: service}
}

func (c *UpdateNoteCommand) Execute(ctx context.Context, msg UpdateNoteMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: note service is required")
	}
	note, err := c.service.Update(ctx, msg.NoteID, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, note)
	return nil
}

type DeleteNoteCommand struct {
	service NoteMutatingService
}

func NewDeleteNoteCommand(service NoteMutatingService) *DeleteNoteCommand {
	return &DeleteNoteCommand{service: service}
}

func (c *DeleteNoteCommand) Execute(ctx context.Context, msg DeleteNoteMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: note service is required")
	}
	return c.service.Delete(ctx, msg.NoteID)
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
