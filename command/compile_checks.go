package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[RegisterUserMessage] = (*RegisterUserCommand)(nil)
	_ gocmd.Commander[UpdateUserMessage]   = (*UpdateUserCommand)(nil)
	_ gocmd.Commander[BlockUserMessage]    = (*BlockUserCommand)(nil)
	_ gocmd.Commander[DeleteUserMessage]   = (*DeleteUserCommand)(nil)
	_ gocmd.Commander[CreateNoteMessage]   = (*CreateNoteCommand)(nil)
	_ gocmd.Commander[UpdateNoteMessage]   = (*UpdateNoteCommand)(nil)
	_ gocmd.Commander[DeleteNoteMessage]   = (*DeleteNoteCommand)(nil)
)
