package friend

import (
	"errors"
)

// Error kinds surfaced by the relationship state machine. Handlers map these
// to HTTP statuses; anything else is a store failure and bubbles up wrapped.
var (
	ErrUnauthenticated        = errors.New("caller is not authenticated")
	ErrUserNotFound           = errors.New("user not found")
	ErrSelfRequest            = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends         = errors.New("already friends")
	ErrRequestAlreadySent     = errors.New("friend request already sent")
	ErrRequestAlreadyReceived = errors.New("this user already sent you a friend request")
	ErrRequestNotFound        = errors.New("friend request not found")
	ErrInvalidStatus          = errors.New("relationship is not in the expected state")
)
