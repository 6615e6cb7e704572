package friend

import (
	"context"
	"strings"
	"unicode/utf8"

	"linkup/internal/dbmysql"
)

// searchFloor is the minimum prefix length findUsersByUsername accepts. It
// caps read volume on the directory, it is not an access control.
const searchFloor = 3

// Directory is the identity-directory contract the state machine consumes.
// internal/user's repository satisfies it.
type Directory interface {
	ByID(ctx context.Context, userID string) (*dbmysql.User, error)
	ByUsername(ctx context.Context, username string) (*dbmysql.User, error)
	SearchByUsernamePrefix(ctx context.Context, prefix, excludeUserID string, limit int) ([]*dbmysql.User, error)
}

// Notifier receives fire-and-forget transition notices. Declines emit
// nothing; that asymmetry is deliberate.
type Notifier interface {
	FriendRequestSent(ctx context.Context, fromUserID, fromUsername, toUserID string)
	FriendRequestAccepted(ctx context.Context, fromUserID, fromUsername, toUserID string)
}

// PublicUser is the projection of a directory record that search exposes.
// Never includes relationship status or credentials.
type PublicUser struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`
}

type FriendService interface {
	SendRequest(ctx context.Context, requesterID, targetUsername string) error
	AcceptRequest(ctx context.Context, accepterID, requesterID string) error
	DeclineRequest(ctx context.Context, declinerID, requesterID string) error
	RemoveFriend(ctx context.Context, removerID, friendID string) error
	FindUsersByUsername(ctx context.Context, callerID, prefix string) ([]*PublicUser, error)
}

type friendService struct {
	edges     EdgeRepository
	directory Directory
	notifier  Notifier
	watcher   *Watcher
}

func NewFriendService(edges EdgeRepository, directory Directory, notifier Notifier, watcher *Watcher) FriendService {
	return &friendService{
		edges:     edges,
		directory: directory,
		notifier:  notifier,
		watcher:   watcher,
	}
}

// SendRequest creates the mirrored pending pair between the requester and the
// user owning targetUsername.
func (s *friendService) SendRequest(ctx context.Context, requesterID, targetUsername string) error {
	if requesterID == "" {
		return ErrUnauthenticated
	}

	target, err := s.directory.ByUsername(ctx, strings.ToLower(strings.TrimSpace(targetUsername)))
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if target.UserID == requesterID {
		return ErrSelfRequest
	}

	// One lookup covers every duplicate case: complementarity means the
	// requester's own collection always holds a row if any relationship
	// exists in either direction.
	existing, err := s.edges.EdgeBetween(ctx, requesterID, target.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		switch existing.Status {
		case dbmysql.EdgeStatusAccepted:
			return ErrAlreadyFriends
		case dbmysql.EdgeStatusPendingSent:
			return ErrRequestAlreadySent
		default:
			return ErrRequestAlreadyReceived
		}
	}

	if err := s.edges.CreatePair(ctx, requesterID, target.UserID); err != nil {
		return err
	}

	if requester, lerr := s.directory.ByID(ctx, requesterID); lerr == nil && requester != nil {
		s.notifier.FriendRequestSent(ctx, requesterID, requester.Username, target.UserID)
	}
	s.publish(requesterID, target.UserID)
	return nil
}

// AcceptRequest transitions a pending pair to accepted. Accepting an
// already-accepted pair fails with ErrInvalidStatus rather than silently
// succeeding.
func (s *friendService) AcceptRequest(ctx context.Context, accepterID, requesterID string) error {
	if accepterID == "" {
		return ErrUnauthenticated
	}

	edge, err := s.edges.EdgeBetween(ctx, accepterID, requesterID)
	if err != nil {
		return err
	}
	if edge == nil {
		return ErrRequestNotFound
	}
	if edge.Status != dbmysql.EdgeStatusPendingReceived {
		return ErrInvalidStatus
	}

	if err := s.edges.AcceptPair(ctx, accepterID, requesterID); err != nil {
		return err
	}

	if accepter, lerr := s.directory.ByID(ctx, accepterID); lerr == nil && accepter != nil {
		s.notifier.FriendRequestAccepted(ctx, accepterID, accepter.Username, requesterID)
	}
	s.publish(accepterID, requesterID)
	return nil
}

// DeclineRequest deletes the pair. Missing pair is success, and no
// notification goes out: declines are silent.
func (s *friendService) DeclineRequest(ctx context.Context, declinerID, requesterID string) error {
	if declinerID == "" {
		return ErrUnauthenticated
	}
	if err := s.edges.DeletePair(ctx, declinerID, requesterID); err != nil {
		return err
	}
	s.publish(declinerID, requesterID)
	return nil
}

// RemoveFriend ends an established friendship. Same deletion path as decline,
// valid for any current status.
func (s *friendService) RemoveFriend(ctx context.Context, removerID, friendID string) error {
	return s.DeclineRequest(ctx, removerID, friendID)
}

// FindUsersByUsername searches the directory by username prefix. Prefixes
// shorter than three runes return an empty result.
func (s *friendService) FindUsersByUsername(ctx context.Context, callerID, prefix string) ([]*PublicUser, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if utf8.RuneCountInString(prefix) < searchFloor {
		return []*PublicUser{}, nil
	}

	users, err := s.directory.SearchByUsernamePrefix(ctx, prefix, callerID, 50)
	if err != nil {
		return nil, err
	}

	results := make([]*PublicUser, 0, len(users))
	for _, u := range users {
		results = append(results, &PublicUser{
			UserID:         u.UserID,
			Username:       u.Username,
			DisplayName:    u.DisplayName,
			Bio:            u.Bio,
			ProfilePicture: u.ProfilePicture,
		})
	}
	return results, nil
}

func (s *friendService) publish(userA, userB string) {
	if s.watcher == nil {
		return
	}
	s.watcher.Publish(userA)
	s.watcher.Publish(userB)
}
