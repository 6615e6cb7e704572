package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linkup/internal/common"
	"linkup/internal/dbmysql"
	"linkup/internal/logger"
)

// PresenceStore is the slice of the presence layer the identity service needs.
type PresenceStore interface {
	MarkOnline(ctx context.Context, userID string) error
	MarkOffline(ctx context.Context, userID string) error
}

type UserService interface {
	Register(ctx context.Context, username, displayName, password string) (*dbmysql.User, string, error)
	Login(ctx context.Context, username, password string) (*dbmysql.User, string, error)
	Logout(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*dbmysql.User, error)
	UpdateProfile(ctx context.Context, userID, displayName, bio, profilePicture string) error
}

type userService struct {
	userRepo UserRepository
	presence PresenceStore
}

func NewUserService(userRepo UserRepository, presence PresenceStore) UserService {
	return &userService{userRepo: userRepo, presence: presence}
}

func (s *userService) Register(ctx context.Context, username, displayName, password string) (*dbmysql.User, string, error) {
	// Usernames are stored lowercase and never change after signup.
	username = strings.ToLower(strings.TrimSpace(username))

	if err := common.ValidateUsername(username); err != nil {
		return nil, "", err
	}
	if err := common.ValidateDisplayName(displayName); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", errors.New("username already exists")
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	if displayName == "" {
		displayName = username
	}

	user := &dbmysql.User{
		UserID:       uuid.NewString(),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hashed,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := common.GenerateToken(user.UserID, user.Username)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*dbmysql.User, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, "", errors.New("username and password required")
	}

	user, err := s.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", errors.New("invalid username or password")
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", errors.New("invalid username or password")
	}

	token, err := common.GenerateToken(user.UserID, user.Username)
	if err != nil {
		return nil, "", err
	}

	// Presence is best effort; a redis hiccup must not block the login.
	if err := s.presence.MarkOnline(ctx, user.UserID); err != nil {
		logger.Warn("failed to mark user online", zap.String("user_id", user.UserID), zap.Error(err))
	}

	return user, token, nil
}

func (s *userService) Logout(ctx context.Context, userID string) error {
	return s.presence.MarkOffline(ctx, userID)
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dbmysql.User, error) {
	user, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID, displayName, bio, profilePicture string) error {
	user, err := s.userRepo.ByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	if displayName != "" {
		if err := common.ValidateDisplayName(displayName); err != nil {
			return err
		}
		user.DisplayName = displayName
	}
	if bio != "" {
		user.Bio = bio
	}
	if profilePicture != "" {
		user.ProfilePicture = profilePicture
	}

	return s.userRepo.UpdateUser(ctx, user)
}
