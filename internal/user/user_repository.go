package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"linkup/internal/dbmysql"
)

// highSentinel bounds the username prefix range query; no stored username
// sorts above prefix + this rune.
const highSentinel = "\uf8ff"

type UserRepository interface {
	CreateUser(ctx context.Context, user *dbmysql.User) error
	UpdateUser(ctx context.Context, user *dbmysql.User) error
	ByID(ctx context.Context, userID string) (*dbmysql.User, error)
	ByUsername(ctx context.Context, username string) (*dbmysql.User, error)
	SearchByUsernamePrefix(ctx context.Context, prefix, excludeUserID string, limit int) ([]*dbmysql.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) UpdateUser(ctx context.Context, user *dbmysql.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// ByID returns nil with no error when the user does not exist; the directory
// contract is "record or none".
func (r *userRepository) ByID(ctx context.Context, userID string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByUsername(ctx context.Context, username string) (*dbmysql.User, error) {
	var user dbmysql.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchByUsernamePrefix runs a lexicographic range scan over usernames,
// excluding the caller from the results.
func (r *userRepository) SearchByUsernamePrefix(ctx context.Context, prefix, excludeUserID string, limit int) ([]*dbmysql.User, error) {
	var users []*dbmysql.User
	query := r.db.WithContext(ctx).
		Where("username >= ? AND username < ?", prefix, prefix+highSentinel).
		Where("user_id <> ?", excludeUserID).
		Order("username ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&users).Error
	return users, err
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}
