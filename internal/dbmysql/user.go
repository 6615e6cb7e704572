package dbmysql

import (
	"time"
)

type User struct {
	UserID         string    `gorm:"primaryKey;column:user_id;size:36" json:"user_id"`
	Username       string    `gorm:"column:username;uniqueIndex;size:50;not null" json:"username"`
	DisplayName    string    `gorm:"column:display_name;size:100" json:"display_name"`
	Bio            string    `gorm:"column:bio;type:text" json:"bio"`
	ProfilePicture string    `gorm:"column:profile_picture;size:512" json:"profile_picture"`
	PasswordHash   string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
