package common

import (
	"time"
)

type NotificationType string

const (
	FriendRequestType  NotificationType = "friend_request"
	FriendAcceptedType NotificationType = "friend_accepted"
	SystemType         NotificationType = "system"
)

// NotificationEvent is what the state machine emits; observers decide how to
// persist or surface it.
type NotificationEvent struct {
	Type         NotificationType
	UserID       string // recipient
	FromUserID   string
	FromUserName string
	Header       string
	Content      string
	CreatedAt    time.Time
}

// NotificationRecord is the stored feed entry.
type NotificationRecord struct {
	ID           string     `bson:"_id" json:"id"`
	UserID       string     `bson:"user_id" json:"user_id"`
	Type         string     `bson:"type" json:"type"`
	FromUserID   string     `bson:"from_user_id" json:"from_user_id"`
	FromUserName string     `bson:"from_user_name" json:"from_user_name"`
	Header       string     `bson:"header" json:"header"`
	Content      string     `bson:"content" json:"content"`
	Read         bool       `bson:"read" json:"read"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	ReadAt       *time.Time `bson:"read_at,omitempty" json:"read_at,omitempty"`
}
