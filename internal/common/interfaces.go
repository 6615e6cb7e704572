package common

import (
	"context"
)

type Observer interface {
	Update(event NotificationEvent) error
	Name() string
}

type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	Notify(event NotificationEvent)
	NotifyAsync(event NotificationEvent)
}

// NotificationStore persists the per-user notifications feed.
type NotificationStore interface {
	Insert(ctx context.Context, record *NotificationRecord) error
	ByUserID(ctx context.Context, userID string, limit, offset int) ([]*NotificationRecord, error)
	MarkAsRead(ctx context.Context, id, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}
