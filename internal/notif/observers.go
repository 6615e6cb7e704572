package notif

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linkup/internal/common"
	"linkup/internal/logger"
)

// FeedObserver appends each event to the recipient's stored feed.
type FeedObserver struct {
	store common.NotificationStore
}

func NewFeedObserver(store common.NotificationStore) *FeedObserver {
	return &FeedObserver{store: store}
}

func (o *FeedObserver) Name() string { return "feed" }

func (o *FeedObserver) Update(event common.NotificationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return o.store.Insert(ctx, &common.NotificationRecord{
		ID:           uuid.NewString(),
		UserID:       event.UserID,
		Type:         string(event.Type),
		FromUserID:   event.FromUserID,
		FromUserName: event.FromUserName,
		Header:       event.Header,
		Content:      event.Content,
		Read:         false,
		CreatedAt:    createdAt,
	})
}

// LogObserver mirrors every event into the structured log.
type LogObserver struct{}

func NewLogObserver() *LogObserver { return &LogObserver{} }

func (o *LogObserver) Name() string { return "log" }

func (o *LogObserver) Update(event common.NotificationEvent) error {
	logger.Info("notification emitted",
		zap.String("type", string(event.Type)),
		zap.String("user_id", event.UserID),
		zap.String("from_user_id", event.FromUserID))
	return nil
}
