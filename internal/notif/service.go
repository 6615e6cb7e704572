package notif

import (
	"context"
	"fmt"
	"time"

	"linkup/internal/common"
	"linkup/internal/config"
)

// Service is the notification emitter consumed by the relationship state
// machine, plus the read side of the stored feed.
type Service struct {
	manager *Manager
	store   common.NotificationStore
}

func NewService(cfg *config.Config, store common.NotificationStore) *Service {
	manager := NewManager(cfg.Notification.Workers, cfg.Notification.ChannelBufferSize)
	manager.Subscribe(NewFeedObserver(store))
	manager.Subscribe(NewLogObserver())

	return &Service{
		manager: manager,
		store:   store,
	}
}

// FriendRequestSent queues a friend-request notification for the target.
// Fire-and-forget: the state machine never waits on delivery.
func (s *Service) FriendRequestSent(ctx context.Context, fromUserID, fromUsername, toUserID string) {
	s.manager.NotifyAsync(common.NotificationEvent{
		Type:         common.FriendRequestType,
		UserID:       toUserID,
		FromUserID:   fromUserID,
		FromUserName: fromUsername,
		Header:       "New Friend Request",
		Content:      fmt.Sprintf("%s sent you a friend request", fromUsername),
		CreatedAt:    time.Now(),
	})
}

// FriendRequestAccepted queues an acceptance notification for the original
// requester. Declines deliberately have no counterpart here.
func (s *Service) FriendRequestAccepted(ctx context.Context, fromUserID, fromUsername, toUserID string) {
	s.manager.NotifyAsync(common.NotificationEvent{
		Type:         common.FriendAcceptedType,
		UserID:       toUserID,
		FromUserID:   fromUserID,
		FromUserName: fromUsername,
		Header:       "Friend Request Accepted",
		Content:      fmt.Sprintf("%s accepted your friend request", fromUsername),
		CreatedAt:    time.Now(),
	})
}

func (s *Service) UserNotifications(ctx context.Context, userID string, limit, offset int) ([]*common.NotificationRecord, error) {
	records, err := s.store.ByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return records, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	return s.store.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.store.UnreadCount(ctx, userID)
}

func (s *Service) Shutdown() {
	s.manager.Shutdown()
}
