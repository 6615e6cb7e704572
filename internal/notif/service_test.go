package notif

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"linkup/internal/common"
	"linkup/internal/config"
)

type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Insert(ctx context.Context, record *common.NotificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockNotificationStore) ByUserID(ctx context.Context, userID string, limit, offset int) ([]*common.NotificationRecord, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*common.NotificationRecord), args.Error(1)
}

func (m *MockNotificationStore) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationStore) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// recordingObserver collects every event it receives, optionally failing.
type recordingObserver struct {
	name   string
	fail   bool
	mu     sync.Mutex
	events []common.NotificationEvent
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) Update(event common.NotificationEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail {
		return errors.New("observer failure")
	}
	o.events = append(o.events, event)
	return nil
}

func (o *recordingObserver) received() []common.NotificationEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]common.NotificationEvent, len(o.events))
	copy(out, o.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestManagerFansOutToAllObservers(t *testing.T) {
	manager := NewManager(2, 16)
	defer manager.Shutdown()

	first := &recordingObserver{name: "first"}
	second := &recordingObserver{name: "second"}
	manager.Subscribe(first)
	manager.Subscribe(second)

	manager.Notify(common.NotificationEvent{
		Type:   common.FriendRequestType,
		UserID: "u1",
	})

	require.Len(t, first.received(), 1)
	require.Len(t, second.received(), 1)
	require.Equal(t, common.FriendRequestType, first.received()[0].Type)
}

func TestManagerObserverFailureDoesNotStopOthers(t *testing.T) {
	manager := NewManager(1, 16)
	defer manager.Shutdown()

	broken := &recordingObserver{name: "broken", fail: true}
	healthy := &recordingObserver{name: "healthy"}
	manager.Subscribe(broken)
	manager.Subscribe(healthy)

	manager.Notify(common.NotificationEvent{Type: common.SystemType, UserID: "u1"})

	require.Len(t, healthy.received(), 1)
}

func TestManagerUnsubscribeStopsDelivery(t *testing.T) {
	manager := NewManager(1, 16)
	defer manager.Shutdown()

	observer := &recordingObserver{name: "feed"}
	manager.Subscribe(observer)
	manager.Unsubscribe(observer)

	manager.Notify(common.NotificationEvent{Type: common.SystemType, UserID: "u1"})

	require.Empty(t, observer.received())
}

func TestManagerNotifyAsyncDelivers(t *testing.T) {
	manager := NewManager(2, 16)
	defer manager.Shutdown()

	observer := &recordingObserver{name: "feed"}
	manager.Subscribe(observer)

	for i := 0; i < 5; i++ {
		manager.NotifyAsync(common.NotificationEvent{Type: common.FriendRequestType, UserID: "u1"})
	}

	waitFor(t, func() bool { return len(observer.received()) == 5 })
}

func TestFeedObserverPersistsEvent(t *testing.T) {
	store := new(MockNotificationStore)
	store.On("Insert", mock.Anything, mock.MatchedBy(func(r *common.NotificationRecord) bool {
		return r.ID != "" &&
			r.UserID == "u2" &&
			r.Type == string(common.FriendRequestType) &&
			r.FromUserID == "u1" &&
			!r.Read &&
			!r.CreatedAt.IsZero()
	})).Return(nil)

	observer := NewFeedObserver(store)
	err := observer.Update(common.NotificationEvent{
		Type:         common.FriendRequestType,
		UserID:       "u2",
		FromUserID:   "u1",
		FromUserName: "alice",
		Header:       "New Friend Request",
		Content:      "alice sent you a friend request",
	})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestServiceEmitsFriendRequest(t *testing.T) {
	store := new(MockNotificationStore)
	var mu sync.Mutex
	var inserted []*common.NotificationRecord
	store.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		mu.Lock()
		inserted = append(inserted, args.Get(1).(*common.NotificationRecord))
		mu.Unlock()
	}).Return(nil)

	cfg := &config.Config{Notification: config.NotificationConfig{Workers: 2, ChannelBufferSize: 16}}
	svc := NewService(cfg, store)
	defer svc.Shutdown()

	svc.FriendRequestSent(context.Background(), "u1", "alice", "u2")

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(inserted) == 1
	})

	mu.Lock()
	record := inserted[0]
	mu.Unlock()
	require.Equal(t, "u2", record.UserID)
	require.Equal(t, string(common.FriendRequestType), record.Type)
	require.Contains(t, record.Content, "alice")
}

func TestServiceEmitsFriendAccepted(t *testing.T) {
	store := new(MockNotificationStore)
	var mu sync.Mutex
	var inserted []*common.NotificationRecord
	store.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		mu.Lock()
		inserted = append(inserted, args.Get(1).(*common.NotificationRecord))
		mu.Unlock()
	}).Return(nil)

	cfg := &config.Config{Notification: config.NotificationConfig{Workers: 1, ChannelBufferSize: 16}}
	svc := NewService(cfg, store)
	defer svc.Shutdown()

	svc.FriendRequestAccepted(context.Background(), "u2", "bob", "u1")

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(inserted) == 1
	})

	mu.Lock()
	record := inserted[0]
	mu.Unlock()
	require.Equal(t, "u1", record.UserID)
	require.Equal(t, string(common.FriendAcceptedType), record.Type)
}

func TestServiceReadsFeed(t *testing.T) {
	store := new(MockNotificationStore)
	records := []*common.NotificationRecord{
		{ID: "n1", UserID: "u1", Type: string(common.FriendRequestType)},
	}
	store.On("ByUserID", mock.Anything, "u1", 50, 0).Return(records, nil)
	store.On("UnreadCount", mock.Anything, "u1").Return(int64(1), nil)
	store.On("MarkAsRead", mock.Anything, "n1", "u1").Return(nil)

	cfg := &config.Config{Notification: config.NotificationConfig{Workers: 1, ChannelBufferSize: 16}}
	svc := NewService(cfg, store)
	defer svc.Shutdown()

	got, err := svc.UserNotifications(context.Background(), "u1", 50, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)

	count, err := svc.UnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	require.NoError(t, svc.MarkAsRead(context.Background(), "n1", "u1"))
	store.AssertExpectations(t)
}
