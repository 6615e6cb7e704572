package friend

import (
	"sync"

	"go.uber.org/zap"

	"linkup/internal/logger"
)

// Subscription delivers a signal on C whenever the subscribed user's
// relationship set changes. Consumers rebuild the projection on each signal;
// the channel carries no payload so a slow consumer only coalesces refreshes.
type Subscription struct {
	UserID string
	C      chan struct{}
}

// Watcher fans relationship-change signals out to live subscribers. It is the
// in-process replacement for the document store's snapshot listeners.
type Watcher struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewWatcher() *Watcher {
	return &Watcher{subs: make(map[string]map[*Subscription]struct{})}
}

func (w *Watcher) Subscribe(userID string) *Subscription {
	sub := &Subscription{
		UserID: userID,
		C:      make(chan struct{}, 8),
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.subs[userID] == nil {
		w.subs[userID] = make(map[*Subscription]struct{})
	}
	w.subs[userID][sub] = struct{}{}
	return sub
}

func (w *Watcher) Unsubscribe(sub *Subscription) {
	w.mu.Lock()
	defer w.mu.Unlock()
	set, ok := w.subs[sub.UserID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(w.subs, sub.UserID)
	}
	close(sub.C)
}

// Publish signals every subscriber of userID. Non-blocking: a subscriber
// whose buffer is full already has a refresh pending.
func (w *Watcher) Publish(userID string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for sub := range w.subs[userID] {
		select {
		case sub.C <- struct{}{}:
		default:
			logger.Debug("watcher signal coalesced", zap.String("user_id", userID))
		}
	}
}

// SubscriberCount reports live subscriptions for a user; used by tests and
// the health endpoint.
func (w *Watcher) SubscriberCount(userID string) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subs[userID])
}
