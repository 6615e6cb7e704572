package friend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherDeliversToSubscribers(t *testing.T) {
	w := NewWatcher()

	sub := w.Subscribe("u1")
	other := w.Subscribe("u2")
	defer w.Unsubscribe(other)

	w.Publish("u1")

	select {
	case <-sub.C:
	case <-time.After(time.Second):
		t.Fatal("expected a signal for u1")
	}

	select {
	case <-other.C:
		t.Fatal("u2 must not receive u1 signals")
	default:
	}

	w.Unsubscribe(sub)
}

func TestWatcherUnsubscribeClosesChannel(t *testing.T) {
	w := NewWatcher()

	sub := w.Subscribe("u1")
	w.Unsubscribe(sub)

	_, ok := <-sub.C
	require.False(t, ok, "channel must be closed after unsubscribe")
	require.Equal(t, 0, w.SubscriberCount("u1"))

	// Double unsubscribe is harmless.
	w.Unsubscribe(sub)

	// Publishing to a user with no subscribers is a no-op.
	w.Publish("u1")
}

func TestWatcherCoalescesWhenBufferFull(t *testing.T) {
	w := NewWatcher()
	sub := w.Subscribe("u1")
	defer w.Unsubscribe(sub)

	// Far more publishes than buffer slots; none may block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			w.Publish("u1")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestWatcherMultipleSubscribersSameUser(t *testing.T) {
	w := NewWatcher()

	a := w.Subscribe("u1")
	b := w.Subscribe("u1")
	require.Equal(t, 2, w.SubscriberCount("u1"))

	w.Publish("u1")

	for _, sub := range []*Subscription{a, b} {
		select {
		case <-sub.C:
		case <-time.After(time.Second):
			t.Fatal("every subscriber of a user receives the signal")
		}
	}

	w.Unsubscribe(a)
	w.Unsubscribe(b)
	require.Equal(t, 0, w.SubscriberCount("u1"))
}
