package notif

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"linkup/internal/common"
	"linkup/internal/logger"
)

// Manager fans notification events out to registered observers through a
// worker pool. Emission is fire-and-forget relative to the state machine: a
// full channel drops the event rather than blocking a mutation.
type Manager struct {
	observers    map[string]common.Observer
	eventChannel chan common.NotificationEvent
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

func NewManager(workers, bufferSize int) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		observers:    make(map[string]common.Observer),
		eventChannel: make(chan common.NotificationEvent, bufferSize),
		ctx:          ctx,
		cancel:       cancel,
	}

	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go m.processEvents()
	}

	return m
}

func (m *Manager) Subscribe(observer common.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers[observer.Name()] = observer
	logger.Info("observer subscribed", zap.String("observer", observer.Name()))
}

func (m *Manager) Unsubscribe(observer common.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.observers, observer.Name())
	logger.Info("observer unsubscribed", zap.String("observer", observer.Name()))
}

// Notify delivers synchronously to every observer. Observer failures are
// logged, never propagated.
func (m *Manager) Notify(event common.NotificationEvent) {
	m.mu.RLock()
	observers := make([]common.Observer, 0, len(m.observers))
	for _, obs := range m.observers {
		observers = append(observers, obs)
	}
	m.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			logger.Error("observer update failed",
				zap.String("observer", observer.Name()),
				zap.String("type", string(event.Type)),
				zap.Error(err))
		}
	}
}

func (m *Manager) NotifyAsync(event common.NotificationEvent) {
	select {
	case m.eventChannel <- event:
	case <-m.ctx.Done():
	default:
		logger.Warn("notification channel full, dropping event",
			zap.String("type", string(event.Type)),
			zap.String("user_id", event.UserID))
	}
}

func (m *Manager) processEvents() {
	defer m.wg.Done()

	for {
		select {
		case event := <-m.eventChannel:
			m.Notify(event)
		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Manager) Shutdown() {
	m.cancel()
	m.wg.Wait()
	logger.Info("notification manager shutdown complete")
}
