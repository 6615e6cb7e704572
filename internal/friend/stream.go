package friend

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"linkup/internal/common"
	"linkup/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Mobile clients connect from app webviews; origin is not meaningful here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler upgrades to a websocket and pushes a fresh projection
// snapshot on connect and after every relationship change. Snapshots fully
// replace each other; the client never patches.
type StreamHandler struct {
	watcher    *Watcher
	projection *ProjectionBuilder
}

func NewStreamHandler(watcher *Watcher, projection *ProjectionBuilder) *StreamHandler {
	return &StreamHandler{watcher: watcher, projection: projection}
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.CallerID(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := h.watcher.Subscribe(userID)
	defer h.watcher.Unsubscribe(sub)

	// Drain the client's read side so close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.pushSnapshot(conn, userID, r); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case _, ok := <-sub.C:
			if !ok {
				return
			}
			if err := h.pushSnapshot(conn, userID, r); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandler) pushSnapshot(conn *websocket.Conn, userID string, r *http.Request) error {
	projection, err := h.projection.Build(r.Context(), userID)
	if err != nil {
		logger.Warn("projection build failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(projection)
}
