package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/infrastructure/pubsub"
	"github.com/loopdesk/loopdesk/internal/interfaces/http/middleware"
	"github.com/loopdesk/loopdesk/internal/shared/goroutine"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
	"github.com/loopdesk/loopdesk/internal/shared/utils"
)

const (
	rtWriteWait  = 10 * time.Second
	rtPongWait   = 60 * time.Second
	rtPingPeriod = 30 * time.Second

	// Slow consumers are disconnected rather than buffered without bound.
	rtSendBuffer = 64
)

var rtUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Should be configured in production
	},
}

// RealtimeHandler bridges a browser websocket to the Redis-backed realtime
// bus. Each connection subscribes to its own user channel and its
// organization's channel; delivery is at-most-once and missed events are
// recovered through the notification list, not replayed here.
type RealtimeHandler struct {
	subscriber pubsub.RealtimeSubscriber
	logger     logger.Interface
}

func NewRealtimeHandler(subscriber pubsub.RealtimeSubscriber, log logger.Interface) *RealtimeHandler {
	return &RealtimeHandler{
		subscriber: subscriber,
		logger:     log,
	}
}

// Connect handles GET /ws/realtime
func (h *RealtimeHandler) Connect(c *gin.Context) {
	userSID := c.GetString(middleware.ContextKeyUserSID)
	orgSID := c.GetString(middleware.ContextKeyOrgSID)
	if userSID == "" || orgSID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	conn, err := rtUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorw("failed to upgrade to websocket",
			"error", err,
			"user_sid", userSID,
			"ip", c.ClientIP(),
		)
		return
	}

	h.logger.Infow("realtime websocket connected",
		"user_sid", userSID,
		"org_sid", orgSID,
		"ip", c.ClientIP(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	send := make(chan []byte, rtSendBuffer)

	channels := []string{sync.UserChannel(userSID), sync.OrgChannel(orgSID)}
	goroutine.SafeGo(h.logger, "realtime-subscribe", func() {
		err := h.subscriber.Subscribe(ctx, channels, func(channel string, event pubsub.Event) {
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Warnw("failed to marshal realtime event for websocket",
					"event", event.Name,
					"error", err,
				)
				return
			}
			select {
			case send <- payload:
			default:
				h.logger.Warnw("realtime send buffer full, dropping event",
					"user_sid", userSID,
					"event", event.Name,
				)
			}
		})
		if err != nil && ctx.Err() == nil {
			h.logger.Warnw("realtime subscription ended",
				"user_sid", userSID,
				"error", err,
			)
		}
	})

	goroutine.SafeGo(h.logger, "realtime-write-pump", func() {
		h.writePump(userSID, conn, send)
	})

	h.readPump(userSID, conn)
	cancel()
}

// readPump drains the client side. Browsers only send pongs and the
// occasional close frame; anything else is ignored.
func (h *RealtimeHandler) readPump(userSID string, conn *websocket.Conn) {
	defer conn.Close()

	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(rtPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(rtPongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warnw("realtime websocket read error",
					"error", err,
					"user_sid", userSID,
				)
			}
			return
		}
	}
}

func (h *RealtimeHandler) writePump(userSID string, conn *websocket.Conn, send chan []byte) {
	ticker := time.NewTicker(rtPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(rtWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Warnw("failed to write to realtime websocket",
					"error", err,
					"user_sid", userSID,
				)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(rtWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
