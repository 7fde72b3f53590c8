// Package http assembles the gin engine for either deployment role. The CRM
// and Dev servers share the ambient middleware chain, the notification and
// realtime surfaces, and differ only in which webhook and domain routes are
// mounted.
package http

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/loopdesk/loopdesk/internal/infrastructure/config"
	"github.com/loopdesk/loopdesk/internal/interfaces/http/handlers"
	"github.com/loopdesk/loopdesk/internal/interfaces/http/middleware"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

type Router struct {
	engine *gin.Engine
	cfg    *config.Config
	auth   *middleware.AuthMiddleware
	logger logger.Interface
}

func NewRouter(cfg *config.Config, auth *middleware.AuthMiddleware, log logger.Interface) *Router {
	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.Logger(log),
		middleware.ErrorHandler(),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return &Router{
		engine: engine,
		cfg:    cfg,
		auth:   auth,
		logger: log,
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// MountShared wires the routes both roles expose: the durable notification
// feed and the realtime websocket.
func (r *Router) MountShared(notifications *handlers.NotificationHandler, realtime *handlers.RealtimeHandler) {
	r.engine.GET("/ws/realtime", r.auth.RequireAuth(), realtime.Connect)

	api := r.engine.Group("/api/v1", r.auth.RequireAuth())
	api.GET("/notifications", notifications.List)
	api.GET("/notifications/unread-count", notifications.UnreadCount)
	api.POST("/notifications/mark-all-read", notifications.MarkAllRead)
}

// MountCRMWebhooks exposes the endpoints the Dev platform's dispatcher calls.
func (r *Router) MountCRMWebhooks(h *handlers.CRMWebhookHandler) {
	group := r.engine.Group("/webhooks/peer", middleware.SyncKey(r.cfg.Sync.SyncKey, r.logger))
	group.POST("/ticket-received", h.TicketReceived)
	group.POST("/task-completed", h.TaskCompleted)
	group.POST("/task-status-changed", h.TaskStatusChanged)
	group.POST("/comment-added", h.CommentAdded)
	group.POST("/attachment-added", h.AttachmentAdded)
	group.POST("/chat-message", h.ChatMessage)
}

// MountDevWebhooks exposes the endpoints the CRM's dispatcher calls.
func (r *Router) MountDevWebhooks(h *handlers.DevWebhookHandler) {
	group := r.engine.Group("/webhooks/peer", middleware.SyncKey(r.cfg.Sync.SyncKey, r.logger))
	group.POST("/task-create", h.TaskCreate)
	group.POST("/ticket-comment-added", h.TicketCommentAdded)
	group.POST("/ticket-attachment-added", h.TicketAttachmentAdded)
	group.POST("/ticket-status-changed", h.TicketStatusChanged)
}

// MountTickets wires the agent-facing ticket mutations (CRM role).
func (r *Router) MountTickets(h *handlers.TicketHandler) {
	api := r.engine.Group("/api/v1", r.auth.RequireAuth())
	api.POST("/tickets/:id/send-to-dev", h.SendToDev)
	api.PUT("/tickets/:id/status", h.ChangeStatus)
	api.POST("/tickets/:id/comments", h.AddComment)
}

// MountTasks wires the developer-facing task mutations (Dev role).
func (r *Router) MountTasks(h *handlers.TaskHandler) {
	api := r.engine.Group("/api/v1", r.auth.RequireAuth())
	api.POST("/tasks/:id/complete", h.Complete)
	api.PUT("/tasks/:id/status", h.ChangeStatus)
	api.POST("/tasks/:id/comments", h.AddComment)
}
