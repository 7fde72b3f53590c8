package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loopdesk/loopdesk/internal/application/crmsync/dto"
	"github.com/loopdesk/loopdesk/internal/application/crmsync/usecases"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// CRMWebhookHandler terminates the Dev platform's outbound events on the CRM
// side. Every endpoint sits behind the sync key middleware; handlers are
// synchronous and idempotency is the caller's problem.
type CRMWebhookHandler struct {
	ticketReceived    *usecases.TicketReceivedUseCase
	taskCompleted     *usecases.TaskCompletedUseCase
	taskStatusChanged *usecases.TaskStatusChangedUseCase
	commentAdded      *usecases.CommentAddedUseCase
	attachmentAdded   *usecases.AttachmentAddedUseCase
	chatMessage       *usecases.ChatMessageUseCase
	logger            logger.Interface
}

func NewCRMWebhookHandler(
	ticketReceived *usecases.TicketReceivedUseCase,
	taskCompleted *usecases.TaskCompletedUseCase,
	taskStatusChanged *usecases.TaskStatusChangedUseCase,
	commentAdded *usecases.CommentAddedUseCase,
	attachmentAdded *usecases.AttachmentAddedUseCase,
	chatMessage *usecases.ChatMessageUseCase,
	log logger.Interface,
) *CRMWebhookHandler {
	return &CRMWebhookHandler{
		ticketReceived:    ticketReceived,
		taskCompleted:     taskCompleted,
		taskStatusChanged: taskStatusChanged,
		commentAdded:      commentAdded,
		attachmentAdded:   attachmentAdded,
		chatMessage:       chatMessage,
		logger:            log,
	}
}

// TicketReceived handles POST /webhooks/peer/ticket-received
func (h *CRMWebhookHandler) TicketReceived(c *gin.Context) {
	var req dto.TicketReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid ticket-received payload", "error", err)
		webhookBindError(c, err)
		return
	}

	resp, err := h.ticketReceived.Execute(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TaskCompleted handles POST /webhooks/peer/task-completed
func (h *CRMWebhookHandler) TaskCompleted(c *gin.Context) {
	var req dto.TaskCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid task-completed payload", "error", err)
		webhookBindError(c, err)
		return
	}

	resp, err := h.taskCompleted.Execute(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TaskStatusChanged handles POST /webhooks/peer/task-status-changed
func (h *CRMWebhookHandler) TaskStatusChanged(c *gin.Context) {
	var req dto.TaskStatusChangedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid task-status-changed payload", "error", err)
		webhookBindError(c, err)
		return
	}

	resp, err := h.taskStatusChanged.Execute(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CommentAdded handles POST /webhooks/peer/comment-added
func (h *CRMWebhookHandler) CommentAdded(c *gin.Context) {
	var req dto.CommentAddedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid comment-added payload", "error", err)
		webhookBindError(c, err)
		return
	}

	resp, err := h.commentAdded.Execute(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AttachmentAdded handles POST /webhooks/peer/attachment-added
func (h *CRMWebhookHandler) AttachmentAdded(c *gin.Context) {
	var req dto.AttachmentAddedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid attachment-added payload", "error", err)
		webhookBindError(c, err)
		return
	}

	resp, err := h.attachmentAdded.Execute(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChatMessage handles POST /webhooks/peer/chat-message
func (h *CRMWebhookHandler) ChatMessage(c *gin.Context) {
	var req dto.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid chat-message payload", "error", err)
		webhookBindError(c, err)
		return
	}

	resp, err := h.chatMessage.Execute(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
