package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loopdesk/loopdesk/internal/application/devsync/dto"
	"github.com/loopdesk/loopdesk/internal/application/devsync/usecases"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// DevWebhookHandler terminates the CRM's outbound events on the Dev side.
type DevWebhookHandler struct {
	taskCreate            *usecases.TaskCreateUseCase
	ticketCommentAdded    *usecases.TicketCommentAddedUseCase
	ticketAttachmentAdded *usecases.TicketAttachmentAddedUseCase
	ticketStatusChanged   *usecases.TicketStatusChangedUseCase
	logger                logger.Interface
}

func NewDevWebhookHandler(
	taskCreate *usecases.TaskCreateUseCase,
	ticketCommentAdded *usecases.TicketCommentAddedUseCase,
	ticketAttachmentAdded *usecases.TicketAttachmentAddedUseCase,
	ticketStatusChanged *usecases.TicketStatusChangedUseCase,
	log logger.Interface,
) *DevWebhookHandler {
	return &DevWebhookHandler{
		taskCreate:            taskCreate,
		ticketCommentAdded:    ticketCommentAdded,
		ticketAttachmentAdded: ticketAttachmentAdded,
		ticketStatusChanged:   ticketStatusChanged,
		logger:                log,
	}
}

// TaskCreate handles POST /webhooks/peer/task-create
func (h *DevWebhookHandler) TaskCreate(c *gin.Context) {
	var req dto.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid task-create payload", "error", err)
		webhookBindError(c, err)
		return
	}

	resp, err := h.taskCreate.Execute(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TicketCommentAdded handles POST /webhooks/peer/ticket-comment-added
func (h *DevWebhookHandler) TicketCommentAdded(c *gin.Context) {
	var req dto.TicketCommentAddedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid ticket-comment-added payload", "error", err)
		webhookBindError(c, err)
		return
	}

	resp, err := h.ticketCommentAdded.Execute(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TicketAttachmentAdded handles POST /webhooks/peer/ticket-attachment-added
func (h *DevWebhookHandler) TicketAttachmentAdded(c *gin.Context) {
	var req dto.TicketAttachmentAddedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid ticket-attachment-added payload", "error", err)
		webhookBindError(c, err)
		return
	}

	resp, err := h.ticketAttachmentAdded.Execute(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TicketStatusChanged handles POST /webhooks/peer/ticket-status-changed
func (h *DevWebhookHandler) TicketStatusChanged(c *gin.Context) {
	var req dto.TicketStatusChangedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid ticket-status-changed payload", "error", err)
		webhookBindError(c, err)
		return
	}

	resp, err := h.ticketStatusChanged.Execute(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
