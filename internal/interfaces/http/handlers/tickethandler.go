package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loopdesk/loopdesk/internal/application/ticket/dto"
	"github.com/loopdesk/loopdesk/internal/application/ticket/usecases"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	"github.com/loopdesk/loopdesk/internal/interfaces/http/middleware"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
	"github.com/loopdesk/loopdesk/internal/shared/utils"
)

// TicketHandler exposes the agent-facing ticket mutations. Everything here
// runs with OriginUser: these are the writes that may fan out to the Dev
// platform, as opposed to the webhook surface which never re-dispatches.
type TicketHandler struct {
	sendToDev    *usecases.SendTicketToDevUseCase
	changeStatus *usecases.ChangeTicketStatusUseCase
	addComment   *usecases.AddTicketCommentUseCase
	userRepo     user.Repository
	logger       logger.Interface
}

func NewTicketHandler(
	sendToDev *usecases.SendTicketToDevUseCase,
	changeStatus *usecases.ChangeTicketStatusUseCase,
	addComment *usecases.AddTicketCommentUseCase,
	userRepo user.Repository,
	log logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		sendToDev:    sendToDev,
		changeStatus: changeStatus,
		addComment:   addComment,
		userRepo:     userRepo,
		logger:       log,
	}
}

// SendToDev handles POST /tickets/:id/send-to-dev
func (h *TicketHandler) SendToDev(c *gin.Context) {
	ticketSID := c.Param("id")

	if err := h.sendToDev.Execute(c.Request.Context(), ticketSID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket sent to development", nil)
}

// ChangeStatus handles PUT /tickets/:id/status
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	ticketSID := c.Param("id")

	var req dto.ChangeTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change ticket status", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.changeStatus.Execute(c.Request.Context(), ticketSID, req, sync.OriginUser)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// AddComment handles POST /tickets/:id/comments
func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketSID := c.Param("id")

	var req dto.AddTicketCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add ticket comment", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	userSID := c.GetString(middleware.ContextKeyUserSID)
	if userSID == "" {
		utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("user not authenticated"))
		return
	}
	author, err := h.userRepo.FindBySID(c.Request.Context(), userSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.addComment.Execute(c.Request.Context(), ticketSID, author.ID(), req, sync.OriginUser)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, resp, "Comment added")
}
