package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loopdesk/loopdesk/internal/application/task/dto"
	"github.com/loopdesk/loopdesk/internal/application/task/usecases"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	"github.com/loopdesk/loopdesk/internal/interfaces/http/middleware"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
	"github.com/loopdesk/loopdesk/internal/shared/utils"
)

// TaskHandler exposes the developer-facing task mutations, all OriginUser.
type TaskHandler struct {
	complete     *usecases.CompleteTaskUseCase
	changeStatus *usecases.ChangeTaskStatusUseCase
	addComment   *usecases.AddTaskCommentUseCase
	userRepo     user.Repository
	logger       logger.Interface
}

func NewTaskHandler(
	complete *usecases.CompleteTaskUseCase,
	changeStatus *usecases.ChangeTaskStatusUseCase,
	addComment *usecases.AddTaskCommentUseCase,
	userRepo user.Repository,
	log logger.Interface,
) *TaskHandler {
	return &TaskHandler{
		complete:     complete,
		changeStatus: changeStatus,
		addComment:   addComment,
		userRepo:     userRepo,
		logger:       log,
	}
}

func (h *TaskHandler) currentUser(c *gin.Context) (*user.User, error) {
	userSID := c.GetString(middleware.ContextKeyUserSID)
	if userSID == "" {
		return nil, apperrors.NewUnauthorizedError("user not authenticated")
	}
	return h.userRepo.FindBySID(c.Request.Context(), userSID)
}

// Complete handles POST /tasks/:id/complete
func (h *TaskHandler) Complete(c *gin.Context) {
	taskSID := c.Param("id")

	u, err := h.currentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.complete.Execute(c.Request.Context(), taskSID, u.ID(), sync.OriginUser)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Task completed", resp)
}

// ChangeStatus handles PUT /tasks/:id/status
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	taskSID := c.Param("id")

	var req dto.ChangeTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change task status", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.changeStatus.Execute(c.Request.Context(), taskSID, req, sync.OriginUser)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// AddComment handles POST /tasks/:id/comments
func (h *TaskHandler) AddComment(c *gin.Context) {
	taskSID := c.Param("id")

	var req dto.AddTaskCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add task comment", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.currentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp, err := h.addComment.Execute(c.Request.Context(), taskSID, u.ID(), req, sync.OriginUser)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, resp, "Comment added")
}
