package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loopdesk/loopdesk/internal/application/notification/dto"
	"github.com/loopdesk/loopdesk/internal/application/notification/usecases"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	"github.com/loopdesk/loopdesk/internal/interfaces/http/middleware"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
	"github.com/loopdesk/loopdesk/internal/shared/utils"
)

type NotificationHandler struct {
	list        *usecases.ListNotificationsUseCase
	unreadCount *usecases.UnreadCountUseCase
	markAllRead *usecases.MarkAllReadUseCase
	userRepo    user.Repository
	logger      logger.Interface
}

func NewNotificationHandler(
	list *usecases.ListNotificationsUseCase,
	unreadCount *usecases.UnreadCountUseCase,
	markAllRead *usecases.MarkAllReadUseCase,
	userRepo user.Repository,
	log logger.Interface,
) *NotificationHandler {
	return &NotificationHandler{
		list:        list,
		unreadCount: unreadCount,
		markAllRead: markAllRead,
		userRepo:    userRepo,
		logger:      log,
	}
}

func (h *NotificationHandler) currentUser(c *gin.Context) (*user.User, error) {
	userSID := c.GetString(middleware.ContextKeyUserSID)
	if userSID == "" {
		return nil, apperrors.NewUnauthorizedError("user not authenticated")
	}
	return h.userRepo.FindBySID(c.Request.Context(), userSID)
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	u, err := h.currentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	items, total, err := h.list.Execute(c.Request.Context(), u.ID(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	utils.ListSuccessResponse(c, items, total, page, pageSize)
}

// UnreadCount handles GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	u, err := h.currentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	count, err := h.unreadCount.Execute(c.Request.Context(), u.ID())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", &dto.UnreadCountResponse{Count: count})
}

// MarkAllRead handles POST /notifications/mark-all-read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	u, err := h.currentUser(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.markAllRead.Execute(c.Request.Context(), u.ID()); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All notifications marked as read", nil)
}
