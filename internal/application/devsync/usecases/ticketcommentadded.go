package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/devsync/dto"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// TicketCommentAddedUseCase mirrors a CRM ticket comment onto the linked
// task. The task must already exist; there is no auto-create-on-comment.
type TicketCommentAddedUseCase struct {
	taskRepo    task.Repository
	commentRepo task.CommentRepository
	userRepo    user.Repository
	orgRepo     organization.Repository
	notifier    common.Notifier
	logger      logger.Interface
}

func NewTicketCommentAddedUseCase(
	taskRepo task.Repository,
	commentRepo task.CommentRepository,
	userRepo user.Repository,
	orgRepo organization.Repository,
	notifier common.Notifier,
	log logger.Interface,
) *TicketCommentAddedUseCase {
	return &TicketCommentAddedUseCase{
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		orgRepo:     orgRepo,
		notifier:    notifier,
		logger:      log,
	}
}

func (uc *TicketCommentAddedUseCase) Execute(ctx context.Context, request dto.TicketCommentAddedRequest) (*dto.TicketCommentAddedResponse, error) {
	if request.TicketID == "" {
		return nil, apperrors.NewValidationError("ticketId is required")
	}
	if request.Comment.Content == "" {
		return nil, apperrors.NewValidationError("comment.content is required")
	}
	if request.Comment.AuthorName == "" {
		return nil, apperrors.NewValidationError("comment.authorName is required")
	}

	t, err := uc.taskRepo.FindByCRMTicketSID(ctx, request.TicketID)
	if err != nil {
		return nil, err
	}

	authorID := mirrorAuthor(ctx, uc.userRepo, t, uc.logger)
	content := fmt.Sprintf("[CRM - %s]: %s", request.Comment.AuthorName, request.Comment.Content)

	comment, err := task.NewComment(t.ID(), authorID, content, true)
	if err != nil {
		return nil, err
	}
	if err := uc.commentRepo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save mirrored comment: %w", err)
	}

	org, err := uc.orgRepo.FindByID(ctx, t.OrganizationID())
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"taskSid":    t.SID(),
		"commentSid": comment.SID(),
	}
	target, err := uc.userRepo.FindByID(ctx, notifyTargetID(t))
	if err == nil {
		err = uc.notifier.Notify(ctx, common.NotifyCommand{
			UserID:  target.ID(),
			UserSID: target.SID(),
			OrgID:   org.ID(),
			OrgSID:  org.SID(),
			Type:    notification.TypeCommentMirrored,
			Title:   "New comment from CRM",
			Body:    request.Comment.Content,
			Data:    data,
		})
		if err != nil {
			uc.logger.Warnw("comment notification failed", "task_sid", t.SID(), "error", err)
		}
	}
	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeInboxUpdate, data)

	uc.logger.Infow("crm comment mirrored onto task",
		"task_sid", t.SID(),
		"comment_sid", comment.SID(),
		"attributed", authorID != nil,
	)

	return &dto.TicketCommentAddedResponse{
		Success:   true,
		CommentID: comment.SID(),
	}, nil
}
