package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/task/dto"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// AddTaskCommentUseCase writes a local task comment and, for user-originated
// writes on a ticket-linked task, mirrors it to the CRM.
type AddTaskCommentUseCase struct {
	taskRepo    task.Repository
	commentRepo task.CommentRepository
	userRepo    user.Repository
	dispatcher  common.Dispatcher
	logger      logger.Interface
}

func NewAddTaskCommentUseCase(
	taskRepo task.Repository,
	commentRepo task.CommentRepository,
	userRepo user.Repository,
	dispatcher common.Dispatcher,
	log logger.Interface,
) *AddTaskCommentUseCase {
	return &AddTaskCommentUseCase{
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
		logger:      log,
	}
}

func (uc *AddTaskCommentUseCase) Execute(ctx context.Context, taskSID string, authorID uint, request dto.AddTaskCommentRequest, origin sync.Origin) (*dto.CommentResponse, error) {
	if request.Content == "" {
		return nil, apperrors.NewValidationError("content is required")
	}

	t, err := uc.taskRepo.FindBySID(ctx, taskSID)
	if err != nil {
		return nil, err
	}

	author, err := uc.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment, err := task.NewComment(t.ID(), &authorID, request.Content, false)
	if err != nil {
		return nil, err
	}
	if err := uc.commentRepo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	if origin.ShouldDispatch() && t.CRMTicketSID() != nil {
		uc.dispatcher.Dispatch(sync.EventCommentAdded, map[string]interface{}{
			"ticketId": *t.CRMTicketSID(),
			"comment": map[string]interface{}{
				"content":    request.Content,
				"authorName": author.Name(),
			},
		})
	}

	uc.logger.Infow("task comment added",
		"task_sid", t.SID(),
		"comment_sid", comment.SID(),
		"origin", origin,
	)

	return &dto.CommentResponse{
		ID:        comment.SID(),
		Content:   comment.Content(),
		FromPeer:  comment.FromPeer(),
		CreatedAt: comment.CreatedAt(),
	}, nil
}
