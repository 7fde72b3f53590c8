package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/ticket/dto"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// AddTicketCommentUseCase writes a local comment and, for user-originated
// writes on a linked ticket, mirrors it to the Dev platform.
type AddTicketCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	dispatcher  common.Dispatcher
	logger      logger.Interface
}

func NewAddTicketCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	dispatcher common.Dispatcher,
	log logger.Interface,
) *AddTicketCommentUseCase {
	return &AddTicketCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		dispatcher:  dispatcher,
		logger:      log,
	}
}

func (uc *AddTicketCommentUseCase) Execute(ctx context.Context, ticketSID string, authorID uint, request dto.AddTicketCommentRequest, origin sync.Origin) (*dto.CommentResponse, error) {
	if request.Content == "" {
		return nil, apperrors.NewValidationError("content is required")
	}

	t, err := uc.ticketRepo.FindBySID(ctx, ticketSID)
	if err != nil {
		return nil, err
	}

	author, err := uc.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment, err := ticket.NewComment(t.ID(), &authorID, request.Content, false)
	if err != nil {
		return nil, err
	}
	if err := uc.commentRepo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	if origin.ShouldDispatch() && t.LinkedTaskSID() != nil {
		uc.dispatcher.Dispatch(sync.EventTicketCommentAdded, map[string]interface{}{
			"ticketId": t.SID(),
			"comment": map[string]interface{}{
				"content":    request.Content,
				"authorName": author.Name(),
			},
		})
	}

	uc.logger.Infow("ticket comment added",
		"ticket_sid", t.SID(),
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
