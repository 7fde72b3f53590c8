package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/crmsync/dto"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// CommentAddedUseCase mirrors a Dev-side task comment onto the local ticket.
// The content is prefixed to disclose its cross-system origin. There is no
// deduplication key, so a replayed delivery creates a second comment.
type CommentAddedUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	orgRepo     organization.Repository
	notifier    common.Notifier
	logger      logger.Interface
}

func NewCommentAddedUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	orgRepo organization.Repository,
	notifier common.Notifier,
	log logger.Interface,
) *CommentAddedUseCase {
	return &CommentAddedUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		orgRepo:     orgRepo,
		notifier:    notifier,
		logger:      log,
	}
}

func (uc *CommentAddedUseCase) Execute(ctx context.Context, request dto.CommentAddedRequest) (*dto.CommentAddedResponse, error) {
	if request.TicketID == "" {
		return nil, apperrors.NewValidationError("ticketId is required")
	}
	if request.Comment.Content == "" {
		return nil, apperrors.NewValidationError("comment.content is required")
	}
	if request.Comment.AuthorName == "" {
		return nil, apperrors.NewValidationError("comment.authorName is required")
	}

	t, err := uc.ticketRepo.FindBySID(ctx, request.TicketID)
	if err != nil {
		return nil, err
	}

	authorID := mirrorAuthor(ctx, uc.userRepo, t, uc.logger)
	content := fmt.Sprintf("[Dev - %s]: %s", request.Comment.AuthorName, request.Comment.Content)

	comment, err := ticket.NewComment(t.ID(), authorID, content, true)
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
		"ticketSid":  t.SID(),
		"commentSid": comment.SID(),
	}
	notifyUser(ctx, uc.notifier, uc.userRepo, org, notifyTargetID(t),
		notification.TypeCommentMirrored,
		"New comment from development",
		request.Comment.Content,
		data,
		uc.logger,
	)
	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeTicketUpdated, data)

	uc.logger.Infow("dev comment mirrored onto ticket",
		"ticket_sid", t.SID(),
		"comment_sid", comment.SID(),
		"attributed", authorID != nil,
	)

	return &dto.CommentAddedResponse{
		Success:   true,
		CommentID: comment.SID(),
	}, nil
}
