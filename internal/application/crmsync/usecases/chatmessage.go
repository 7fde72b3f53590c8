package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/crmsync/dto"
	"github.com/loopdesk/loopdesk/internal/application/identity"
	"github.com/loopdesk/loopdesk/internal/domain/chat"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// ChatMessageUseCase relays a chat message from the peer platform into the
// local inbox. The tenant reference on chat events is the one place the
// resolution cascade is exercised in anger, so the conversation must land in
// whatever organization the cascade settles on.
type ChatMessageUseCase struct {
	resolver         *identity.OrganizationResolver
	conversationRepo chat.ConversationRepository
	messageRepo      chat.MessageRepository
	userRepo         user.Repository
	notifier         common.Notifier
	txManager        common.TxManager
	logger           logger.Interface
}

func NewChatMessageUseCase(
	resolver *identity.OrganizationResolver,
	conversationRepo chat.ConversationRepository,
	messageRepo chat.MessageRepository,
	userRepo user.Repository,
	notifier common.Notifier,
	txManager common.TxManager,
	log logger.Interface,
) *ChatMessageUseCase {
	return &ChatMessageUseCase{
		resolver:         resolver,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		txManager:        txManager,
		logger:           log,
	}
}

func (uc *ChatMessageUseCase) Execute(ctx context.Context, request dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	if request.UserID == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}
	if request.UserName == "" {
		return nil, apperrors.NewValidationError("userName is required")
	}
	if request.Content == "" {
		return nil, apperrors.NewValidationError("content is required")
	}
	if request.OrganizationID == "" {
		return nil, apperrors.NewValidationError("organizationId is required")
	}

	org, err := uc.resolver.Resolve(ctx, request.OrganizationID)
	if err != nil {
		return nil, err
	}

	var message *chat.Message
	var conversation *chat.Conversation

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sessionID := chat.SessionIDForRemoteUser(request.UserID)

		existing, err := uc.conversationRepo.FindBySessionID(txCtx, sessionID)
		switch {
		case err == nil:
			conversation = existing
			if conversation.IsClosed() {
				conversation.Reactivate()
				if err := uc.conversationRepo.Update(txCtx, conversation); err != nil {
					return fmt.Errorf("failed to reactivate conversation: %w", err)
				}
			}
		case apperrors.IsNotFoundError(err):
			conversation, err = chat.NewConversation(org.ID(), request.UserID, request.UserName)
			if err != nil {
				return err
			}
			if err := uc.conversationRepo.Save(txCtx, conversation); err != nil {
				return fmt.Errorf("failed to create conversation: %w", err)
			}
		default:
			return err
		}

		message, err = chat.NewMessage(conversation.ID(), request.UserName, request.Content, chat.DirectionInbound)
		if err != nil {
			return err
		}
		if err := uc.messageRepo.Save(txCtx, message); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"conversationSid": conversation.SID(),
		"messageSid":      message.SID(),
		"from":            request.UserName,
		"content":         request.Content,
	}

	// The inbox has no single owner; the admin gets the durable notification
	// when one exists, everyone connected gets the broadcast.
	if admin, adminErr := uc.userRepo.FindAdminByOrganization(ctx, org.ID()); adminErr == nil {
		err := uc.notifier.Notify(ctx, common.NotifyCommand{
			UserID:  admin.ID(),
			UserSID: admin.SID(),
			OrgID:   org.ID(),
			OrgSID:  org.SID(),
			Type:    notification.TypeNewMessage,
			Title:   fmt.Sprintf("New message from %s", request.UserName),
			Body:    request.Content,
			Data:    data,
		})
		if err != nil {
			uc.logger.Warnw("chat notification delivery failed",
				"org_sid", org.SID(),
				"error", err,
			)
		}
	}
	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeNewMessage, data)
	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeInboxUpdate, map[string]interface{}{
		"conversationSid": conversation.SID(),
	})

	uc.logger.Infow("chat message relayed",
		"conversation_sid", conversation.SID(),
		"org_sid", org.SID(),
	)

	return &dto.ChatMessageResponse{
		Success:   true,
		MessageID: message.SID(),
	}, nil
}
