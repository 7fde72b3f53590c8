package mappers

import (
	"github.com/loopdesk/loopdesk/internal/domain/chat"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
)

type ChatMapper interface {
	ConversationToModel(c *chat.Conversation) *models.ConversationModel
	ConversationToDomain(model *models.ConversationModel) (*chat.Conversation, error)
	MessageToModel(m *chat.Message) *models.MessageModel
	MessageToDomain(model *models.MessageModel) (*chat.Message, error)
}

type chatMapperImpl struct{}

func NewChatMapper() ChatMapper {
	return &chatMapperImpl{}
}

func (cm *chatMapperImpl) ConversationToModel(c *chat.Conversation) *models.ConversationModel {
	return &models.ConversationModel{
		ID:             c.ID(),
		SID:            c.SID(),
		OrganizationID: c.OrganizationID(),
		SessionID:      c.SessionID(),
		RemoteUserID:   c.RemoteUserID(),
		RemoteUserName: c.RemoteUserName(),
		Status:         string(c.Status()),
		CreatedAt:      c.CreatedAt().UnixMilli(),
		UpdatedAt:      c.UpdatedAt().UnixMilli(),
	}
}

func (cm *chatMapperImpl) ConversationToDomain(model *models.ConversationModel) (*chat.Conversation, error) {
	return chat.ReconstructConversation(
		model.ID,
		model.SID,
		model.OrganizationID,
		model.SessionID,
		model.RemoteUserID,
		model.RemoteUserName,
		chat.ConversationStatus(model.Status),
		milliToTime(model.CreatedAt),
		milliToTime(model.UpdatedAt),
	)
}

func (cm *chatMapperImpl) MessageToModel(m *chat.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:             m.ID(),
		SID:            m.SID(),
		ConversationID: m.ConversationID(),
		SenderName:     m.SenderName(),
		Content:        m.Content(),
		Direction:      string(m.Direction()),
		CreatedAt:      m.CreatedAt().UnixMilli(),
	}
}

func (cm *chatMapperImpl) MessageToDomain(model *models.MessageModel) (*chat.Message, error) {
	return chat.ReconstructMessage(
		model.ID,
		model.SID,
		model.ConversationID,
		model.SenderName,
		model.Content,
		chat.MessageDirection(model.Direction),
		milliToTime(model.CreatedAt),
	)
}
