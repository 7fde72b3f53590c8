package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
)

type NotificationMapper interface {
	ToModel(n *notification.Notification) (*models.NotificationModel, error)
	ToDomain(model *models.NotificationModel) (*notification.Notification, error)
}

type notificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &notificationMapperImpl{}
}

func (m *notificationMapperImpl) ToModel(n *notification.Notification) (*models.NotificationModel, error) {
	var dataJSON datatypes.JSON
	if n.Data() != nil {
		raw, err := json.Marshal(n.Data())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notification data: %w", err)
		}
		dataJSON = datatypes.JSON(raw)
	}

	return &models.NotificationModel{
		ID:             n.ID(),
		SID:            n.SID(),
		UserID:         n.UserID(),
		OrganizationID: n.OrganizationID(),
		Type:           string(n.NotifType()),
		Title:          n.Title(),
		Body:           n.Body(),
		Data:           dataJSON,
		Read:           n.Read(),
		CreatedAt:      n.CreatedAt().UnixMilli(),
		UpdatedAt:      n.UpdatedAt().UnixMilli(),
	}, nil
}

func (m *notificationMapperImpl) ToDomain(model *models.NotificationModel) (*notification.Notification, error) {
	var data map[string]interface{}
	if len(model.Data) > 0 {
		if err := json.Unmarshal(model.Data, &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
		}
	}

	return notification.ReconstructNotification(
		model.ID,
		model.SID,
		model.UserID,
		model.OrganizationID,
		notification.Type(model.Type),
		model.Title,
		model.Body,
		data,
		model.Read,
		milliToTime(model.CreatedAt),
		milliToTime(model.UpdatedAt),
	)
}
