package mappers

import (
	"github.com/loopdesk/loopdesk/internal/domain/user"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type userMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &userMapperImpl{}
}

func (m *userMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID(),
		SID:            u.SID(),
		OrganizationID: u.OrganizationID(),
		Name:           u.Name(),
		Email:          u.Email(),
		Role:           string(u.Role()),
		CreatedAt:      u.CreatedAt().UnixMilli(),
		UpdatedAt:      u.UpdatedAt().UnixMilli(),
	}
}

func (m *userMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.SID,
		model.OrganizationID,
		model.Name,
		model.Email,
		user.Role(model.Role),
		milliToTime(model.CreatedAt),
		milliToTime(model.UpdatedAt),
	)
}
