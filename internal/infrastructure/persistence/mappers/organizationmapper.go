package mappers

import (
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
)

// OrganizationMapper handles the conversion between Organization domain
// entities and persistence models.
type OrganizationMapper interface {
	ToModel(o *organization.Organization) *models.OrganizationModel
	ToDomain(model *models.OrganizationModel) (*organization.Organization, error)
}

type organizationMapperImpl struct{}

func NewOrganizationMapper() OrganizationMapper {
	return &organizationMapperImpl{}
}

func (m *organizationMapperImpl) ToModel(o *organization.Organization) *models.OrganizationModel {
	return &models.OrganizationModel{
		ID:        o.ID(),
		SID:       o.SID(),
		Name:      o.Name(),
		CreatedAt: o.CreatedAt().UnixMilli(),
		UpdatedAt: o.UpdatedAt().UnixMilli(),
	}
}

func (m *organizationMapperImpl) ToDomain(model *models.OrganizationModel) (*organization.Organization, error) {
	return organization.ReconstructOrganization(
		model.ID,
		model.SID,
		model.Name,
		milliToTime(model.CreatedAt),
		milliToTime(model.UpdatedAt),
	)
}
