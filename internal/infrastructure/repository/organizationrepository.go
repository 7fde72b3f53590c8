package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/mappers"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	"github.com/loopdesk/loopdesk/internal/shared/db"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
)

type OrganizationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OrganizationMapper
}

func NewOrganizationRepository(gormDB *gorm.DB) organization.Repository {
	return &OrganizationRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewOrganizationMapper(),
	}
}

func (r *OrganizationRepositoryImpl) Save(ctx context.Context, org *organization.Organization) error {
	model := r.mapper.ToModel(org)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	if err := org.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set organization ID: %w", err)
	}

	return nil
}

func (r *OrganizationRepositoryImpl) FindByID(ctx context.Context, id uint) (*organization.Organization, error) {
	var model models.OrganizationModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("organization not found")
		}
		return nil, fmt.Errorf("failed to find organization by ID: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *OrganizationRepositoryImpl) FindBySID(ctx context.Context, sid string) (*organization.Organization, error) {
	var model models.OrganizationModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("organization not found")
		}
		return nil, fmt.Errorf("failed to find organization by SID: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *OrganizationRepositoryImpl) FindOldest(ctx context.Context) (*organization.Organization, error) {
	var model models.OrganizationModel

	if err := db.GetTxFromContext(ctx, r.db).Order("created_at ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("no organizations exist")
		}
		return nil, fmt.Errorf("failed to find oldest organization: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
