package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/mappers"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	"github.com/loopdesk/loopdesk/internal/shared/db"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
)

type TaskRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TaskMapper
}

func NewTaskRepository(gormDB *gorm.DB) task.Repository {
	return &TaskRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewTaskMapper(),
	}
}

func (r *TaskRepositoryImpl) Save(ctx context.Context, t *task.Task) error {
	model := r.mapper.ToModel(t)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set task ID: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, t *task.Task) error {
	model := r.mapper.ToModel(t)

	result := db.GetTxFromContext(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("task not found")
	}

	return nil
}

func (r *TaskRepositoryImpl) FindByID(ctx context.Context, id uint) (*task.Task, error) {
	var model models.TaskModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("task not found")
		}
		return nil, fmt.Errorf("failed to find task by ID: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TaskRepositoryImpl) FindBySID(ctx context.Context, sid string) (*task.Task, error) {
	var model models.TaskModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("task not found")
		}
		return nil, fmt.Errorf("failed to find task by SID: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TaskRepositoryImpl) FindByCRMTicketSID(ctx context.Context, ticketSID string) (*task.Task, error) {
	var model models.TaskModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("crm_ticket_sid = ?", ticketSID).
		Order("id ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("task not found for ticket")
		}
		return nil, fmt.Errorf("failed to find task by ticket SID: %w", err)
	}

	return r.mapper.ToDomain(&model)
}
