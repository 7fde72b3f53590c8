package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/mappers"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	"github.com/loopdesk/loopdesk/internal/shared/db"
)

// TaskActivityRepositoryImpl is append-only; activity rows are never updated
// or deleted.
type TaskActivityRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TaskMapper
}

func NewTaskActivityRepository(gormDB *gorm.DB) task.ActivityRepository {
	return &TaskActivityRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewTaskMapper(),
	}
}

func (r *TaskActivityRepositoryImpl) Save(ctx context.Context, a *task.Activity) error {
	model := r.mapper.ActivityToModel(a)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create task activity: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set task activity ID: %w", err)
	}

	return nil
}

func (r *TaskActivityRepositoryImpl) ListByTask(ctx context.Context, taskID uint) ([]*task.Activity, error) {
	var modelList []*models.TaskActivityModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list task activities: %w", err)
	}

	activities := make([]*task.Activity, 0, len(modelList))
	for _, model := range modelList {
		activity, err := r.mapper.ActivityToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map task activity: %w", err)
		}
		activities = append(activities, activity)
	}

	return activities, nil
}
