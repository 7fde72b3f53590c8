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

type TaskCommentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TaskMapper
}

func NewTaskCommentRepository(gormDB *gorm.DB) task.CommentRepository {
	return &TaskCommentRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewTaskMapper(),
	}
}

func (r *TaskCommentRepositoryImpl) Save(ctx context.Context, c *task.Comment) error {
	model := r.mapper.CommentToModel(c)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create task comment: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set task comment ID: %w", err)
	}

	return nil
}

func (r *TaskCommentRepositoryImpl) ListByTask(ctx context.Context, taskID uint) ([]*task.Comment, error) {
	var modelList []*models.TaskCommentModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list task comments: %w", err)
	}

	comments := make([]*task.Comment, 0, len(modelList))
	for _, model := range modelList {
		comment, err := r.mapper.CommentToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map task comment: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, nil
}
