package mappers

import (
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
)

type TaskMapper interface {
	ToModel(t *task.Task) *models.TaskModel
	ToDomain(model *models.TaskModel) (*task.Task, error)
	CommentToModel(c *task.Comment) *models.TaskCommentModel
	CommentToDomain(model *models.TaskCommentModel) (*task.Comment, error)
	ActivityToModel(a *task.Activity) *models.TaskActivityModel
	ActivityToDomain(model *models.TaskActivityModel) (*task.Activity, error)
}

type taskMapperImpl struct{}

func NewTaskMapper() TaskMapper {
	return &taskMapperImpl{}
}

func (m *taskMapperImpl) ToModel(t *task.Task) *models.TaskModel {
	return &models.TaskModel{
		ID:             t.ID(),
		SID:            t.SID(),
		OrganizationID: t.OrganizationID(),
		Title:          t.Title(),
		Description:    t.Description(),
		Status:         t.Status().String(),
		CreatorID:      t.CreatorID(),
		AssigneeID:     t.AssigneeID(),
		CRMTicketSID:   t.CRMTicketSID(),
		CompletedAt:    timePtrToMilliPtr(t.CompletedAt()),
		CreatedAt:      t.CreatedAt().UnixMilli(),
		UpdatedAt:      t.UpdatedAt().UnixMilli(),
	}
}

func (m *taskMapperImpl) ToDomain(model *models.TaskModel) (*task.Task, error) {
	return task.ReconstructTask(
		model.ID,
		model.SID,
		model.OrganizationID,
		model.Title,
		model.Description,
		task.Status(model.Status),
		model.CreatorID,
		model.AssigneeID,
		model.CRMTicketSID,
		milliPtrToTimePtr(model.CompletedAt),
		milliToTime(model.CreatedAt),
		milliToTime(model.UpdatedAt),
	)
}

func (m *taskMapperImpl) CommentToModel(c *task.Comment) *models.TaskCommentModel {
	return &models.TaskCommentModel{
		ID:        c.ID(),
		SID:       c.SID(),
		TaskID:    c.TaskID(),
		AuthorID:  c.AuthorID(),
		Content:   c.Content(),
		FromPeer:  c.FromPeer(),
		CreatedAt: c.CreatedAt().UnixMilli(),
		UpdatedAt: c.UpdatedAt().UnixMilli(),
	}
}

func (m *taskMapperImpl) CommentToDomain(model *models.TaskCommentModel) (*task.Comment, error) {
	return task.ReconstructComment(
		model.ID,
		model.SID,
		model.TaskID,
		model.AuthorID,
		model.Content,
		model.FromPeer,
		milliToTime(model.CreatedAt),
		milliToTime(model.UpdatedAt),
	)
}

func (m *taskMapperImpl) ActivityToModel(a *task.Activity) *models.TaskActivityModel {
	return &models.TaskActivityModel{
		ID:        a.ID(),
		TaskID:    a.TaskID(),
		Kind:      string(a.Kind()),
		Message:   a.Message(),
		CreatedAt: a.CreatedAt().UnixMilli(),
	}
}

func (m *taskMapperImpl) ActivityToDomain(model *models.TaskActivityModel) (*task.Activity, error) {
	return task.ReconstructActivity(
		model.ID,
		model.TaskID,
		task.ActivityKind(model.Kind),
		model.Message,
		milliToTime(model.CreatedAt),
	)
}
