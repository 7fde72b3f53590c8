package task

import "context"

type Repository interface {
	Save(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id uint) (*Task, error)
	FindBySID(ctx context.Context, sid string) (*Task, error)
	// FindByCRMTicketSID returns the task back-referencing the given CRM
	// ticket, used to keep the one-task-per-ticket link best effort.
	FindByCRMTicketSID(ctx context.Context, ticketSID string) (*Task, error)
}

type CommentRepository interface {
	Save(ctx context.Context, c *Comment) error
	ListByTask(ctx context.Context, taskID uint) ([]*Comment, error)
}

type ActivityRepository interface {
	Save(ctx context.Context, a *Activity) error
	ListByTask(ctx context.Context, taskID uint) ([]*Activity, error)
}
