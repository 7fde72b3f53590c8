package ticket

import "context"

type Repository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	FindByID(ctx context.Context, id uint) (*Ticket, error)
	FindBySID(ctx context.Context, sid string) (*Ticket, error)
}

type CommentRepository interface {
	Save(ctx context.Context, c *Comment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
}

type AttachmentRepository interface {
	Save(ctx context.Context, a *Attachment) error
	ListByTicket(ctx context.Context, ticketID uint) ([]*Attachment, error)
}
