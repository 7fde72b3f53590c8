package mappers

import (
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket-side domain entities
// and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	CommentToModel(c *ticket.Comment) *models.TicketCommentModel
	CommentToDomain(model *models.TicketCommentModel) (*ticket.Comment, error)
	AttachmentToModel(a *ticket.Attachment) *models.TicketAttachmentModel
	AttachmentToDomain(model *models.TicketAttachmentModel) (*ticket.Attachment, error)
}

type ticketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &ticketMapperImpl{}
}

func (m *ticketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:             t.ID(),
		SID:            t.SID(),
		OrganizationID: t.OrganizationID(),
		Title:          t.Title(),
		Description:    t.Description(),
		Status:         t.Status().String(),
		CreatorID:      t.CreatorID(),
		AssigneeID:     t.AssigneeID(),
		LinkedTaskSID:  t.LinkedTaskSID(),
		ResolvedAt:     timePtrToMilliPtr(t.ResolvedAt()),
		CreatedAt:      t.CreatedAt().UnixMilli(),
		UpdatedAt:      t.UpdatedAt().UnixMilli(),
	}
}

func (m *ticketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	return ticket.ReconstructTicket(
		model.ID,
		model.SID,
		model.OrganizationID,
		model.Title,
		model.Description,
		ticket.Status(model.Status),
		model.CreatorID,
		model.AssigneeID,
		model.LinkedTaskSID,
		milliPtrToTimePtr(model.ResolvedAt),
		milliToTime(model.CreatedAt),
		milliToTime(model.UpdatedAt),
	)
}

func (m *ticketMapperImpl) CommentToModel(c *ticket.Comment) *models.TicketCommentModel {
	return &models.TicketCommentModel{
		ID:        c.ID(),
		SID:       c.SID(),
		TicketID:  c.TicketID(),
		AuthorID:  c.AuthorID(),
		Content:   c.Content(),
		FromPeer:  c.FromPeer(),
		CreatedAt: c.CreatedAt().UnixMilli(),
		UpdatedAt: c.UpdatedAt().UnixMilli(),
	}
}

func (m *ticketMapperImpl) CommentToDomain(model *models.TicketCommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.SID,
		model.TicketID,
		model.AuthorID,
		model.Content,
		model.FromPeer,
		milliToTime(model.CreatedAt),
		milliToTime(model.UpdatedAt),
	)
}

func (m *ticketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.TicketAttachmentModel {
	return &models.TicketAttachmentModel{
		ID:         a.ID(),
		SID:        a.SID(),
		TicketID:   a.TicketID(),
		UploaderID: a.UploaderID(),
		Name:       a.Name(),
		URL:        a.URL(),
		MimeType:   a.MimeType(),
		Size:       a.Size(),
		FromPeer:   a.FromPeer(),
		CreatedAt:  a.CreatedAt().UnixMilli(),
	}
}

func (m *ticketMapperImpl) AttachmentToDomain(model *models.TicketAttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.SID,
		model.TicketID,
		model.UploaderID,
		model.Name,
		model.URL,
		model.MimeType,
		model.Size,
		model.FromPeer,
		milliToTime(model.CreatedAt),
	)
}
