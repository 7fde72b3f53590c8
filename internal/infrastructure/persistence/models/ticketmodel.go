package models

type TicketModel struct {
	ID             uint    `gorm:"primaryKey"`
	SID            string  `gorm:"column:sid;uniqueIndex;size:50;not null"`
	OrganizationID uint    `gorm:"not null;index"`
	Title          string  `gorm:"size:200;not null"`
	Description    string  `gorm:"type:text"`
	Status         string  `gorm:"size:20;not null;index"`
	CreatorID      uint    `gorm:"not null;index"`
	AssigneeID     *uint   `gorm:"index"`
	LinkedTaskSID  *string `gorm:"column:linked_task_sid;size:50;index"`
	ResolvedAt     *int64
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type TicketCommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	SID       string `gorm:"column:sid;uniqueIndex;size:50;not null"`
	TicketID  uint   `gorm:"not null;index"`
	AuthorID  *uint  `gorm:"index"`
	Content   string `gorm:"type:text;not null"`
	FromPeer  bool   `gorm:"not null;default:false"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (TicketCommentModel) TableName() string {
	return "ticket_comments"
}

type TicketAttachmentModel struct {
	ID         uint   `gorm:"primaryKey"`
	SID        string `gorm:"column:sid;uniqueIndex;size:50;not null"`
	TicketID   uint   `gorm:"not null;index"`
	UploaderID *uint  `gorm:"index"`
	Name       string `gorm:"size:255;not null"`
	URL        string `gorm:"size:1024;not null"`
	MimeType   string `gorm:"size:100"`
	Size       int64  `gorm:"not null;default:0"`
	FromPeer   bool   `gorm:"not null;default:false"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null"`
}

func (TicketAttachmentModel) TableName() string {
	return "ticket_attachments"
}
