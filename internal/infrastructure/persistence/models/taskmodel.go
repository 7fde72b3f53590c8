package models

type TaskModel struct {
	ID             uint    `gorm:"primaryKey"`
	SID            string  `gorm:"column:sid;uniqueIndex;size:50;not null"`
	OrganizationID uint    `gorm:"not null;index"`
	Title          string  `gorm:"size:200;not null"`
	Description    string  `gorm:"type:text"`
	Status         string  `gorm:"size:20;not null;index"`
	CreatorID      uint    `gorm:"not null;index"`
	AssigneeID     *uint   `gorm:"index"`
	CRMTicketSID   *string `gorm:"column:crm_ticket_sid;size:50;index"`
	CompletedAt    *int64
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

type TaskCommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	SID       string `gorm:"column:sid;uniqueIndex;size:50;not null"`
	TaskID    uint   `gorm:"not null;index"`
	AuthorID  *uint  `gorm:"index"`
	Content   string `gorm:"type:text;not null"`
	FromPeer  bool   `gorm:"not null;default:false"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (TaskCommentModel) TableName() string {
	return "task_comments"
}

type TaskActivityModel struct {
	ID        uint   `gorm:"primaryKey"`
	TaskID    uint   `gorm:"not null;index"`
	Kind      string `gorm:"size:50;not null"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (TaskActivityModel) TableName() string {
	return "task_activities"
}
