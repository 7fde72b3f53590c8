package models

type ConversationModel struct {
	ID             uint   `gorm:"primaryKey"`
	SID            string `gorm:"column:sid;uniqueIndex;size:50;not null"`
	OrganizationID uint   `gorm:"not null;index"`
	SessionID      string `gorm:"uniqueIndex;size:64;not null"`
	RemoteUserID   string `gorm:"size:100;not null"`
	RemoteUserName string `gorm:"size:200"`
	Status         string `gorm:"size:20;not null;index"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ConversationModel) TableName() string {
	return "conversations"
}

type MessageModel struct {
	ID             uint   `gorm:"primaryKey"`
	SID            string `gorm:"column:sid;uniqueIndex;size:50;not null"`
	ConversationID uint   `gorm:"not null;index"`
	SenderName     string `gorm:"size:200"`
	Content        string `gorm:"type:text;not null"`
	Direction      string `gorm:"size:10;not null"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (MessageModel) TableName() string {
	return "messages"
}
