package models

import "gorm.io/datatypes"

type NotificationModel struct {
	ID             uint           `gorm:"primaryKey"`
	SID            string         `gorm:"column:sid;uniqueIndex;size:50;not null"`
	UserID         uint           `gorm:"not null;index:idx_user_read"`
	OrganizationID uint           `gorm:"not null;index"`
	Type           string         `gorm:"size:50;not null"`
	Title          string         `gorm:"size:200;not null"`
	Body           string         `gorm:"type:text"`
	Data           datatypes.JSON `gorm:"type:json"`
	Read           bool           `gorm:"not null;default:false;index:idx_user_read"`
	CreatedAt      int64          `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt      int64          `gorm:"autoUpdateTime:milli;not null"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
