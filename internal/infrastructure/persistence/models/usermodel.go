package models

type UserModel struct {
	ID             uint   `gorm:"primaryKey"`
	SID            string `gorm:"column:sid;uniqueIndex;size:50;not null"`
	OrganizationID uint   `gorm:"not null;index"`
	Name           string `gorm:"size:200;not null"`
	Email          string `gorm:"uniqueIndex;size:255;not null"`
	Role           string `gorm:"size:20;not null;index"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}
