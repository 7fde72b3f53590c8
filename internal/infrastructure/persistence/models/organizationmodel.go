package models

type OrganizationModel struct {
	ID        uint   `gorm:"primaryKey"`
	SID       string `gorm:"column:sid;uniqueIndex;size:50;not null"`
	Name      string `gorm:"size:200;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (OrganizationModel) TableName() string {
	return "organizations"
}
