package models

import "time"

type Account struct {
	ID          string `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Login       string `gorm:"size:60;not null;uniqueIndex"`
	Email       string `gorm:"size:320;not null;uniqueIndex"`
	Password    string `gorm:"size:255;not null"`
	FirstName   string `gorm:"size:255;not null;default:''"`
	LastName    string `gorm:"size:255;not null;default:''"`
	DisplayName string `gorm:"size:255;not null;default:''"`
	Role        string `gorm:"size:60;not null;default:''"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Account) TableName() string {
	return "accounts"
}
