package models

import "time"

type ImportHistory struct {
	ID            string  `gorm:"type:uuid;primaryKey"`
	FileName      string  `gorm:"size:255;not null"`
	TotalRows     int     `gorm:"not null;default:0"`
	ProcessedRows int     `gorm:"not null;default:0"`
	SkippedRows   int     `gorm:"not null;default:0"`
	Status        string  `gorm:"size:50;not null;default:new"`
	ErrorMessage  *string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ImportHistory) TableName() string {
	return "import_history"
}
