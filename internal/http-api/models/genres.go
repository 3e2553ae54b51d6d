package models

import "time"

type Genre struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:256;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;size:50;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Genre) TableName() string {
	return "genres"
}
