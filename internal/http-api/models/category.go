package models

import "time"

// Category is read-mostly reference data a Title may belong to.
type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:256;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;size:50;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Category) TableName() string {
	return "categories"
}
