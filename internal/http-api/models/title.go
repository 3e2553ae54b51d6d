package models

import "time"

// Title is a reviewable work (book, film, album and so on).
type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:256;not null"`
	Year        int     `json:"year" gorm:"not null"`
	Description *string `json:"description,omitempty" gorm:"type:text"`

	// Deleting a category clears the reference, it never deletes titles.
	CategoryID *int64    `json:"category_id,omitempty" gorm:"index"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`

	Genres []Genre `json:"genres,omitempty" gorm:"many2many:genre_titles;"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Title) TableName() string {
	return "titles"
}
