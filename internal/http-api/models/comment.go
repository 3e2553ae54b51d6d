package models

import "time"

// Comment belongs to exactly one review and one author and is removed
// together with either parent.
type Comment struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Text     string `json:"text" gorm:"type:text;not null"`
	ReviewID int64  `json:"review_id" gorm:"index;not null"`
	AuthorID string `json:"author_id" gorm:"type:uuid;index;not null"`

	Review Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
	Author User   `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Comment) TableName() string {
	return "comments"
}
