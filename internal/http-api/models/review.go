package models

import "time"

// Review is a scored write-up of a title. The composite unique index
// enforces at most one review per (title, author) pair at the storage
// layer, so concurrent duplicate inserts fail there too.
type Review struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Text     string `json:"text" gorm:"type:text;not null"`
	Score    int    `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	TitleID  int64  `json:"title_id" gorm:"uniqueIndex:idx_reviews_title_author;not null"`
	AuthorID string `json:"author_id" gorm:"type:uuid;uniqueIndex:idx_reviews_title_author;not null"`

	Title  Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
	Author User  `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
