package models

import "time"

// GenreTitle is the explicit join model between titles and genres.
// The composite unique index enforces one row per (title, genre) pair
// at the storage layer.
type GenreTitle struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID   int64     `json:"title_id" gorm:"uniqueIndex:idx_genre_titles_title_genre;not null"`
	GenreID   int64     `json:"genre_id" gorm:"uniqueIndex:idx_genre_titles_title_genre;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
