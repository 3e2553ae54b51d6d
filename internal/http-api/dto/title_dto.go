package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// Titles have two explicit transfer shapes: writes reference the
// category and genres by slug, reads always nest the full objects.

// CreateTitleRequest used for POST /v1/titles/
type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Genre       []string `json:"genre" binding:"required,min=1"`
	Category    string   `json:"category" binding:"required"`
}

// UpdateTitleRequest used for PATCH /v1/titles/{title_id}/; nil fields
// are left unchanged.
type UpdateTitleRequest struct {
	Name        *string   `json:"name,omitempty" binding:"omitempty,max=256"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Genre       *[]string `json:"genre,omitempty"`
	Category    *string   `json:"category,omitempty"`
}

type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
	CreatedAt   time.Time         `json:"created_at"`
}

// FromTitle maps the persisted title plus its read-time rating into the
// nested response shape.
func FromTitle(t models.Title, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:        t.ID,
		Name:      t.Name,
		Year:      t.Year,
		Rating:    rating,
		Genre:     make([]GenreResponse, 0, len(t.Genres)),
		CreatedAt: t.CreatedAt,
	}
	if t.Description != nil {
		resp.Description = *t.Description
	}
	if t.Category != nil {
		c := FromCategory(*t.Category)
		resp.Category = &c
	}
	for _, g := range t.Genres {
		resp.Genre = append(resp.Genre, FromGenre(g))
	}
	return resp
}
