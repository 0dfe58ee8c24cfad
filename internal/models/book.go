package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	// Rating is the catalog seed value; the live score is BookDetail.AverageRating.
	Rating    decimal.Decimal `json:"rating"`
	Category  string          `json:"category"`
	ImageURL  string          `json:"image_url"`
	Stock     int             `json:"stock"`
	Genre     string          `json:"genre"`
	Pages     int             `json:"pages"`
	Language  string          `json:"language"`
	Publisher string          `json:"publisher"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BookDetail is a book with its reviews and the aggregate computed from them.
type BookDetail struct {
	Book
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
	ReviewCount   int      `json:"review_count"`
}

type CreateBookRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Author      string          `json:"author" validate:"required,max=255"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Rating      decimal.Decimal `json:"rating"`
	Category    string          `json:"category" validate:"required,max=100"`
	ImageURL    string          `json:"image_url" validate:"omitempty,max=1024"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Genre       string          `json:"genre" validate:"omitempty,max=100"`
	Pages       int             `json:"pages" validate:"gte=0"`
	Language    string          `json:"language" validate:"omitempty,max=50"`
	Publisher   string          `json:"publisher" validate:"omitempty,max=255"`
}

type UpdateBookRequest struct {
	Title       *string          `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Author      *string          `json:"author,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Rating      *decimal.Decimal `json:"rating,omitempty"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	ImageURL    *string          `json:"image_url,omitempty" validate:"omitempty,max=1024"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Genre       *string          `json:"genre,omitempty" validate:"omitempty,max=100"`
	Pages       *int             `json:"pages,omitempty" validate:"omitempty,gte=0"`
	Language    *string          `json:"language,omitempty" validate:"omitempty,max=50"`
	Publisher   *string          `json:"publisher,omitempty" validate:"omitempty,max=255"`
}
