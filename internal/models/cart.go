package models

import "github.com/shopspring/decimal"

// CartLine is one cart item joined with the book it refers to.
type CartLine struct {
	BookID   int64           `json:"book_id"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type AddItemRequest struct {
	BookID int64 `json:"bookId" validate:"required,gt=0"`
}

// Quantity is a pointer so that a missing value is told apart from zero.
type UpdateQuantityRequest struct {
	BookID   int64 `json:"bookId" validate:"required,gt=0"`
	Quantity *int  `json:"quantity" validate:"required,gte=0"`
}
