package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/booknest/internal/models"
	"github.com/aaravmahajanofficial/booknest/internal/utils"
)

type CartRepository interface {
	GetItemsByUserID(ctx context.Context, userID int64) ([]models.CartLine, error)
	AddItem(ctx context.Context, userID, bookID int64) error
	SetQuantity(ctx context.Context, userID, bookID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, bookID int64) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// GetItemsByUserID returns the user's cart lines in insertion order. A user without a cart gets an
// empty, non-nil slice.
func (r *cartRepository) GetItemsByUserID(ctx context.Context, userID int64) ([]models.CartLine, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ci.book_id, b.title, b.author, b.price, ci.quantity
		FROM carts c
		JOIN cart_items ci ON ci.cart_id = c.id
		JOIN books b ON b.id = ci.book_id
		WHERE c.user_id = $1
		ORDER BY ci.id`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}

	for rows.Next() {
		var line models.CartLine

		if err := rows.Scan(&line.BookID, &line.Title, &line.Author, &line.Price, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return lines, nil
}

// AddItem creates the cart on first use and adds one unit of the book. Both steps are upserts on
// unique constraints so concurrent first adds converge on one cart and one line.
func (r *cartRepository) AddItem(ctx context.Context, userID, bookID int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return WithTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		var cartID int64

		cartQuery := `
			INSERT INTO carts (user_id) VALUES ($1)
			ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
			RETURNING id`

		if err := tx.QueryRowContext(dbCtx, cartQuery, userID).Scan(&cartID); err != nil {
			if isForeignKeyViolation(err) {
				return ErrReferenceNotFound
			}

			return fmt.Errorf("failed to upsert cart: %w", err)
		}

		itemQuery := `
			INSERT INTO cart_items (cart_id, book_id, quantity) VALUES ($1, $2, 1)
			ON CONFLICT (cart_id, book_id) DO UPDATE SET quantity = cart_items.quantity + 1`

		if _, err := tx.ExecContext(dbCtx, itemQuery, cartID, bookID); err != nil {
			if isForeignKeyViolation(err) {
				return ErrReferenceNotFound
			}

			return fmt.Errorf("failed to upsert cart item: %w", err)
		}

		return nil
	})
}

// SetQuantity overwrites the quantity of an existing line. It never creates one.
func (r *cartRepository) SetQuantity(ctx context.Context, userID, bookID int64, quantity int) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items ci
		SET quantity = $1
		FROM carts c
		WHERE ci.cart_id = c.id AND c.user_id = $2 AND ci.book_id = $3`

	if _, err := r.DB.ExecContext(dbCtx, query, quantity, userID, bookID); err != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", err)
	}

	return nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, bookID int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1 AND ci.book_id = $2`

	if _, err := r.DB.ExecContext(dbCtx, query, userID, bookID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}
