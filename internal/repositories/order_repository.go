package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/booknest/internal/models"
	"github.com/aaravmahajanofficial/booknest/internal/utils"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	ListOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error)
	CreateOrderFromCart(ctx context.Context, userID int64) (*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderWithItemsQuery = `
	SELECT o.id, o.user_id, o.total, o.status, o.created_at, o.updated_at,
		oi.book_id, b.title, b.author, oi.unit_price, oi.quantity
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN books b ON b.id = oi.book_id`

// collectOrders folds the flat order/item join into orders, keeping the row order of the first
// appearance of each order.
func collectOrders(rows *sql.Rows) ([]*models.Order, error) {

	orders := []*models.Order{}
	byID := make(map[int64]*models.Order)

	for rows.Next() {
		var (
			order    models.Order
			bookID   sql.NullInt64
			title    sql.NullString
			author   sql.NullString
			price    decimal.NullDecimal
			quantity sql.NullInt64
		)

		err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.Status, &order.CreatedAt, &order.UpdatedAt,
			&bookID, &title, &author, &price, &quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}

		current, ok := byID[order.ID]
		if !ok {
			order.Items = []models.OrderItem{}
			current = &order
			byID[order.ID] = current
			orders = append(orders, current)
		}

		if bookID.Valid {
			current.Items = append(current.Items, models.OrderItem{
				BookID:   bookID.Int64,
				Title:    title.String,
				Author:   author.String,
				Price:    price.Decimal,
				Quantity: int(quantity.Int64),
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// ListOrdersByUser returns the user's orders newest first with their items, in one round trip.
func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := orderWithItemsQuery + `
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC, oi.id`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// GetOrderByID returns sql.ErrNoRows when the order does not exist.
func (r *orderRepository) GetOrderByID(ctx context.Context, orderID int64) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := orderWithItemsQuery + `
		WHERE o.id = $1
		ORDER BY oi.id`

	rows, err := r.DB.QueryContext(dbCtx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, sql.ErrNoRows
	}

	return orders[0], nil
}

// CreateOrderFromCart turns the user's cart into a pending order. The cart row and the books it
// references stay locked until the transaction ends, so stock checks and decrements cannot
// interleave with another checkout or cart mutation.
func (r *orderRepository) CreateOrderFromCart(ctx context.Context, userID int64) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var order *models.Order

	err := WithTx(dbCtx, r.DB, func(tx *sql.Tx) error {

		var cartID int64

		err := tx.QueryRowContext(dbCtx, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&cartID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrEmptyCart
			}

			return fmt.Errorf("failed to lock cart: %w", err)
		}

		linesQuery := `
			SELECT ci.book_id, b.title, b.author, b.price, ci.quantity, b.stock
			FROM cart_items ci
			JOIN books b ON b.id = ci.book_id
			WHERE ci.cart_id = $1
			ORDER BY b.id
			FOR UPDATE OF b`

		rows, err := tx.QueryContext(dbCtx, linesQuery, cartID)
		if err != nil {
			return fmt.Errorf("failed to read cart items: %w", err)
		}

		items := []models.OrderItem{}
		total := decimal.Zero

		for rows.Next() {
			var (
				item  models.OrderItem
				stock int
			)

			if err := rows.Scan(&item.BookID, &item.Title, &item.Author, &item.Price, &item.Quantity, &stock); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan cart item: %w", err)
			}

			if stock < item.Quantity {
				rows.Close()
				return fmt.Errorf("%w: book %d has %d left", ErrInsufficientStock, item.BookID, stock)
			}

			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			items = append(items, item)
		}

		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("error iterating cart items: %w", err)
		}
		rows.Close()

		if len(items) == 0 {
			return ErrEmptyCart
		}

		created := &models.Order{
			UserID: userID,
			Total:  total,
			Status: models.OrderStatusPending,
			Items:  items,
		}

		orderQuery := `
			INSERT INTO orders (user_id, total, status, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING id, created_at, updated_at`

		if err := tx.QueryRowContext(dbCtx, orderQuery, userID, total, created.Status).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for _, item := range items {

			if _, err := tx.ExecContext(dbCtx,
				`INSERT INTO order_items (order_id, book_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
				created.ID, item.BookID, item.Quantity, item.Price,
			); err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}

			if _, err := tx.ExecContext(dbCtx,
				`UPDATE books SET stock = stock - $1, updated_at = NOW() WHERE id = $2`,
				item.Quantity, item.BookID,
			); err != nil {
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
		}

		if _, err := tx.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return fmt.Errorf("failed to empty cart: %w", err)
		}

		order = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
