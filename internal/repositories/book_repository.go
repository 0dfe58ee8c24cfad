package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/booknest/internal/models"
	"github.com/aaravmahajanofficial/booknest/internal/utils"
)

type BookRepository interface {
	ListBooks(ctx context.Context, category string) ([]*models.Book, error)
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	CreateBook(ctx context.Context, book *models.Book) error
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id int64) error
}

type bookRepository struct {
	DB *sql.DB
}

func NewBookRepo(db *sql.DB) BookRepository {
	return &bookRepository{DB: db}
}

const bookColumns = `id, title, author, description, price, rating, category, image_url, stock,
	genre, pages, language, publisher, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*models.Book, error) {
	book := &models.Book{}

	err := row.Scan(
		&book.ID, &book.Title, &book.Author, &book.Description, &book.Price, &book.Rating,
		&book.Category, &book.ImageURL, &book.Stock, &book.Genre, &book.Pages, &book.Language,
		&book.Publisher, &book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return book, nil
}

// ListBooks returns every book ordered by id, filtered by exact category when one is given.
func (r *bookRepository) ListBooks(ctx context.Context, category string) ([]*models.Book, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + bookColumns + ` FROM books`
	args := []any{}

	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}

	query += ` ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []*models.Book{}

	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}

		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func (r *bookRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		return nil, err
	}

	return book, nil
}

func (r *bookRepository) CreateBook(ctx context.Context, book *models.Book) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO books (title, author, description, price, rating, category, image_url, stock,
			genre, pages, language, publisher, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query,
		book.Title, book.Author, book.Description, book.Price, book.Rating, book.Category,
		book.ImageURL, book.Stock, book.Genre, book.Pages, book.Language, book.Publisher,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}

	return nil
}

// UpdateBook overwrites every mutable column. It returns sql.ErrNoRows when the book does not exist.
func (r *bookRepository) UpdateBook(ctx context.Context, book *models.Book) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE books
		SET title = $1, author = $2, description = $3, price = $4, rating = $5, category = $6,
			image_url = $7, stock = $8, genre = $9, pages = $10, language = $11, publisher = $12,
			updated_at = NOW()
		WHERE id = $13
		RETURNING updated_at`

	err := r.DB.QueryRowContext(dbCtx, query,
		book.Title, book.Author, book.Description, book.Price, book.Rating, book.Category,
		book.ImageURL, book.Stock, book.Genre, book.Pages, book.Language, book.Publisher, book.ID,
	).Scan(&book.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}

		return fmt.Errorf("failed to update book: %w", err)
	}

	return nil
}

// DeleteBook returns sql.ErrNoRows when the book does not exist and ErrReferenced when an order
// still points at it.
func (r *bookRepository) DeleteBook(ctx context.Context, id int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrReferenced
		}

		return fmt.Errorf("failed to delete book: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return sql.ErrNoRows
	}

	return nil
}
