package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/booknest/internal/models"
	repository "github.com/aaravmahajanofficial/booknest/internal/repositories"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookColumns = []string{
	"id", "title", "author", "description", "price", "rating", "category", "image_url", "stock",
	"genre", "pages", "language", "publisher", "created_at", "updated_at",
}

func addBookRow(rows *sqlmock.Rows, id int64, title, category string) *sqlmock.Rows {
	now := time.Now()

	return rows.AddRow(id, title, "Some Author", "A book", "9.99", "4.20", category, "", 10,
		"Fiction", 320, "English", "Penguin", now, now)
}

func TestBookRepository_ListBooks(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewBookRepo(db)
	ctx := t.Context()

	t.Run("Success - all books", func(t *testing.T) {
		rows := sqlmock.NewRows(bookColumns)
		addBookRow(rows, 1, "Dune", "scifi")
		addBookRow(rows, 2, "Emma", "classics")

		mock.ExpectQuery(`FROM books ORDER BY id$`).WillReturnRows(rows)

		books, err := repo.ListBooks(ctx, "")

		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "Dune", books[0].Title)
		assert.True(t, decimal.RequireFromString("9.99").Equal(books[0].Price))
		assert.Equal(t, 320, books[1].Pages)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - filtered by category", func(t *testing.T) {
		rows := sqlmock.NewRows(bookColumns)
		addBookRow(rows, 2, "Emma", "classics")

		mock.ExpectQuery(regexp.QuoteMeta(`FROM books WHERE category = $1 ORDER BY id`)).
			WithArgs("classics").
			WillReturnRows(rows)

		books, err := repo.ListBooks(ctx, "classics")

		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "classics", books[0].Category)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - empty catalog", func(t *testing.T) {
		mock.ExpectQuery(`FROM books`).WillReturnRows(sqlmock.NewRows(bookColumns))

		books, err := repo.ListBooks(ctx, "")

		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - database error", func(t *testing.T) {
		mock.ExpectQuery(`FROM books`).WillReturnError(errors.New("boom"))

		books, err := repo.ListBooks(ctx, "")

		require.Error(t, err)
		assert.Nil(t, books)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookRepository_GetBookByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewBookRepo(db)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta(`FROM books WHERE id = $1`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).WithArgs(int64(1)).
			WillReturnRows(addBookRow(sqlmock.NewRows(bookColumns), 1, "Dune", "scifi"))

		book, err := repo.GetBookByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), book.ID)
		assert.Equal(t, "Penguin", book.Publisher)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - not found", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).WithArgs(int64(2)).WillReturnError(sql.ErrNoRows)

		book, err := repo.GetBookByID(ctx, 2)

		require.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, book)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookRepository_CreateBook(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewBookRepo(db)
	ctx := t.Context()

	book := &models.Book{
		Title: "Dune", Author: "Frank Herbert", Description: "Spice", Price: decimal.RequireFromString("12.50"),
		Category: "scifi", Stock: 4, Pages: 412,
	}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books`)).
			WithArgs(book.Title, book.Author, book.Description, book.Price, book.Rating, book.Category,
				book.ImageURL, book.Stock, book.Genre, book.Pages, book.Language, book.Publisher).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

		err := repo.CreateBook(ctx, book)

		require.NoError(t, err)
		assert.Equal(t, int64(5), book.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO books`)).WillReturnError(errors.New("check violation"))

		err := repo.CreateBook(ctx, &models.Book{Title: "x"})

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to insert book")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookRepository_UpdateBook(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewBookRepo(db)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta(`UPDATE books SET title = $1`)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		book := &models.Book{ID: 3, Title: "New title", Price: decimal.RequireFromString("1.00")}

		mock.ExpectQuery(expectedSQL).
			WithArgs(book.Title, book.Author, book.Description, book.Price, book.Rating, book.Category,
				book.ImageURL, book.Stock, book.Genre, book.Pages, book.Language, book.Publisher, book.ID).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

		err := repo.UpdateBook(ctx, book)

		require.NoError(t, err)
		assert.WithinDuration(t, now, book.UpdatedAt, time.Second)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - not found", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).WillReturnError(sql.ErrNoRows)

		err := repo.UpdateBook(ctx, &models.Book{ID: 99})

		require.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookRepository_DeleteBook(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewBookRepo(db)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta(`DELETE FROM books WHERE id = $1`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteBook(ctx, 3))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - not found", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, repo.DeleteBook(ctx, 4), sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - referenced by an order", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).WithArgs(int64(5)).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "order_items_book_id_fkey"})

		require.ErrorIs(t, repo.DeleteBook(ctx, 5), repository.ErrReferenced)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
