package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	repository "github.com/aaravmahajanofficial/booknest/internal/repositories"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return db, mock
}

func TestNewCartRepo(t *testing.T) {
	db, _ := newMockDB(t)

	repo := repository.NewCartRepo(db)
	assert.NotNil(t, repo, "NewCartRepo should return a non-nil repository")
}

func TestCartRepository_GetItemsByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCartRepo(db)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta(`SELECT ci.book_id, b.title, b.author, b.price, ci.quantity FROM carts c`)

	t.Run("Success - ordered lines", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(expectedSQL).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"book_id", "title", "author", "price", "quantity"}).
				AddRow(int64(7), "Dune", "Frank Herbert", "12.50", 2).
				AddRow(int64(3), "Emma", "Jane Austen", "8.00", 1))

		// Act
		lines, err := repo.GetItemsByUserID(ctx, 1)

		// Assert
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, int64(7), lines[0].BookID)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.True(t, decimal.RequireFromString("12.50").Equal(lines[0].Price))
		assert.Equal(t, "Emma", lines[1].Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - no cart yields empty slice", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"book_id", "title", "author", "price", "quantity"}))

		lines, err := repo.GetItemsByUserID(ctx, 2)

		require.NoError(t, err)
		assert.NotNil(t, lines, "lines must be non-nil so it encodes as []")
		assert.Empty(t, lines)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - database error", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).
			WithArgs(int64(3)).
			WillReturnError(errors.New("connection reset"))

		lines, err := repo.GetItemsByUserID(ctx, 3)

		require.Error(t, err)
		assert.Nil(t, lines)
		assert.ErrorContains(t, err, "failed to query cart items")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_AddItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCartRepo(db)
	ctx := t.Context()

	cartSQL := regexp.QuoteMeta(`INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW() RETURNING id`)
	itemSQL := regexp.QuoteMeta(`INSERT INTO cart_items (cart_id, book_id, quantity) VALUES ($1, $2, 1) ON CONFLICT (cart_id, book_id) DO UPDATE SET quantity = cart_items.quantity + 1`)

	t.Run("Success - upserts cart and line in one transaction", func(t *testing.T) {
		// Arrange
		mock.ExpectBegin()
		mock.ExpectQuery(cartSQL).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))
		mock.ExpectExec(itemSQL).WithArgs(int64(10), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err := repo.AddItem(ctx, 1, 7)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - unknown book rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(cartSQL).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))
		mock.ExpectExec(itemSQL).WithArgs(int64(10), int64(999)).
			WillReturnError(&pq.Error{Code: "23503"})
		mock.ExpectRollback()

		err := repo.AddItem(ctx, 1, 999)

		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrReferenceNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - cart upsert error rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(cartSQL).WithArgs(int64(1)).
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		err := repo.AddItem(ctx, 1, 7)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to upsert cart")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - begin error", func(t *testing.T) {
		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		err := repo.AddItem(ctx, 1, 7)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to begin transaction")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_SetQuantity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCartRepo(db)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta(`UPDATE cart_items ci SET quantity = $1 FROM carts c WHERE ci.cart_id = c.id AND c.user_id = $2 AND ci.book_id = $3`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).WithArgs(5, int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetQuantity(ctx, 1, 7, 5))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - no matching line is a no-op", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).WithArgs(3, int64(1), int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.SetQuantity(ctx, 1, 42, 3))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - database error", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).WithArgs(3, int64(1), int64(7)).
			WillReturnError(errors.New("timeout"))

		err := repo.SetQuantity(ctx, 1, 7, 3)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to update cart item quantity")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_RemoveItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCartRepo(db)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta(`DELETE FROM cart_items ci USING carts c WHERE ci.cart_id = c.id AND c.user_id = $1 AND ci.book_id = $2`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).WithArgs(int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.RemoveItem(ctx, 1, 7))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - absent line is a no-op", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).WithArgs(int64(1), int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.RemoveItem(ctx, 1, 8))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - database error", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).WithArgs(int64(1), int64(7)).
			WillReturnError(errors.New("timeout"))

		err := repo.RemoveItem(ctx, 1, 7)

		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to remove cart item")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
