package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/booknest/internal/config"
	"github.com/aaravmahajanofficial/booknest/internal/migrate"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

// Repositories shares one connection pool between every repository.
type Repositories struct {
	DB     *sql.DB
	User   UserRepository
	Book   BookRepository
	Review ReviewRepository
	Cart   CartRepository
	Order  OrderRepository
}

func New(ctx context.Context, cfg *config.Config) (*Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		slog.Info("Running database migrations")

		if err := migrate.Up(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return NewWithDB(db), nil
}

// NewWithDB wires every repository onto an existing pool.
func NewWithDB(db *sql.DB) *Repositories {
	return &Repositories{
		DB:     db,
		User:   NewUserRepo(db),
		Book:   NewBookRepo(db),
		Review: NewReviewRepo(db),
		Cart:   NewCartRepo(db),
		Order:  NewOrderRepo(db),
	}
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
