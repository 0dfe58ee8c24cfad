package cache

import (
	"context"
	"strconv"
	"time"
)

type Cache interface {
	// Get decodes the cached value into value and reports whether the key was present.
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

// BookKey is where the detail view of a book (with reviews and aggregates) is cached.
func BookKey(id int64) string {
	return Key(BookKeyPrefix, strconv.FormatInt(id, 10))
}

const (
	BookKeyPrefix = "book"
)
