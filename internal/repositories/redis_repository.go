package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/booknest/internal/api/middleware"
	"github.com/aaravmahajanofficial/booknest/internal/config"
	"github.com/redis/go-redis/v9"
)

type RateLimitRepository interface {
	// CheckLoginRateLimit records an attempt and reports whether it is allowed, how many attempts
	// remain and how many seconds to wait when it is not.
	CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error)
}

type rateLimitRepository struct {
	client redis.Cmdable
	limits config.RateConfig
	now    func() time.Time
}

func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {

	slog.Info("Connecting to Redis", slog.String("host", cfg.RedisConnect.Host), slog.String("port", cfg.RedisConnect.Port))

	opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Successfully connected to Redis")

	return client, nil
}

func NewRateLimitRepo(client redis.Cmdable, limits config.RateConfig) RateLimitRepository {
	return &rateLimitRepository{client: client, limits: limits, now: time.Now}
}

// Attempts live in a sorted set per email scored by unix time; entries older than the window are
// trimmed on every check, which makes the window slide.
func (r *rateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := "login_attempts:" + email
	now := r.now()
	window := int64(r.limits.WindowSize.Seconds())
	windowStart := now.Unix() - window

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.limits.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, fmt.Errorf("rate limit pipeline failed: %w", err)
	}

	attempts := count.Val()

	if attempts > r.limits.MaxAttempts {

		scores, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil {
			return false, 0, int(window), fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		if len(scores) == 0 {
			return false, 0, int(window), errors.New("no attempts recorded for a blocked key")
		}

		retryAfter := max(int64(scores[0].Score)+window-now.Unix(), 0)

		logger.Warn("Login rate limit exceeded", slog.String("email", email), slog.Int64("attempts", attempts))

		return false, 0, int(retryAfter), nil
	}

	return true, int(r.limits.MaxAttempts - attempts), 0, nil
}
