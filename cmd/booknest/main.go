package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/booknest/internal/api/handlers"
	"github.com/aaravmahajanofficial/booknest/internal/api/middleware"
	"github.com/aaravmahajanofficial/booknest/internal/cache"
	"github.com/aaravmahajanofficial/booknest/internal/config"
	"github.com/aaravmahajanofficial/booknest/internal/health"
	"github.com/aaravmahajanofficial/booknest/internal/metrics"
	"github.com/aaravmahajanofficial/booknest/internal/migrate"
	repository "github.com/aaravmahajanofficial/booknest/internal/repositories"
	service "github.com/aaravmahajanofficial/booknest/internal/services"
	"github.com/aaravmahajanofficial/booknest/internal/telemetry"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Could not load .env file", slog.String("error", err.Error()))
	}

	// Load config
	cfg := config.MustLoad()

	if !flag.Parsed() {
		flag.Parse()
	}

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// booknest [-config path] migrate <goose command> [args]
	if args := flag.Args(); len(args) > 1 && args[0] == "migrate" {
		if err := migrate.Run(ctx, repos.DB, args[1], args[2:]...); err != nil {
			slog.Error("❌ Migration failed", slog.String("command", args[1]), slog.String("error", err.Error()))
			os.Exit(1)
		}

		slog.Info("✅ Migration finished", slog.String("command", args[1]))
		return
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	bookCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	healthChecker, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error building health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	jwtKey := []byte(cfg.Security.JWTKey)
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	userService := service.NewUserService(repos.User, rateLimiter, jwtKey, cfg.Security.JWTExpiry)
	userHandler := handlers.NewUserHandler(userService)
	catalogService := service.NewCatalogService(repos.Book, repos.Review, bookCache)
	bookHandler := handlers.NewBookHandler(catalogService)
	reviewService := service.NewReviewService(repos.Review, bookCache)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	cartService := service.NewCartService(repos.Cart)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	routerMux := newRouter(routes{
		users:   userHandler,
		books:   bookHandler,
		reviews: reviewHandler,
		cart:    cartHandler,
		orders:  orderHandler,
		auth:    authMiddleware,
		health:  healthChecker.Handler(),
	})

	// Middleware chaining, metrics innermost so it sees the matched route pattern
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}).Handler(handler)
	handler = otelhttp.NewHandler(handler, cfg.OTel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
