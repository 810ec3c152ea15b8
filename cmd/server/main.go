package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lagunartea/club-ledger/internal/config"
	"github.com/lagunartea/club-ledger/internal/database"
	"github.com/lagunartea/club-ledger/internal/handler"
	"github.com/lagunartea/club-ledger/internal/queue"
	"github.com/lagunartea/club-ledger/internal/repository"
	"github.com/lagunartea/club-ledger/internal/router"
	"github.com/lagunartea/club-ledger/internal/service"
	"github.com/lagunartea/club-ledger/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable: rate limiting and caching disabled")
	}

	store, storeName := openStore(ctx, cfg, rdb, logger)
	if err := repository.EnsureSeed(ctx, store); err != nil {
		logger.Warn("seeding catalog failed", zap.Error(err))
	}

	var pub service.Publisher = service.NopPublisher{}
	if cfg.RabbitURL != "" {
		pub = service.NewAMQPPublisher(cfg.RabbitURL, logger)
		go func() {
			_ = queue.StartLedgerConsumer(ctx, cfg.RabbitURL, queue.DefaultLedgerLog, logger.Named("ledger-consumer"))
		}()
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Warn("unknown timezone, using UTC", zap.Error(err))
	}
	svc := service.NewBookingService(store, pub, logger, service.Options{
		WindowDays:    cfg.WindowDays,
		EnforceWindow: cfg.EnforceWindow,
		Location:      loc,
	})

	secretHash, err := utils.HashSecret(cfg.AdminSecret, cfg.BcryptCost)
	if err != nil {
		logger.Fatal("hashing admin secret", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	deps := router.Deps{
		Booking:   handler.NewBookingHandler(svc, logger),
		Ledger:    handler.NewLedgerHandler(svc, logger),
		Catalog:   handler.NewCatalogHandler(svc, logger),
		Admin:     &handler.AdminAuthHandler{SecretHash: secretHash, JWTSecret: cfg.JWTSecret, TTL: cfg.AccessTTL(), Log: logger},
		JWTSecret: cfg.JWTSecret,
		StoreName: storeName,
		Redis:     rdb,
		RateLimit: config.LoadRateLimitConfig(),
		LoginRate: config.LoadLoginRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
		Log:       logger,
	}
	router.RegisterRoutes(e, deps.StoreName)
	router.RegisterPublic(e, deps)
	router.RegisterAdmin(e, deps)

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("store", storeName))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

// openStore picks MySQL when DB_HOST is set, Redis when it answers and an
// in-process store as the last resort.
func openStore(ctx context.Context, cfg config.Config, rdb *redis.Client, logger *zap.Logger) (repository.Store, string) {
	if cfg.UseMySQL() {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err == nil {
			if err = database.Migrate(ctx, db); err == nil {
				return repository.NewSQLStore(db), "mysql"
			}
			_ = db.Close()
		}
		logger.Error("mysql unavailable, falling back", zap.Error(err))
	}
	if rdb != nil {
		return repository.NewRedisStore(rdb, cfg.StorePrefix), "redis"
	}
	logger.Warn("no database configured: data lives in memory only")
	return repository.NewMemoryStore(), "memory"
}
