package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buffet/cmd"
	httpadapter "buffet/internal/adapters/in/http"
	"buffet/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load(".env")

	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := openDatabase(config)
	redisClient := openRedis(ctx, config, logger)

	app, err := cmd.NewCompositionRoot(config, gormDB, redisClient, logger)
	if err != nil {
		log.Fatalf("failed to wire application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}

	e := httpadapter.NewEcho(logger)
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	app.CreateServer().Register(e)

	go func() {
		address := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		logger.Info("http server listening", "address", address)
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	jobManager.StopAll()
	app.Dispatcher().Wait()

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func openDatabase(config cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := orderrepo.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	return gormDB
}

// openRedis returns nil when no address is configured. An unreachable
// server is logged; the guard then fails open on every call.
func openRedis(ctx context.Context, config cmd.Config, logger *slog.Logger) goredis.UniversalClient {
	if config.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, ready emails are not deduplicated")
		return nil
	}

	client := goredis.NewClient(&goredis.Options{Addr: config.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable at startup", "address", config.RedisAddr, "error", err)
	}
	return client
}
