package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-auth-api/internal/auth"
	"github.com/BuzzLyutic/task-auth-api/internal/config"
	"github.com/BuzzLyutic/task-auth-api/internal/handler"
	"github.com/BuzzLyutic/task-auth-api/internal/logger"
	"github.com/BuzzLyutic/task-auth-api/internal/repo"
	"github.com/BuzzLyutic/task-auth-api/internal/service"
	"github.com/BuzzLyutic/task-auth-api/internal/worker"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаем логгер
	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()

	// Подключаем БД
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Fatal("Failed to connect to Database", zap.Error(err)) // Fatal потому что дальнейшая работа теряет смысл
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		lg.Fatal("Failed to ping the Database", zap.Error(err))
	}
	lg.Info("Successfully connected to the Database!")

	if err := repo.Migrate(ctx, pool, lg); err != nil {
		lg.Fatal("Failed to apply migrations", zap.Error(err))
	}

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		lg.Fatal("Invalid password hasher settings", zap.Error(err))
	}
	tokens, err := auth.NewTokenService(cfg.Auth, lg)
	if err != nil {
		lg.Fatal("Invalid token settings", zap.Error(err))
	}

	taskRepo := repo.NewTaskRepo(pool)
	userRepo := repo.NewUserRepo(pool)

	if cfg.SeedDefaultUsers {
		if err := service.NewSeeder(userRepo, hasher, lg).SeedDefaultUsers(ctx); err != nil {
			lg.Fatal("Failed to seed default users", zap.Error(err))
		}
	}

	// Фоновая очистка старых ключей идемпотентности
	janitor := worker.NewJanitor(taskRepo, lg, cfg.PurgeInterval, cfg.IdempotencyKeyTTL)
	janitor.Start(ctx)

	router := handler.NewRouter(handler.RouterDeps{
		Tasks:         service.NewTaskService(taskRepo, lg),
		Auth:          service.NewAuthService(userRepo, hasher, tokens),
		Tokens:        tokens,
		Users:         userRepo,
		Logger:        lg,
		AuthRateLimit: cfg.AuthRateLimit,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		lg.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	lg.Info("Shutting down server...")
	janitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Shutdown error", zap.Error(err))
		return
	}
	lg.Info("Server stopped successfully!")
}
