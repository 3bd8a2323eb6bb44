package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"todo-api/internal/config"
	"todo-api/internal/db"
	apihttp "todo-api/internal/http"
	"todo-api/internal/repository"
	"todo-api/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := db.ApplyMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	todoRepo := repository.NewPgTodoRepository(pool)

	// El registro de tokens activos vive en Postgres salvo que haya Redis
	// configurado y alcanzable.
	registry := service.NewPgTokenRegistry(pool)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			registry = service.NewRedisTokenRegistry(redisClient)
		}
		cancel()
	}

	tokenServ := service.NewTokenService(cfg.TokenSecret, userRepo, registry)
	userServ := service.NewUserService(logger, userRepo, tokenServ)
	todoServ := service.NewTodoService(todoRepo)

	userHandler := apihttp.NewUserHandler(logger, userServ, tokenServ)
	todoHandler := apihttp.NewTodoHandler(logger, todoServ)
	router := apihttp.NewRouter(logger, userHandler, todoHandler, tokenServ)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
