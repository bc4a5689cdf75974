package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"gamecraft/internal/api"
	"gamecraft/internal/auth"
	"gamecraft/internal/config"
	"gamecraft/internal/database"
	"gamecraft/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("api bootstrapped",
		"db_host", cfg.Database.Host,
		"db_port", cfg.Database.Port,
		"db_name", cfg.Database.Name,
		"sslmode", cfg.Database.SSLMode,
	)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	logger.Info("database connection ready")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("seed: %v", err)
	}
	logger.Info("database migrated and seeded")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	if err != nil {
		log.Fatalf("init token service: %v", err)
	}
	kakao := auth.NewKakaoClient(cfg.Kakao)
	authService := auth.NewService(db, redisClient, tokens, kakao)

	router := api.NewRouter(cfg, logger)
	api.RegisterRoutes(router, cfg, db, authService, redisClient, storageClient)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", "address", address)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
