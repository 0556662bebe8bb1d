// main.go
package main

import (
	"log"
	"time"

	"cinema-operations/cmd"
	"cinema-operations/internal/data/repository"
	"cinema-operations/internal/events"
	"cinema-operations/internal/usecase"
	"cinema-operations/internal/wire"
	"cinema-operations/pkg/database"
	"cinema-operations/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize repositories and the per-hall schedule transaction
	repos := repository.NewRepository(db, logger)
	scheduleTx := repository.NewScheduleTx(db, logger)

	// Optional Redis cache for the screening listing
	var cache *usecase.ScreeningCache
	if config.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		ttl := time.Duration(config.Scheduling.ListCacheTTLSecs) * time.Second
		cache = usecase.NewScreeningCache(redisClient, ttl, logger)
		logger.Info("Screening list cache enabled", zap.String("redis_addr", config.Redis.Addr))
	}

	// Optional RabbitMQ lifecycle events
	publisher := events.NewPublisher(config.RabbitMQ.URL, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, scheduleTx, cache, publisher, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
