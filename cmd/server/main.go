package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/service-adoption/internal/application"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/cache"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/config"
	likeDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/like"
	petDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/pet"
	userDomain "github.com/Kilat-Pet-Delivery/service-adoption/internal/domain/user"
	adoptionEvents "github.com/Kilat-Pet-Delivery/service-adoption/internal/events"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/media"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/repository"
	"github.com/Kilat-Pet-Delivery/service-adoption/internal/repository/memory"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/database"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/health"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/kafka"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/logger"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/middleware"
)

const serviceName = "service-adoption"

type repositories struct {
	pets  petDomain.PetRepository
	likes likeDomain.LikeRepository
	users userDomain.UserRepository
}

type eventPublisher interface {
	application.EventPublisher
	io.Closer
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreDriver),
		zap.String("event_broker", cfg.EventBroker),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Record store
	db, repos := openStore(cfg, log)

	// Identity tokens are issued by the identity provider; the TTL only matters for tooling.
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.Issuer, 15*time.Minute)

	// Event publisher
	publisher := newPublisher(cfg, log)
	defer func() { _ = publisher.Close() }()

	// Feed cache
	var feedCache application.FeedCache = cache.NopFeedCache{}
	if cfg.RedisConfig.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.RedisConfig.Addr, cfg.RedisConfig.Password, cfg.RedisConfig.DB)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()
		feedCache = cache.NewRedisFeedCache(client, cfg.RedisConfig.TTL, log)
	}

	// Media host
	mediaStore, err := media.NewS3Store(ctx, cfg.S3Config, log)
	if err != nil {
		log.Fatal("failed to initialize media store", zap.Error(err))
	}
	if cfg.S3Config.Bucket == "" {
		log.Warn("no S3 bucket configured; image uploads will fail")
	}

	// Initialize application services
	petService := application.NewPetService(repos.pets, repos.likes, feedCache, publisher, log)
	likeService := application.NewLikeService(repos.likes, publisher, log)
	userService := application.NewUserService(repos.users, log)
	listingService := application.NewListingService(petService, mediaStore, log)

	// Identity event consumer
	if cfg.IdentityConsumerEnabled && len(cfg.KafkaConfig.Brokers) > 0 {
		groupID := cfg.KafkaConfig.GroupPrefix + "adoption-service"
		identityConsumer := adoptionEvents.NewIdentityEventConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			userService,
			log,
		)
		defer func() { _ = identityConsumer.Close() }()

		go func() {
			log.Info("starting identity event consumer")
			if err := identityConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("identity event consumer error", zap.Error(err))
			}
		}()
	}

	// Setup Gin router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidators()
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check and metrics routes
	health.NewHandler(db, serviceName).RegisterRoutes(router)
	router.GET("/metrics", middleware.MetricsHandler())

	// Register routes
	handler.NewPetHandler(petService, listingService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewLikeHandler(likeService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewUserHandler(userService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewAdminPetHandler(listingService).RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}

// openStore returns the repositories for the configured driver. db is nil for the memory store.
func openStore(cfg *config.ServiceConfig, log *zap.Logger) (*gorm.DB, repositories) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn("using in-memory record store; data is lost on restart")
		store := memory.NewStore()
		return nil, repositories{pets: store.Pets(), likes: store.Likes(), users: store.Users()}
	}

	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.UserModel{}, &repository.PetModel{}, &repository.LikeModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(dbConfig.DatabaseURL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	return db, repositories{
		pets:  repository.NewGormPetRepository(db),
		likes: repository.NewGormLikeRepository(db),
		users: repository.NewGormUserRepository(db),
	}
}

func newPublisher(cfg *config.ServiceConfig, log *zap.Logger) eventPublisher {
	switch cfg.EventBroker {
	case config.BrokerKafka:
		return kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	case config.BrokerNATS:
		pub, err := adoptionEvents.NewNATSPublisher(cfg.NATSConfig.URL, log)
		if err != nil {
			log.Fatal("failed to connect to nats", zap.Error(err))
		}
		return pub
	default:
		return adoptionEvents.NopPublisher{}
	}
}
