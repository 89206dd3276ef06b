// GastroReview API server.
//
// Boots configuration, storage, the async review-event workers and the HTTP
// router, then serves until SIGINT/SIGTERM triggers a graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/websiters/gastroreview/internal/api"
	"github.com/websiters/gastroreview/internal/core/service"
	mongodb "github.com/websiters/gastroreview/internal/infrastructure/db/mongo"
	redisdb "github.com/websiters/gastroreview/internal/infrastructure/db/redis"
	"github.com/websiters/gastroreview/internal/infrastructure/queue"
	"github.com/websiters/gastroreview/internal/infrastructure/sentiment"
	"github.com/websiters/gastroreview/internal/pkg/config"
	"github.com/websiters/gastroreview/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title GastroReview API
// @version 1.0
// @description Restaurant review platform with JWT authentication and role-based authorization.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	restaurants := mongodb.NewRestaurantRepository(db)
	dishes := mongodb.NewDishRepository(db)
	reviews := mongodb.NewReviewRepository(db)
	notifications := mongodb.NewNotificationRepository(db)
	analyses := mongodb.NewAnalysisRepository(db)
	favorites := mongodb.NewFavoriteRepository(db)
	alerts := mongodb.NewAlertRepository(db)

	// --- Core services ---
	// A bad signing key is a startup error, never a per-request one.
	tokens, err := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMillis)*time.Millisecond)
	if err != nil {
		log.Fatal().Err(err).Msg("token service initialisation failed")
	}

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	authService := service.NewAuthService(users, hasher, tokens, log)
	userService := service.NewUserService(users)
	restaurantService := service.NewRestaurantService(restaurants, log)
	dishService := service.NewDishService(dishes, restaurants, log)

	// --- Async review-event pipeline ---
	analyzer := sentiment.NewClient(cfg.Sentiment.Endpoint, cfg.Sentiment.Key)
	analysisCache := redisdb.NewAnalysisCache(rdb)
	processor := service.NewReviewEventService(reviews, notifications, analyses, analyzer, analysisCache, log)
	dispatcher := queue.NewDispatcher(cfg.Workers, processor, log)
	dispatcher.Start(ctx)

	reviewService := service.NewReviewService(reviews, restaurants, analyses, dispatcher, log)
	notificationService := service.NewNotificationService(notifications, log)
	favoriteService := service.NewFavoriteService(favorites, restaurants, reviews, log)
	alertService := service.NewAlertService(alerts, restaurants, reviews, log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		DB:             db,
		Redis:          rdb,
		Users:          users,
		TokenService:   tokens,
		AuthService:    authService,
		UserService:    userService,
		Restaurants:    restaurantService,
		Dishes:         dishService,
		Reviews:        reviewService,
		Notifications:  notificationService,
		Favorites:      favoriteService,
		Alerts:         alertService,
		PublicPrefixes: cfg.PublicPrefixes(),
	}, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
