package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"film-backend/config"
	"film-backend/database"
	"film-backend/handlers"
	"film-backend/logging"
	"film-backend/services"
	"film-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(cfg.GinMode)

	if err := database.InitDB(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	if cfg.SeedPath != "" {
		if err := database.LoadCatalog(database.GetDB(), cfg.SeedPath); err != nil {
			logging.Warn().Err(err).Str("path", cfg.SeedPath).Msg("Failed to load catalogue")
		}
	}

	var facts store.Store = store.NewGormStore(database.GetDB())
	if cfg.EventBackend == config.EventBackendRedis {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logging.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to redis")
		}
		defer client.Close()
		facts = store.WithEventLog(facts, store.NewRedisEventLog(client))
		logging.Info().Str("addr", cfg.RedisAddr).Msg("Using redis event log")
	}

	// Initialize services
	feed := services.NewActivityFeed(facts)
	affinity := services.NewAffinityIndex(facts)
	ranking := services.NewRankingEngine(facts, facts)
	recs := services.NewRecommendationEngine(affinity, facts, facts)
	reviews := services.NewReviewScoreAggregator(facts, facts, facts, feed)
	likes := services.NewLikeService(facts, facts, feed)
	friends := services.NewFriendService(facts, facts, feed)

	// Initialize handlers
	router := handlers.NewRouter(&handlers.Handlers{
		Films:   handlers.NewFilmHandler(ranking, likes, cfg.DefaultPopularCount),
		Users:   handlers.NewUserHandler(friends, affinity, recs, feed),
		Reviews: handlers.NewReviewHandler(reviews, cfg.DefaultReviewCount),
	}, cfg.MetricsEnabled)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Server shutdown failed")
	}
	logging.Info().Msg("Server stopped")
}
