package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/cleanup"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	transportHttp "github.com/iamasit07/4-in-a-row/engine/internal/transport/http"
	"github.com/iamasit07/4-in-a-row/engine/pkg/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadConfig()
	logger.Setup(cfg.LogLevel, false)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Move cache (optional)
	var cache game.CacheRepository
	if client, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword); err == nil {
		defer client.Close()
		cache = redis.NewRedisCache(client, "c4:")
	}

	// 2. Services
	var botOpts []bot.Option
	if cfg.RandomTieBreak {
		botOpts = append(botOpts, bot.WithRandomTies())
	}
	botOpts = append(botOpts, bot.WithLogger(logger.Component("BOT")))

	gameService := game.NewService(cache, cfg.MoveCacheTTL, botOpts...)
	sessionManager := game.NewSessionManager(botOpts...)

	// 3. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, time.Minute, cfg.MatchIdleTimeout)
	go cleanupWorker.Start(ctx)

	// 4. HTTP
	engineHandler := transportHttp.NewEngineHandler(gameService, cfg.EngineDepth)
	matchHandler := transportHttp.NewMatchHandler(sessionManager, bot.ParseDifficulty(cfg.BotDifficulty))
	router := transportHttp.NewRouter(engineHandler, matchHandler, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("component", "SERVER").Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Str("component", "SERVER").Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Str("component", "SERVER").Msg("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Str("component", "SERVER").Err(err).Msg("server forced to shutdown")
	}

	log.Info().Str("component", "SERVER").Msg("server exited gracefully")
}
