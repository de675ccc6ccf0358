package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/bloglane/blog-api/internal/api"
	"github.com/bloglane/blog-api/internal/api/handler"
	"github.com/bloglane/blog-api/internal/core/service"
	"github.com/bloglane/blog-api/internal/infrastructure/auth"
	"github.com/bloglane/blog-api/internal/infrastructure/db/mongo"
	"github.com/bloglane/blog-api/internal/infrastructure/db/redis"
	"github.com/bloglane/blog-api/internal/infrastructure/queue"
	"github.com/bloglane/blog-api/internal/pkg/config"
	"github.com/bloglane/blog-api/pkg/logger"
)

// @title Blog API
// @version 1.0
// @description Accounts and posts for the blog backend.
// @BasePath /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth-token
func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "blog-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo init")
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis init")
	}

	tokens, err := auth.NewJWTIssuer(cfg.Auth.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer init")
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	posts := mongo.NewPostRepository(db)
	accountEvents := mongo.NewAccountEventRepository(db)
	statusCache := redis.NewStatusCache(rdb, cfg.Redis.StatusTTL)

	// --- Audit trail ---
	auditLog := logger.Component(log, "audit")
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, service.NewAuditService(accountEvents, auditLog), auditLog)
	dispatcher.Start(context.Background())

	// --- Services ---
	authService := service.NewAuthService(users, hasher, tokens, cfg.Auth.TokenTTL, logger.Component(log, "auth"),
		service.WithStatusCache(statusCache),
		service.WithEventPublisher(dispatcher),
	)
	postService := service.NewPostService(posts, users, statusCache, logger.Component(log, "posts"))

	e := api.NewRouter(api.Deps{
		AuthService: authService,
		PostService: postService,
		Tokens:      tokens,
		Readiness:   handler.NewHealthDependenciesHandler(db, rdb),
		Log:         logger.Component(log, "http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("audit queue not fully drained")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	log.Info().Msg("bye")
}
