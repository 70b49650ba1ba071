// Command api runs the classifieds board HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bacheca/board-api/internal/api"
	"github.com/bacheca/board-api/internal/core/service"
	"github.com/bacheca/board-api/internal/infrastructure/config"
	"github.com/bacheca/board-api/internal/infrastructure/db/mongo"
	"github.com/bacheca/board-api/internal/infrastructure/db/redis"
	"github.com/bacheca/board-api/internal/infrastructure/mail"
	"github.com/bacheca/board-api/internal/infrastructure/storage"
	"github.com/bacheca/board-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- Storage backends ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	objectStore, err := storage.NewMinioStore(ctx, storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object storage connect failed")
	}

	// --- Repositories and services ---
	userRepo := mongo.NewUserRepository(db)
	categoryRepo := mongo.NewCategoryRepository(db)
	listingRepo := mongo.NewListingRepository(db)
	favoriteRepo := mongo.NewFavoriteRepository(db)

	sessions := service.NewSessionManager(redis.NewSessionStore(rdb), log)
	sessions.SetTouchDebounce(cfg.Session.TouchDebounce)
	defer sessions.Close()

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 0, log)
	listingService := service.NewListingService(listingRepo, categoryRepo, log)
	favoriteService := service.NewFavoriteService(favoriteRepo, listingRepo, log)
	newsletterService := service.NewNewsletterService(
		mail.NewSMTPSender(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}),
		cfg.Newsletter.SendDelay,
		log,
	)
	uploadService := service.NewUploadService(objectStore, log)

	if err := service.SeedDemoData(ctx, authService, listingService, log); err != nil {
		log.Fatal().Err(err).Msg("demo data seed failed")
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Mongo:        db,
		Redis:        rdb,
		JWTSecret:    cfg.JWTSecret,
		DashboardURL: cfg.Newsletter.DashboardURL,
		Log:          log,
		Auth:         authService,
		Sessions:     sessions,
		Listings:     listingService,
		Favorites:    favoriteService,
		Newsletter:   newsletterService,
		Uploads:      uploadService,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
