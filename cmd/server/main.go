package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/reborn-osrs/reborn-ranks/internal/auth"
	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
	"github.com/reborn-osrs/reborn-ranks/internal/config"
	"github.com/reborn-osrs/reborn-ranks/internal/database"
	"github.com/reborn-osrs/reborn-ranks/internal/handlers"
	"github.com/reborn-osrs/reborn-ranks/internal/logger"
	"github.com/reborn-osrs/reborn-ranks/internal/notifier"
	"github.com/reborn-osrs/reborn-ranks/internal/players"
	"github.com/reborn-osrs/reborn-ranks/internal/promotion"
	"github.com/reborn-osrs/reborn-ranks/internal/review"
	"github.com/reborn-osrs/reborn-ranks/internal/tasks"
	"github.com/reborn-osrs/reborn-ranks/internal/tracker"
)

func main() {
	cfg := config.LoadConfig()

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	cat, err := catalog.Default()
	if err != nil {
		zl.Fatal("Item catalog is invalid", zap.Error(err))
	}
	rankService, err := handlers.NewRankService(cat, promotion.DefaultPolicy())
	if err != nil {
		zl.Fatal("Rank tables are invalid", zap.Error(err))
	}

	db := database.Connect(cfg, zl)

	trackers := tracker.New(tracker.Config{
		WOMBaseURL:    cfg.WOMBaseURL,
		TempleBaseURL: cfg.TempleBaseURL,
		UserAgent:     cfg.TrackerUserAgent,
		Timeout:       cfg.TrackerTimeout,
		CacheSize:     cfg.TrackerCacheSize,
		CacheTTL:      cfg.TrackerCacheTTL,
		GroupID:       cfg.WOMGroupID,
	}, zl)

	var session *discordgo.Session
	if cfg.DiscordBotToken != "" {
		session, err = discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			zl.Error("Discord session not initialized", zap.Error(err))
			session = nil
		}
	} else {
		zl.Warn("DISCORD_BOT_TOKEN is not set, review requests are disabled")
	}
	discordNotifier := notifier.NewDiscordNotifier(session, cfg.DiscordStaffChannelID, cfg.DiscordGuildID, zl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := tasks.New(zl, tasks.Config{
		Workers: cfg.DecisionWorkers,
		Size:    cfg.DecisionQueueSize,
		Timeout: 30 * time.Second,
	})
	queue.Start(ctx)

	playerStore := players.NewStore(db)
	reviews := review.NewService(review.NewStore(db), discordNotifier, rankService.Policy, cfg.RoleID, zl)
	authHandler := auth.NewAuthHandler(cfg, db, zl)

	publicKey, err := cfg.PublicKey()
	if err != nil {
		zl.Warn("Discord interactions disabled", zap.Error(err))
	}

	corsOrigin := ""
	if cfg.EnableCORS {
		corsOrigin = cfg.FrontendURL
	}

	r := chi.NewRouter()
	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:         authHandler,
		Players:      handlers.NewPlayerHandler(playerStore, rankService, trackers, zl),
		Catalog:      handlers.NewCatalogHandler(rankService),
		Reviews:      handlers.NewReviewHandler(reviews, playerStore, rankService, trackers, authHandler, cfg, zl),
		Interactions: handlers.NewInteractionHandler(publicKey, reviews, queue, zl),
	}, corsOrigin)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("HTTP shutdown failed", zap.Error(err))
	}
	if err := queue.Shutdown(shutdownCtx); err != nil {
		zl.Error("Decision queue did not drain", zap.Error(err))
	}
}
