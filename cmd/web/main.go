package main

import (
	"context"
	"log"
	"net/http"

	"cryptocortex/auth"
	"cryptocortex/config"
	"cryptocortex/handlers"
	"cryptocortex/logger"
	"cryptocortex/mailer"
	"cryptocortex/market"
	"cryptocortex/session"
	"cryptocortex/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	db, err := store.Open(context.Background(), cfg.DatabaseDSN, cfg.StoreTimeout)
	if err != nil {
		logger.Log.Fatalw("connecting to database", "error", err)
	}
	defer db.Close()

	redisClient, err := session.OpenRedis(cfg.RedisDSN)
	if err != nil {
		logger.Log.Fatalw("connecting to Redis", "error", err)
	}
	defer redisClient.Close()

	sessions := session.NewManager(redisClient, cfg.SessionTTL)
	authService := auth.NewService(db, sessions)
	marketClient := market.NewClient(cfg.MarketBaseURL)
	newsClient := market.NewNewsClient(cfg.NewsBaseURL)
	supportMailer := mailer.New(cfg.SendGridAPIKey, cfg.SupportInbox)

	h := handlers.New(authService, sessions, db, marketClient, newsClient, supportMailer, cfg.SessionTTL)

	router := h.Router()
	fileServer := http.FileServer(http.Dir("./ui/static/"))
	router.Handle("/static/*", http.StripPrefix("/static", fileServer))

	logger.Log.Infow("starting server", "addr", cfg.RunAddr)
	if err := http.ListenAndServe(cfg.RunAddr, logger.RequestLogging(router)); err != nil {
		logger.Log.Fatalw("server stopped", "error", err)
	}
}
