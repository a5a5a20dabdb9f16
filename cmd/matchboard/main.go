package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/matchboard/matchboard/api"
	"github.com/matchboard/matchboard/bookmark"
	"github.com/matchboard/matchboard/config"
	"github.com/matchboard/matchboard/dashboard"
	"github.com/matchboard/matchboard/logger"
	"github.com/matchboard/matchboard/store"
	"github.com/matchboard/matchboard/ttlcache"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	logger.Log.Info("Starting matchboard",
		zap.Int("port", cfg.Port),
		zap.String("db_type", cfg.DBType),
		zap.String("dsn", cfg.DSN),
	)

	st, err := store.OpenWith(cfg.DBType, cfg.DSN, store.OpenOptions{
		SkipAutoMigrate: cfg.SkipAutoMigrate,
	})
	if err != nil {
		logger.Log.Fatal("failed to open store", zap.Error(err))
	}

	cache := ttlcache.New(st)
	svc := dashboard.New(st, cache, dashboard.Options{
		BaseURL:    cfg.BaseURL,
		SessionTTL: cfg.SessionTTL(),
		StatsTTL:   cfg.StatsTTL(),
		Pacer:      dashboard.FixedDelayPacer{Delay: cfg.FetchDelay()},
	})
	if svc.LoggedIn() {
		logger.Log.Info("cached session found, starting authenticated")
	} else {
		logger.Log.Info("no cached session, starting logged out")
	}

	h := api.NewHandler(svc, bookmark.NewUserBookmarks(st), bookmark.NewQuestionStars(st))

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	g := e.Group("/api/v1")
	h.RegisterRoutes(g)

	logger.Log.Info("Server is starting", zap.Int("port", cfg.Port))
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Log.Fatal("server failed to start", zap.Error(err))
	}
}
