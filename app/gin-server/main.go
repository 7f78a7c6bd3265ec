package main

import (
	"context"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/ventureai/backend/config"
	"github.com/ventureai/backend/internal/api/handlers"
	"github.com/ventureai/backend/internal/api/routes"
	"github.com/ventureai/backend/internal/cache"
	"github.com/ventureai/backend/internal/gateway"
	"github.com/ventureai/backend/internal/logger"
	"github.com/ventureai/backend/internal/questions"
	"github.com/ventureai/backend/internal/services"
	"github.com/ventureai/backend/internal/storage"
	"github.com/ventureai/backend/internal/store"
	"github.com/ventureai/backend/internal/workers"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cloud gateway: each sub-service initializes independently; the
	// process serves with whatever came up.
	gw := gateway.New(ctx, cfg, log)
	defer gw.Close()

	sessions, err := store.NewSessionStore(cfg.SessionsDir, log)
	if err != nil {
		log.WithError(err).Fatal("session store init failed")
	}

	bank := questions.Load(cfg.QuestionsCSV, log)

	var c cache.Cache = cache.Noop{}
	if cfg.EnableCaching && cfg.RedisAddr != "" {
		if rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr); err != nil {
			log.WithError(err).Warn("redis unreachable, caching disabled")
		} else {
			c = rc
			log.Info("redis cache connected")
		}
	}

	var uploader storage.Uploader
	if cfg.AudioStorage == "gcs" && cfg.GCSBucket != "" {
		g, err := storage.NewGCSUploader(ctx, cfg.GCSBucket)
		if err != nil {
			log.WithError(err).Warn("gcs init failed, storing audio locally")
			uploader = storage.NewLocalUploader(cfg.SessionsDir)
		} else {
			uploader = g
			defer g.Close()
		}
	} else {
		uploader = storage.NewLocalUploader(cfg.SessionsDir)
	}

	cvSvc := services.NewCVService(gw, filepath.Join(cfg.SessionsDir, "_uploads"), log)
	interviewSvc := services.NewInterviewService(sessions, gw, bank, uploader, c, log)
	speechSvc := services.NewSpeechService(gw, sessions, uploader, c, cfg.CacheTTL, log)

	janitor := &workers.RetentionJanitor{
		Store:  sessions,
		TTL:    cfg.SessionTTL,
		Logger: log,
	}
	janitor.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Session:     handlers.NewSessionHandler(sessions, cvSvc, log),
		Interview:   handlers.NewInterviewHandler(interviewSvc),
		Speech:      handlers.NewSpeechHandler(speechSvc, func() any { return gw.Status() }),
		CORSOrigins: cfg.CORSOrigins,
		Log:         log,
	})

	log.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
