package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/studiobella/spa-admin-api/internal/cache"
	"github.com/studiobella/spa-admin-api/internal/config"
	dbpkg "github.com/studiobella/spa-admin-api/internal/db"
	"github.com/studiobella/spa-admin-api/internal/logging"
	"github.com/studiobella/spa-admin-api/internal/middleware"
	"github.com/studiobella/spa-admin-api/internal/routes"
)

const statsCacheTTL = 60 * time.Second

func main() {

	cfg := config.Load()

	log := logging.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	// Redis is optional: without REDIS_URL the cache is a nil no-op and
	// every stats request recomputes.
	var statsCache *cache.Cache
	if cfg.RedisURL != "" {
		c, err := cache.New(cfg.RedisURL, statsCacheTTL)
		if err != nil {
			log.Warn("redis unavailable, running without stats cache", zap.Error(err))
		} else {
			statsCache = c
		}
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, statsCache, log)

	log.Info("server starting", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
