package main

// @title           Library Catalog
// @version         1.0
// @description     Authors, books and publishers of the library catalog.

// @contact.name   Sina Niyavarzi
// @contact.email  sinaniya@gmail.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-catalog/internal/config"
	"github.com/snnyvrz/library-catalog/internal/db"
	docs "github.com/snnyvrz/library-catalog/internal/docs"
	"github.com/snnyvrz/library-catalog/internal/handler"
	"github.com/snnyvrz/library-catalog/internal/middleware"
	"github.com/snnyvrz/library-catalog/internal/repository"
	"github.com/snnyvrz/library-catalog/internal/view"
	"github.com/snnyvrz/library-catalog/pkg/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const appVersion = "0.1.0"

func main() {
	startTime := time.Now()

	cfg := config.Load()
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	gin.SetMode(cfg.GinMode)

	database, err := db.ConnectWithRetry(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("could not connect to database")
	}

	if err := db.Migrate(database); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	e := gin.New()

	var renderer view.Renderer = view.JSON{}
	if cfg.ViewMode == "html" {
		html, err := view.NewHTML(e)
		if err != nil {
			log.Fatal().Err(err).Msg("could not parse templates")
		}
		renderer = html
	}

	e.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(renderer),
		metrics.Handler(),
		middleware.LastVisit(middleware.LastVisitConfig{
			MaxAge: cfg.LastVisitMaxAge,
			Secure: cfg.CookieSecure,
		}),
	)

	if err := e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	}); err != nil {
		log.Fatal().Err(err).Msg("invalid trusted proxies")
	}

	store := repository.NewStore(database)

	healthHandler := handler.NewHealthHandler(store, cfg.DBDriver, startTime, appVersion)
	healthHandler.RegisterRoutes(e)

	e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	docs.SwaggerInfo.BasePath = "/"
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	catalog := e.Group("")
	{
		handler.NewAuthorHandler(store, renderer).RegisterRoutes(catalog)
		handler.NewPublisherHandler(store, renderer).RegisterRoutes(catalog)
		handler.NewBookHandler(store, renderer).RegisterRoutes(catalog)
	}

	log.Info().
		Str("port", cfg.Port).
		Str("driver", cfg.DBDriver).
		Str("view", cfg.ViewMode).
		Msg("starting server")

	if err := e.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
