package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"order-downloader/internal/api"
	"order-downloader/internal/client"
	"order-downloader/internal/config"
	"order-downloader/internal/repository"
	"order-downloader/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	pcxClient := client.New(cfg)
	syncService := service.NewSyncService(pcxClient, cfg.DBPath)

	if err := syncService.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Sync failed")
	}

	if cfg.HTTPAddr == "" {
		return
	}

	store, err := repository.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msgf("Failed to open database %s", cfg.DBPath)
	}
	defer store.Close()

	browseHandler := api.NewBrowseHandler(store)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/orders", browseHandler.ListOrders)
	e.GET("/orders/:id", browseHandler.GetOrder)
	e.GET("/products", browseHandler.ListProducts)
	e.GET("/products/:code", browseHandler.GetProduct)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "order-downloader",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
