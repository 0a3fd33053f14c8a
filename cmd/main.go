package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	appmiddleware "github.com/loganlanou/blindquote/internal/middleware"
	"github.com/loganlanou/blindquote/service"
	"github.com/loganlanou/blindquote/storage"
)

func main() {
	// slog is configured in slog.go via init()

	config, err := service.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// The database only backs the sqlite template source.
	var db *storage.Storage
	if config.Templates.Source == "sqlite" {
		db, err = storage.New(config.DBPath)
		if err != nil {
			slog.Error("failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(appmiddleware.CORS(config.AllowedOrigins))

	e.Use(appmiddleware.RequestLogger())
	e.Use(appmiddleware.SecurityHeaders())

	svc, err := service.New(config, db)
	if err != nil {
		slog.Error("failed to initialize service", "error", err)
		os.Exit(1)
	}
	svc.RegisterRoutes(e)
	svc.Start(context.Background())

	addr := fmt.Sprintf(":%s", config.Port)

	slog.Info("quote generator starting",
		"url", fmt.Sprintf("http://localhost:%s", config.Port),
		"port", config.Port,
		"environment", config.Environment,
		"template_source", config.Templates.Source,
	)

	if err := e.Start(addr); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
