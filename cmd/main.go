package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fleetduel/fleetduel-backend/api"
	"github.com/fleetduel/fleetduel-backend/db"
	"github.com/fleetduel/fleetduel-backend/db/analytics"
)

func main() {
	if os.Getenv("STAGE") != api.StageProd {
		if err := godotenv.Load(".env"); err != nil {
			slog.Warn("no .env file found, using environment variables")
		}
	}
	setupLogger()

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = api.StageDev
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	opts := []api.Option{api.WithPort(port), api.WithStage(stage)}

	// Analytics counters are optional; the game server runs fine
	// without a database.
	if psqlUrl := os.Getenv("DATABASE_URL"); psqlUrl != "" {
		queries := analytics.NewPostgresQuerier(db.MustConnectToDb(psqlUrl))
		opts = append(opts, api.WithAnalytics(analytics.NewManager(queries, analytics.MustServerInet())))
	} else {
		slog.Warn("DATABASE_URL not set, analytics disabled")
	}

	server := api.NewServer(opts...)

	httpServer := &http.Server{
		Addr:    "0.0.0.0:" + server.Port(),
		Handler: server.Routes(),
	}

	go func() {
		slog.Info("listening", "port", server.Port(), "stage", stage)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func setupLogger() {
	level := slog.LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
