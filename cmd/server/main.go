package main

import (
	"log/slog"
	"os"

	"campbook/internal/config"
	"campbook/internal/logger"
	"campbook/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, relying on environment variables")
	}
	logger.SetupDefault(os.Stdout)

	cfg := config.New()

	srv, err := server.New(cfg)
	if err != nil {
		slog.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer srv.Close()

	if err := srv.Run(); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
