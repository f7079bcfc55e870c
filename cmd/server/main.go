// Command server is the entry point for the bloglist API.
//
// Configuration comes from the environment:
//
//	PORT        listen port (default 3003)
//	DB_PATH     SQLite database file (default data/bloglist.db)
//	JWT_SECRET  token signing secret, required, at least 16 characters
//	TOKEN_TTL   token validity window, e.g. "30m" (default 1h)
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jsundman/bloglist/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := 3003
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/bloglist.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET not set (generate one with: openssl rand -hex 32)")
		os.Exit(1)
	}

	var tokenTTL time.Duration
	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		var err error
		tokenTTL, err = time.ParseDuration(ttlStr)
		if err != nil {
			logger.Error("invalid TOKEN_TTL value", slog.String("value", ttlStr))
			os.Exit(1)
		}
	}

	cfg := server.Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
