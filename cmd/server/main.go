package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"youthwell/internal/app"
	"youthwell/internal/config"
	"youthwell/internal/ratelimit"
	"youthwell/internal/server"
	"youthwell/internal/util"
	"youthwell/pkg/ai"
	"youthwell/pkg/storage"
)

func main() {
	configPath := flag.String("config", config.ConfigPath, "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	util.InitLogger(cfg.LogLevel)

	var blobs storage.BlobStore
	if cfg.MinioEndpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		blobs, err = storage.NewObjectStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		cancel()
		if err != nil {
			slog.Error("init object storage", "error", err)
			os.Exit(1)
		}
		slog.Info("media storage: minio", "endpoint", cfg.MinioEndpoint, "bucket", cfg.MinioBucket)
	} else {
		blobs, err = storage.NewFileStore(cfg.UploadDir)
		if err != nil {
			slog.Error("init file storage", "error", err)
			os.Exit(1)
		}
		slog.Info("media storage: local disk", "dir", cfg.UploadDir)
	}

	var responder ai.ResponseGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			slog.Error("init gemini client", "error", err)
			os.Exit(1)
		}
		responder = ai.NewGeminiResponder(client, cfg.GeminiModel)
		slog.Info("chat responder: gemini", "model", cfg.GeminiModel)
	} else {
		responder = ai.NewLocalResponder()
		slog.Info("chat responder: local keyword fallback")
	}

	application, err := app.New(app.Config{
		DatabaseURL:      cfg.DatabaseURL,
		JWTSecret:        cfg.JWTSecret,
		MaxUploadBytes:   cfg.MaxUploadBytes,
		AllowedMimeTypes: cfg.AllowedMimeTypes,
		Blobs:            blobs,
		Responder:        responder,
	})
	if err != nil {
		slog.Error("init application", "error", err)
		os.Exit(1)
	}

	var limiter, authLimiter *ratelimit.FixedWindowLimiter
	if cfg.RedisAddr != "" {
		window := time.Duration(cfg.RateLimitWindowSecs) * time.Second
		limiter, err = ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "youthwell:ratelimit:api", cfg.RateLimitMax, window)
		if err != nil {
			slog.Error("init rate limiter", "error", err)
			os.Exit(1)
		}
		authLimiter, err = ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "youthwell:ratelimit:auth", 10, window)
		if err != nil {
			slog.Error("init auth rate limiter", "error", err)
			os.Exit(1)
		}
		slog.Info("rate limiting enabled", "redis", cfg.RedisAddr)
	}

	trusted, err := util.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		slog.Error("parse trusted proxies", "error", err)
		os.Exit(1)
	}

	srv := server.New(server.Config{
		App:            application,
		Limiter:        limiter,
		AuthLimiter:    authLimiter,
		TrustedProxies: trusted,
		Development:    cfg.Development(),
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
