package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"blinkbot/internal/api"
	"blinkbot/internal/chatlog"
	"blinkbot/internal/config"
	"blinkbot/internal/logger"
	"blinkbot/internal/session"
)

func main() {
	// .env is optional; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Log); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	assistant, err := config.LoadAssistant("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load assistant config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var chatLog chatlog.Log = chatlog.NewMemoryLog()
	if cfg.Redis.URL != "" {
		redisLog, err := chatlog.NewRedisLog(ctx, cfg.Redis.URL, "default", cfg.Redis.TTL())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisLog.Close()
		chatLog = redisLog
		log.Info().Msg("using redis chat log")
	}

	manager, err := session.NewManager(ctx, session.Persona(cfg.StartPersona), session.ManagerOptions{
		Log:       chatLog,
		Assistant: assistant,
		Logger:    *log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start session")
	}

	server := api.NewServer(manager, *log)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // websocket connections stay open
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	stop()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
