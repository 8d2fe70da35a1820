package main

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Simplici0/bizness/internal/assistant"
	"github.com/Simplici0/bizness/internal/auth"
	"github.com/Simplici0/bizness/internal/config"
	"github.com/Simplici0/bizness/internal/db"
	"github.com/Simplici0/bizness/internal/logging"
	"github.com/Simplici0/bizness/internal/migrations"
	"github.com/Simplici0/bizness/internal/ocr"
	"github.com/Simplici0/bizness/internal/seed"
	"github.com/Simplici0/bizness/internal/store"
)

const (
	mockAIDelay  = 1500 * time.Millisecond
	mockOCRDelay = 2 * time.Second
)

var errNoSessionSecret = errors.New("SESSION_SECRET must be set outside development")

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.IsDev())
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	cfg, err := resolveSecrets(cfg, logger)
	if err != nil {
		return err
	}

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.IsDev() {
		applied, err := migrations.Up(ctx, database)
		if err != nil {
			return err
		}
		logger.Info().Int("applied", applied).Msg("database migrations applied")

		stats, err := seed.Run(ctx, database, seed.Config{
			AdminEmail:    cfg.AdminEmail,
			AdminPassword: cfg.AdminPassword,
			DemoPassword:  cfg.DemoPassword,
		})
		if err != nil {
			return err
		}
		logger.Info().Int("inserts", stats.Inserts).Int("updates", stats.Updates).Msg("seed completed")
	}

	st, err := store.New(database)
	if err != nil {
		return err
	}

	authSvc, err := auth.NewService(database, cfg.SessionSecret, cfg.JWTSecret)
	if err != nil {
		return err
	}
	scanner := ocr.NewMockScanner(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), mockOCRDelay)

	srv := &server{
		auth:    authSvc,
		store:   st,
		ocr:     ocr.NewService(scanner, st),
		invoker: newInvoker(cfg, logger),
		origins: cfg.CORSOrigins,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info().Msg("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

// resolveSecrets refuses to start without a session secret unless the app
// runs in development, where a random per-process secret is generated.
// Sessions and tokens then do not survive a restart.
func resolveSecrets(cfg config.Config, logger zerolog.Logger) (config.Config, error) {
	if cfg.SessionSecret != "" {
		return cfg, nil
	}
	if !cfg.IsDev() {
		return cfg, errNoSessionSecret
	}

	buf := make([]byte, 32)
	if _, err := cryptorand.Read(buf); err != nil {
		return cfg, fmt.Errorf("generate session secret: %w", err)
	}
	cfg.SessionSecret = hex.EncodeToString(buf)
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.SessionSecret
	}
	logger.Warn().Msg("SESSION_SECRET is not set; using a random secret for this process")
	return cfg, nil
}

// newInvoker picks the assistant backend. A nil Invoker makes the AI proxy
// answer 503.
func newInvoker(cfg config.Config, logger zerolog.Logger) assistant.Invoker {
	switch {
	case cfg.AIAPIURL != "":
		logger.Info().Str("url", cfg.AIAPIURL).Msg("AI assistant backend configured")
		return assistant.NewHTTPInvoker(cfg.AIAPIURL, cfg.AITimeout)
	case cfg.AIMock:
		logger.Info().Msg("AI assistant runs in mock mode")
		return assistant.MockInvoker{Delay: mockAIDelay}
	default:
		logger.Warn().Msg("AI_API_URL is not set; AI features are disabled")
		return nil
	}
}
