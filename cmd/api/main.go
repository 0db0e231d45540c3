package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quotebot/internal/document"
	"quotebot/internal/email"
	"quotebot/internal/extractor"
	apphttp "quotebot/internal/http"
	"quotebot/internal/http/router"
	"quotebot/internal/webhook"
	"quotebot/internal/whatsapp"
	"quotebot/platform/config"
	"quotebot/platform/logger"
	"quotebot/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	// Missing credentials are reported loudly but do not halt startup; the
	// affected collaborator degrades to a logged failure at request time.
	for _, name := range cfg.MissingCritical() {
		log.Error("critical environment variable is not set", "name", name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Collaborators
	// ========================================================================

	val := validator.New()

	var model extractor.CompletionModel
	if cfg.GetGeminiAPIKey() != "" {
		gemini, err := extractor.NewGeminiModel(ctx, cfg.GetGeminiAPIKey(), cfg.GetGeminiModel())
		if err != nil {
			log.Error("failed to initialize gemini model", "error", err)
		} else {
			model = gemini
			log.Info("gemini model initialized", "model", cfg.GetGeminiModel())
		}
	}
	extractorService := extractor.NewService(model, val, log)

	var converter document.PDFConverter
	if cfg.IsGotenbergEnabled() {
		converter = document.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())
		log.Info("gotenberg PDF converter initialized", "url", cfg.GetGotenbergURL())
	} else {
		log.Warn("GOTENBERG_URL not configured; document rendering disabled")
	}

	renderer, err := document.NewRenderer(converter, cfg.GetQuoteOutputDir(), cfg.GetCompanyName(), cfg.GetSignatoryName(), log)
	if err != nil {
		log.Error("failed to initialize document renderer", "error", err)
		panic("failed to initialize document renderer: " + err.Error())
	}

	mailSender := email.NewSMTPSender(cfg, cfg)
	whatsappClient := whatsapp.NewClient(cfg, log)
	if whatsappClient == nil {
		log.Warn("META_ACCESS_TOKEN or PHONE_NUMBER_ID not configured; replies disabled")
	}

	// ========================================================================
	// Modules
	// ========================================================================

	webhookModule := webhook.NewModule(extractorService, renderer, mailSender, whatsappClient, cfg.GetVerifyToken(), log)

	engine := router.New(cfg.Env, log, []apphttp.Module{webhookModule})

	srv := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()
	log.Info("server listening", "addr", cfg.GetHTTPAddr())

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}
