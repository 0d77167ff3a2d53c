package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"leadreach/outreach-assistant/internal/config"
	"leadreach/outreach-assistant/internal/handlers"
	"leadreach/outreach-assistant/internal/linkedin"
	"leadreach/outreach-assistant/internal/logger"
	"leadreach/outreach-assistant/internal/repositories"
	"leadreach/outreach-assistant/internal/server"
	"leadreach/outreach-assistant/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()
	if !cfg.EnvFileLoaded {
		log.Info("no .env file found, using environment and default values")
	}
	log.Info("config loaded", zap.String("env", cfg.Server.Env), zap.String("search_mode", cfg.Server.SearchMode))

	ctx := context.Background()

	// Initialize database
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	// Initialize Redis
	rdb, err := config.InitRedis(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()
	log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))

	// Repositories
	runRepo := repositories.NewSearchRunRepository(db)
	outreachRepo := repositories.NewOutreachRepository(db)

	// LinkedIn
	factory := linkedin.NewClientFactory(linkedin.Config{
		Username:           cfg.LinkedIn.Username,
		Password:           cfg.LinkedIn.Password,
		BaseURL:            cfg.LinkedIn.BaseURL,
		BreakerMaxFailures: cfg.LinkedIn.BreakerMaxFailures,
		BreakerTimeout:     cfg.LinkedIn.BreakerTimeout,
	})
	provider := newLinkedInProvider(ctx, cfg, factory, log)

	// Initialize Gemini AI
	generator, err := services.NewGeminiService(ctx, services.GeminiConfig{
		APIKey:         cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		BaseURL:        cfg.Gemini.BaseURL,
		ThinkingBudget: cfg.Gemini.ThinkingBudget,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize gemini", zap.Error(err))
	}
	log.Info("gemini initialized", zap.String("model", cfg.Gemini.Model))

	// Services
	search := services.NewLeadSearchService(provider, services.ProfileFor(cfg.Server.SearchMode), log)
	drafter := services.NewMessageDrafter(generator, services.NewPromptBuilder(cfg.Outreach.SenderName), cfg.Gemini.MaxOutputTokens)
	pipeline := services.NewSearchPipeline(search, drafter, runRepo, cfg.Server.SearchMode, log)
	dispatcher := services.NewOutreachDispatcher(provider, outreachRepo, cfg.LinkedIn.DispatchRPS, log)
	state := services.NewRedisStateStore(rdb, cfg.Redis.StateTTL, cfg.Redis.LockTTL)

	// Handlers
	sessions := handlers.NewSessions(cfg.Session.TTL)
	app := server.New(server.Handlers{
		Pages:    handlers.NewPageHandler(state, sessions, cfg.Server.SearchMode, log),
		Search:   handlers.NewSearchHandler(pipeline, state, sessions, cfg.Server.SearchMode, log),
		Outreach: handlers.NewOutreachHandler(dispatcher, state, outreachRepo, sessions, log),
		Runs:     handlers.NewSearchRunHandler(runRepo, log),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// newLinkedInProvider logs in once at startup in direct mode and once per
// request in session mode.
func newLinkedInProvider(ctx context.Context, cfg *config.Config, factory linkedin.Factory, log *zap.Logger) linkedin.Provider {
	if cfg.Server.SearchMode != config.SearchModeDirect {
		if !cfg.LinkedIn.HasCredentials() {
			log.Warn("linkedin credentials missing; every search and send will fail")
		}
		return linkedin.NewPerRequestProvider(factory)
	}

	provider := linkedin.NewSharedProvider(ctx, factory)
	if _, err := provider.Acquire(ctx); err != nil {
		log.Error("linkedin login failed; searches will report the client as unavailable", zap.Error(err))
	} else {
		log.Info("linkedin client initialized")
	}
	return provider
}
