package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srishhttii05/resolvex/internal/api"
	"github.com/srishhttii05/resolvex/internal/classifier"
	"github.com/srishhttii05/resolvex/internal/config"
	"github.com/srishhttii05/resolvex/internal/database"
	"github.com/srishhttii05/resolvex/internal/logging"
	"github.com/srishhttii05/resolvex/internal/moderation"
	"github.com/srishhttii05/resolvex/internal/openaiclient"
	"github.com/srishhttii05/resolvex/internal/taxonomy"
	"github.com/srishhttii05/resolvex/internal/telemetry"
	"github.com/srishhttii05/resolvex/internal/waterquality"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load(config.Path("config.yml"))
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logging.Sync(logger)

	logger.Info("starting decision engine",
		"service", cfg.Service.Name,
		"version", cfg.Service.Version,
		"port", cfg.Service.Port,
	)

	provider := telemetry.NewProvider()

	// External classifier capabilities share one client and rate limiter.
	aiClient := openaiclient.New(cfg.OpenAI, provider, logger)

	// One normalizer per report domain.
	normalizers := map[string]*classifier.Normalizer{}
	for _, tax := range []*taxonomy.Taxonomy{taxonomy.Civic(), taxonomy.Waste()} {
		if err := tax.Validate(); err != nil {
			logger.Error("invalid taxonomy", "taxonomy", tax.Name, "error", err)
			os.Exit(1)
		}
		normalizers[tax.Name] = classifier.NewNormalizer(tax, logger)
	}

	pipeline := moderation.NewPipeline(moderation.Checks{
		Safety:    aiClient,
		Relevance: aiClient,
		Images:    aiClient,
	}, cfg.Moderation.MaxImages, logger)

	// Water model load failure degrades that operation instead of
	// taking down the whole service.
	var waterEngine api.WaterAssessor
	model, err := waterquality.LoadModel(cfg.Water.ModelPath)
	if err != nil {
		logger.Error("water model unavailable, water route disabled",
			"path", cfg.Water.ModelPath,
			"error", err,
		)
	} else {
		logger.Info("water model loaded", "version", model.Version())
		waterEngine = waterquality.NewEngine(model, logger)
	}

	// Decision history is best-effort.
	var history *database.DecisionHistoryRepository
	if cfg.Database.Enabled {
		db, dbErr := database.NewPostgresConnection(cfg.Database)
		if dbErr != nil {
			logger.Warn("decision history unavailable", "error", dbErr)
		} else {
			defer db.Close()
			history = database.NewDecisionHistoryRepository(db)
			logger.Info("decision history enabled", "database", cfg.Database.Database)
		}
	}

	handler := api.NewHandler(api.Deps{
		Normalizers: normalizers,
		Extractor:   aiClient,
		Moderator:   pipeline,
		Water:       waterEngine,
		Chatter:     aiClient,
		History:     history,
		Recorder:    provider,
		ServiceName: cfg.Service.Name,
		Version:     cfg.Service.Version,
		Logger:      logger,
	})

	server := api.NewServer(handler, cfg.Service, provider.Handler(), logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", "error", err)
		os.Exit(1)
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}
