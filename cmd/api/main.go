package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/kingshuk-14/sathiAI/db"
	"github.com/kingshuk-14/sathiAI/internal/analysis"
	"github.com/kingshuk-14/sathiAI/internal/config"
	"github.com/kingshuk-14/sathiAI/internal/guard"
	"github.com/kingshuk-14/sathiAI/internal/handler"
	"github.com/kingshuk-14/sathiAI/internal/metrics"
	"github.com/kingshuk-14/sathiAI/internal/repository"
	"github.com/kingshuk-14/sathiAI/pkg/llm"
	"github.com/kingshuk-14/sathiAI/pkg/ocr"
)

func main() {

	configPath := os.Getenv("SATHI_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(cfg.Log.Logger(os.Stdout))

	var (
		recorder analysis.Recorder
		store    handler.AnalysisStore
		dbPing   handler.Pinger
	)

	if cfg.Database.URL != "" {
		err = db.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = db.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatalf("error creating schema: %v", err)
		}

		analysisRepository := repository.NewAnalysisRepository(db.DB)
		recorder = analysisRepository
		store = analysisRepository
		dbPing = db.Ping
	} else {
		slog.Warn("DATABASE_URL not set, analysis log disabled")
	}

	var (
		sessionGuard guard.Guard
		redisPing    handler.Pinger
	)

	if cfg.Redis.URL != "" {
		err = db.ConnectRedis(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()

		sessionGuard = guard.NewRedisGuard(db.Redis, db.InFlightKeyPrefix, cfg.Guard.TTL)
		redisPing = db.PingRedis
	} else {
		slog.Info("REDIS_URL not set, using in-process session guard")
		sessionGuard = guard.NewMemoryGuard(cfg.Guard.TTL)
	}

	var upstream llm.Upstream
	up, err := llm.NewUpstream(cfg.Relay.Upstream())
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		slog.Warn("LLM_API_KEY not set, relay will answer with an error")
	case err != nil:
		log.Fatalf("error creating upstream client: %v", err)
	default:
		upstream = metrics.InstrumentUpstream(up)
		slog.Info("relay upstream configured", "provider", up.Provider(), "model", cfg.Relay.Model)
	}

	var extractor ocr.Extractor
	if cfg.OCR.URL != "" {
		extractor = ocr.NewTesseractClient(cfg.OCR.URL, cfg.OCR.LanguageList()...)
	} else {
		slog.Warn("OCR_URL not set, image uploads will be rejected")
	}

	modelName := cfg.Relay.Model
	if modelName == "" && upstream != nil {
		modelName = upstream.Provider()
	}

	service := analysis.NewService(analysis.Deps{
		Completer: llm.UpstreamCompleter{Upstream: upstream},
		Extractor: extractor,
		Guard:     sessionGuard,
		Recorder:  recorder,
		ModelName: modelName,
	})

	r := handler.NewRouter(handler.Handlers{
		Relay:   handler.NewRelayHandler(upstream),
		Analyze: handler.NewAnalyzeHandler(service),
		Stats:   handler.NewStatsHandler(store),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": dbPing,
			"redis":    redisPing,
		}),
	}, cfg.Server.Origins())

	err = r.Run(":" + cfg.Server.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
