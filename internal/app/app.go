package app

import (
	"context"
	"fmt"
	"os"

	temporalsdkclient "go.temporal.io/sdk/client"

	anthropicclient "github.com/getcarekorea/content-engine/internal/clients/anthropic"
	redisclient "github.com/getcarekorea/content-engine/internal/clients/redis"
	"github.com/getcarekorea/content-engine/internal/data/db"
	"github.com/getcarekorea/content-engine/internal/data/repos"
	"github.com/getcarekorea/content-engine/internal/generation"
	apphttp "github.com/getcarekorea/content-engine/internal/http"
	httpH "github.com/getcarekorea/content-engine/internal/http/handlers"
	httpMW "github.com/getcarekorea/content-engine/internal/http/middleware"
	"github.com/getcarekorea/content-engine/internal/learning"
	"github.com/getcarekorea/content-engine/internal/observability"
	"github.com/getcarekorea/content-engine/internal/performance"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
	"github.com/getcarekorea/content-engine/internal/platform/searchconsole"
	"github.com/getcarekorea/content-engine/internal/prompt"
	"github.com/getcarekorea/content-engine/internal/rag"
	"github.com/getcarekorea/content-engine/internal/temporalx"
	"github.com/getcarekorea/content-engine/internal/temporalx/collect"
)

// App wires the content engine: repos over Postgres, the collection and
// learning services, and the admin HTTP surface.
type App struct {
	Log    *logger.Logger
	Cfg    Config
	Server *apphttp.Server

	Collector  *performance.Collector
	Extractor  *learning.Extractor
	Activities *collect.Activities
	Temporal   temporalsdkclient.Client

	cache        redisclient.Cache
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "content-engine",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	gdb := pg.DB()

	// Repos
	itemRepo := repos.NewContentItemRepo(gdb, log)
	perfRepo := repos.NewPerformanceRecordRepo(gdb, log)
	learnRepo := repos.NewLearningDataRepo(gdb, log)
	auditRepo := repos.NewFeedbackEventRepo(gdb, log)
	hospitalRepo := repos.NewHospitalRepo(gdb, log)
	procedureRepo := repos.NewProcedureRepo(gdb, log)

	// Optional dependencies degrade instead of blocking boot.
	cache, err := redisclient.NewCache(log)
	if err != nil {
		log.Warn("Redis unavailable; learning-context caching disabled", "error", err)
		cache = nil
	}
	source, err := searchconsole.NewClient(ctx, log)
	if err != nil {
		log.Warn("Search Console unavailable; metric collection disabled", "error", err)
		source = nil
	}
	llm, err := anthropicclient.NewClient(log)
	if err != nil {
		log.Warn("Anthropic unavailable; article generation disabled", "error", err)
		llm = nil
	}

	// Services
	collector := performance.NewCollector(log, source, itemRepo, perfRepo, cfg.CollectorConfig())
	reporter := performance.NewReporter(log, perfRepo, learnRepo)
	extractor := learning.NewExtractor(log, itemRepo, perfRepo, learnRepo, cache)
	processor := learning.NewProcessor(log, itemRepo, learnRepo, auditRepo)
	facts := rag.NewProvider(log, hospitalRepo, procedureRepo)
	bridge := prompt.NewBridge(log, extractor, facts)
	generator := generation.NewService(log, bridge, llm, itemRepo)

	// Middleware and handlers
	adminAuth, err := httpMW.NewAdminAuth(log)
	if err != nil {
		return nil, fmt.Errorf("init admin auth: %w", err)
	}
	server := apphttp.NewServer(apphttp.RouterConfig{
		Log:                log,
		AdminAuth:          adminAuth,
		HealthHandler:      httpH.NewHealthHandler(),
		FeedbackHandler:    httpH.NewFeedbackHandler(log, processor),
		PerformanceHandler: httpH.NewPerformanceHandler(log, collector, reporter),
		GenerateHandler:    httpH.NewGenerateHandler(log, generator),
	})

	tc, err := temporalx.NewClient(log)
	if err != nil {
		log.Warn("Temporal unavailable; scheduled collection disabled", "error", err)
		tc = nil
	}

	return &App{
		Log:       log,
		Cfg:       cfg,
		Server:    server,
		Collector: collector,
		Extractor: extractor,
		Activities: &collect.Activities{
			Log:       log,
			Collector: collector,
			Extractor: extractor,
			Items:     itemRepo,
		},
		Temporal:     tc,
		cache:        cache,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTPAddr)
	return a.Server.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close(ctx context.Context) {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.Temporal != nil {
		a.Temporal.Close()
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(ctx)
	}
	a.Log.Sync()
}
