package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ballotwise/ballotwise-backend/internal/db"
	apphttp "github.com/ballotwise/ballotwise-backend/internal/http"
	"github.com/ballotwise/ballotwise-backend/internal/observability"
	"github.com/ballotwise/ballotwise-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *apphttp.Server
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services

	otelShutdown  func(context.Context) error
	metricsCancel context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "ballotwise-backend",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	metrics := observability.InitMetrics(log)
	metricsCtx, metricsCancel := context.WithCancel(context.Background())
	metrics.StartServer(metricsCtx, log, cfg.MetricsAddr)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		metricsCancel()
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		metricsCancel()
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)
	clientset := wireClients(log)
	serviceset := wireServices(theDB, log, cfg, reposet, clientset)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := wireRouter(log, cfg, handlerset, middleware, metrics)

	return &App{
		Log:           log,
		DB:            theDB,
		Server:        server,
		Router:        server.Engine,
		Cfg:           cfg,
		Repos:         reposet,
		Clients:       clientset,
		Services:      serviceset,
		otelShutdown:  otelShutdown,
		metricsCancel: metricsCancel,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting HTTP server", "addr", a.Cfg.HTTPAddr)
	return a.Server.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Clients.Quota != nil {
		if err := a.Clients.Quota.Close(); err != nil {
			a.Log.Warn("failed to close redis quota counter", "error", err)
		}
	}
	if a.metricsCancel != nil {
		a.metricsCancel()
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
