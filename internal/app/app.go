package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"

	"github.com/poofware/property-records-service/internal/config"
	"github.com/poofware/property-records-service/internal/metrics"
	"github.com/poofware/property-records-service/internal/repositories"
	"github.com/poofware/property-records-service/internal/services"
	"github.com/poofware/property-records-service/internal/utils"
)

// App struct holds references to config, storage & services.
type App struct {
	Config        *config.Config
	Backend       repositories.Backend
	Registry      *prometheus.Registry
	Metrics       *metrics.Metrics
	RecordService services.RecordService

	scheduler *cron.Cron
}

// NewApp opens the configured storage backend and builds the services on it.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	utils.Logger.Infof("Initializing %s App", cfg.AppName)

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewAppWithBackend(cfg, backend), nil
}

// NewAppWithBackend wires an App around an already-open backend.
func NewAppWithBackend(cfg *config.Config, backend repositories.Backend) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(reg)

	return &App{
		Config:        cfg,
		Backend:       backend,
		Registry:      reg,
		Metrics:       m,
		RecordService: services.NewRecordService(backend, m, nil),
	}
}

// OpenBackend returns the storage substrate named by cfg.StorageBackend.
func OpenBackend(ctx context.Context, cfg *config.Config) (repositories.Backend, error) {
	switch cfg.StorageBackend {
	case repositories.BackendMemory:
		utils.Logger.Warn("Using in-memory storage; records are lost on restart.")
		return repositories.NewMemoryBackend(), nil
	case repositories.BackendSQLite:
		b, err := repositories.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		utils.Logger.Infof("Using sqlite storage at %s", cfg.SQLitePath)
		return b, nil
	case repositories.BackendPostgres:
		return repositories.ConnectPostgres(ctx, cfg.DBUrl)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func (a *App) Close() {
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
	}
	if a.Backend != nil {
		if err := a.Backend.Close(); err != nil {
			utils.Logger.WithError(err).Error("Error closing storage backend")
		}
	}
	utils.Logger.Infof("%s app shutting down.", a.Config.AppName)
}
