package trainjatri

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/trainjatri/config"
	"github.com/theoremus-urban-solutions/trainjatri/crowd"
	"github.com/theoremus-urban-solutions/trainjatri/delay"
	"github.com/theoremus-urban-solutions/trainjatri/events"
	"github.com/theoremus-urban-solutions/trainjatri/metrics"
	"github.com/theoremus-urban-solutions/trainjatri/position"
	"github.com/theoremus-urban-solutions/trainjatri/schedule"
	"github.com/theoremus-urban-solutions/trainjatri/timeline"
)

// App wires every component behind the HTTP boundary.
type App struct {
	Cfg      config.AppConfig
	Schedule *schedule.Store
	Delays   *delay.Model
	Position *position.Estimator
	Timeline *timeline.Assembler
	Crowd    *crowd.Store
	Metrics  *metrics.Collector
	Events   *events.Publisher

	cache *responseCache
}

// NewApp builds the application from its configuration.
func NewApp(ctx context.Context, cfg config.AppConfig) (*App, error) {
	collector := metrics.NewCollector()

	store := schedule.NewStore(cfg.Data.Dir, time.Duration(cfg.Data.CacheDurationSec)*time.Second)
	model := delay.NewModel(nil, delay.Options{
		BaseProbability: cfg.Delay.BaseProbability,
		MaxDelayMinutes: cfg.Delay.MaxMinutes,
	})
	model.OnSimulate = collector.DelaySimulations.Inc

	estimator := position.NewEstimator(store, nil)
	assembler := timeline.NewAssembler(store, model, estimator)

	persist, err := newCrowdPersistence(cfg.Crowd)
	if err != nil {
		return nil, err
	}
	crowdStore, err := crowd.NewStore(persist, nil, crowd.Options{
		ActiveWindow: time.Duration(cfg.Crowd.ValidationTimeoutSec) * time.Second,
		MaxPerTrain:  cfg.Crowd.MaxPerTrain,
	})
	if err != nil {
		return nil, err
	}

	publisher, err := events.Connect(cfg.Events.NATSURL)
	if err != nil {
		log.Printf("events disabled: %v", err)
	}

	return &App{
		Cfg:      cfg,
		Schedule: store,
		Delays:   model,
		Position: estimator,
		Timeline: assembler,
		Crowd:    crowdStore,
		Metrics:  collector,
		Events:   publisher,
		cache:    newResponseCache(cacheSize, cacheTTL),
	}, nil
}

func newCrowdPersistence(cfg config.CrowdConfig) (crowd.Persistence, error) {
	switch cfg.Backend {
	case "memory":
		return crowd.NewMemoryStore(), nil
	case "postgres":
		return crowd.NewPostgresStore(cfg.DatabaseURL)
	case "file":
		return crowd.NewFileStore(cfg.File), nil
	default:
		return nil, fmt.Errorf("unknown crowd backend %q", cfg.Backend)
	}
}

// Close releases external resources.
func (a *App) Close() {
	a.Events.Close()
	if err := a.Crowd.Close(); err != nil {
		log.Printf("closing crowd store: %v", err)
	}
}
