package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobad-insights/internal/config"
	"jobad-insights/internal/database/migration"
	dbpostgres "jobad-insights/internal/database/postgres"
	"jobad-insights/internal/database/seeder"
	"jobad-insights/internal/extract"
	"jobad-insights/internal/geocode"
	"jobad-insights/internal/infrastructure/cache"
	"jobad-insights/internal/infrastructure/persistence/sqlite"
	"jobad-insights/internal/pipeline"
	"jobad-insights/internal/pkg/jwt"
	"jobad-insights/internal/repository"
	"jobad-insights/internal/scheduler"
	"jobad-insights/internal/usecase"
	"jobad-insights/internal/ws"
)

// Container owns every long-lived dependency of a process. Optional
// backends stay nil when they are not configured.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB     *dbpostgres.Pool
	Cache  *cache.Redis
	SQLite *sqlite.SnapshotSink
	Hub    *ws.Hub

	Extractor    *extract.Extractor
	Preprocessor *pipeline.Preprocessor
	Pipeline     *usecase.Pipeline
	Analysis     *usecase.Analysis
	JWT          *jwt.HMACService
	Auth         *usecase.Auth
}

// NewContainer wires the pipeline and its read side. hub may be nil when no
// websocket subscribers can exist.
func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger, hub *ws.Hub) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger, Hub: hub, Extractor: extract.DefaultExtractor()}

	if err := c.openStores(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	geocoder, err := c.geocoder()
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	var sinks []pipeline.Sink
	var runs repository.PipelineRunRepository
	var source repository.JobAdRepository = repository.NewFileJobAdRepository(cfg.Data.Directory)
	if c.DB != nil {
		pg := repository.NewPostgresJobAdRepository(c.DB, c.Extractor.Names())
		sinks = append(sinks, pg)
		source = pg
		runs = repository.NewPostgresPipelineRunRepository(c.DB)
	}
	if c.SQLite != nil {
		sinks = append(sinks, c.SQLite)
	}

	observers := pipeline.Observers{pipeline.LogObserver{Logger: logger}}
	if hub != nil {
		observers = append(observers, ws.PipelineObserver{Hub: hub})
	}
	c.Preprocessor = pipeline.NewPreprocessor(c.Extractor, geocoder, observers, logger, sinks...)

	deps := usecase.PipelineDeps{Runs: runs, Logger: logger}
	if c.DB != nil {
		deps.DB = c.DB
	}
	if c.Cache != nil {
		deps.Cache = c.Cache
		deps.Redis = c.Cache
		deps.Lock = c.Cache
	}
	c.Pipeline = usecase.NewPipelineUsecase(c.Preprocessor, pipeline.Params{
		Directory: cfg.Data.Directory,
		GeoData:   cfg.Data.GeoEnabled,
	}, deps)

	var analysisCache usecase.AnalysisCache
	if c.Cache != nil {
		analysisCache = c.Cache
	}
	c.Analysis = usecase.NewAnalysisUsecase(source, c.Extractor, analysisCache, logger)

	c.JWT = jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
	c.Auth = usecase.NewAuthUsecase(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash, c.JWT)
	return c, nil
}

func (c *Container) openStores(ctx context.Context) error {
	cfg := c.Config

	if cfg.Database.Enabled() {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		pool, err := dbpostgres.Connect(connectCtx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.DB = pool

		if err := (migration.Runner{Logger: c.Logger}).Run(ctx, pool.SQLDB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}).Run(ctx, pool); err != nil {
			return err
		}
	}

	if cfg.Redis.URL != "" {
		c.Cache = cache.NewRedis(cfg.Redis.URL, cfg.Redis.TTL, c.Logger)
	}

	if cfg.SQLite.Path != "" {
		s, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}
		c.SQLite = s
	}
	return nil
}

// geocoder builds client, cache and batcher when geocoding is enabled.
func (c *Container) geocoder() (pipeline.Geocoder, error) {
	cfg := c.Config
	if !cfg.Data.GeoEnabled {
		return nil, nil
	}
	if err := cfg.RequireGeocoding(); err != nil {
		return nil, err
	}
	return NewGeocoder(cfg.Geocode, c.Cache, cfg.Redis.TTL, c.Logger), nil
}

// NewGeocoder chains the Positionstack client, the redis cache (when given)
// and the rate limited batcher.
func NewGeocoder(cfg config.GeocodeConfig, redisCache *cache.Redis, ttl time.Duration, logger *log.Logger) *geocode.Batcher {
	opts := []geocode.Option{geocode.WithCountry(cfg.Country)}
	if cfg.BaseURL != "" {
		opts = append(opts, geocode.WithBaseURL(cfg.BaseURL))
	}
	var f geocode.Forwarder = geocode.NewClient(cfg.AccessKey, opts...)
	if redisCache != nil {
		f = geocode.NewCachedClient(f, redisCache, ttl, logger)
	}
	return geocode.NewBatcher(f, cfg.Workers, cfg.RPS, logger)
}

// NewScheduler runs the pipeline on spec. Ticks that find a run in progress
// are skipped.
func (c *Container) NewScheduler(spec string) (*scheduler.Scheduler, error) {
	return scheduler.New(spec, func(ctx context.Context) error {
		_, err := c.Pipeline.RunNow(ctx)
		if errors.Is(err, usecase.ErrPipelineRunning) {
			c.Logger.Printf("[scheduler] Run skipped, pipeline busy")
			return nil
		}
		return err
	}, c.Logger)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Pipeline != nil {
		c.Pipeline.Close()
	}

	var errs []error
	if c.SQLite != nil {
		errs = append(errs, c.SQLite.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
