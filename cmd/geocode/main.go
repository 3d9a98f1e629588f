package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobad-insights/internal/app"
	"jobad-insights/internal/config"
	"jobad-insights/internal/dataset"
	"jobad-insights/internal/infrastructure/cache"
	"jobad-insights/internal/pipeline"
)

func main() {
	var directory string
	flag.StringVar(&directory, "directory", "", "directory holding data_long.csv")
	flag.StringVar(&directory, "d", "", "shorthand for -directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if directory != "" {
		cfg.Data.Directory = directory
	}
	if err := cfg.RequireGeocoding(); err != nil {
		log.Fatalf("geocoding is not configured: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.Default()
	var redisCache *cache.Redis
	if cfg.Redis.URL != "" {
		redisCache = cache.NewRedis(cfg.Redis.URL, cfg.Redis.TTL, logger)
		defer func() { _ = redisCache.Close() }()
	}

	dir := dataset.Dir(cfg.Data.Directory)
	long, err := dataset.ReadFile(dir.LongPath(), dataset.ReadLong)
	if err != nil {
		log.Fatalf("failed to read long data: %v", err)
	}
	locations := make([]string, 0, len(long.Rows))
	for _, row := range long.Rows {
		locations = append(locations, row.Location)
	}

	geocoder := app.NewGeocoder(cfg.Geocode, redisCache, cfg.Redis.TTL, logger)
	records, _, err := pipeline.UpdateGeoData(ctx, dir, geocoder, locations)
	if err != nil {
		log.Fatalf("geocoding failed: %v", err)
	}
	logger.Printf("geocode done locations=%d path=%s", len(records), dir.GeoPath())
}
