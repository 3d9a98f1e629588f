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
	"jobad-insights/internal/usecase"
)

func main() {
	var directory string
	var geoData bool
	flag.StringVar(&directory, "directory", "", "directory holding data_raw.csv")
	flag.StringVar(&directory, "d", "", "shorthand for -directory")
	flag.BoolVar(&geoData, "geo_data", false, "join geocoded locations into data_long.csv")
	flag.BoolVar(&geoData, "g", false, "shorthand for -geo_data")
	schedule := flag.String("schedule", "", "cron spec; runs until interrupted when set")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if directory != "" {
		cfg.Data.Directory = directory
	}
	if geoData {
		cfg.Data.GeoEnabled = true
	}
	if *schedule != "" {
		cfg.Data.Schedule = *schedule
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.Default()
	c, err := app.NewContainer(ctx, cfg, logger, nil)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}

	if cfg.Data.Schedule == "" {
		err := runOnce(ctx, c.Pipeline, logger)
		if cerr := c.Close(); cerr != nil {
			logger.Printf("cleanup error: %v", cerr)
		}
		if err != nil {
			logger.Fatalf("preprocess failed: %v", err)
		}
		return
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Printf("cleanup error: %v", err)
		}
	}()

	s, err := c.NewScheduler(cfg.Data.Schedule)
	if err != nil {
		log.Fatalf("failed to init scheduler: %v", err)
	}
	if err := s.Start(ctx); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	<-ctx.Done()
	s.Stop()
}

// runOnce runs the pipeline a single time and logs the summary.
func runOnce(ctx context.Context, p usecase.PipelineUsecase, logger *log.Logger) error {
	summary, err := p.RunNow(ctx)
	if err != nil {
		return err
	}
	logger.Printf("preprocess done run_id=%s raw=%d kept=%d long=%d wide=%d duplicates=%d geo=%t took=%s",
		summary.RunID, summary.RawRows, summary.KeptRows, summary.LongRows, summary.WideRows,
		summary.Duplicates, summary.GeoJoined, summary.Duration)
	return nil
}
