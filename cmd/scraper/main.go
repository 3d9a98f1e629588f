package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jobad-insights/internal/config"
	"jobad-insights/internal/dataset"
	"jobad-insights/internal/scraper"
)

func main() {
	var directory, keywords string
	flag.StringVar(&directory, "directory", "", "directory to write data_raw.csv to")
	flag.StringVar(&directory, "d", "", "shorthand for -directory")
	flag.StringVar(&keywords, "keywords", "", "comma separated search keywords, underscores become spaces")
	flag.StringVar(&keywords, "k", "", "shorthand for -keywords")
	pages := flag.Int("pages", 0, "max listing pages per keyword")
	workers := flag.Int("workers", 0, "concurrent detail page fetches")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if directory != "" {
		cfg.Data.Directory = directory
	}
	if keywords != "" {
		cfg.Scraper.Keywords = strings.Split(keywords, ",")
	}
	if *pages > 0 {
		cfg.Scraper.Pages = *pages
	}
	if *workers > 0 {
		cfg.Scraper.Workers = *workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.Default()
	s := scraper.NewStepstone(cfg.Scraper, logger)

	if cfg.Scraper.Email != "" && cfg.Scraper.Password != "" {
		loginCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		cookies, err := scraper.LoginCookies(loginCtx, cfg.Scraper.BaseURL, cfg.Scraper.Email, cfg.Scraper.Password)
		cancel()
		if err != nil {
			logger.Printf("login failed, continuing without salaries: %v", err)
		} else {
			s.SetCookies(cookies)
		}
	}

	ads, err := s.Scrape(ctx, cfg.Scraper.Keywords)
	if err != nil {
		log.Fatalf("scrape failed: %v", err)
	}

	dir := dataset.Dir(cfg.Data.Directory)
	if err := dataset.WriteFileAtomic(dir.RawPath(), func(w io.Writer) error {
		return dataset.WriteRaw(w, ads)
	}); err != nil {
		log.Fatalf("failed to write raw data: %v", err)
	}
	logger.Printf("scrape done ads=%d path=%s", len(ads), dir.RawPath())
}
