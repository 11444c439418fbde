package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"StockPulse/internal/di"
	"StockPulse/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	backfill := flag.String("backfill", "", "comma-separated tickers to load into ClickHouse, then exit")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if *backfill != "" {
		os.Exit(runBackfill(cfg, *backfill))
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}
	defer cleanup()

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		cleanup()
		os.Exit(1)
	}
}

func runBackfill(cfg *config.Config, tickers string) int {
	uc, cleanup, err := di.InitializeBackfill(cfg)
	if err != nil {
		log.Printf("backfill initialization failed: %v", err)
		return 1
	}
	defer cleanup()

	var symbols []string
	for _, s := range strings.Split(tickers, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	n, err := uc.Run(ctx, symbols, cfg.MarketData.LookbackDays)
	if err != nil {
		log.Printf("backfill failed after %d of %d symbols: %v", n, len(symbols), err)
		return 1
	}
	log.Printf("backfill loaded %d symbols into %s.%s", n, cfg.ClickHouse.Database, cfg.ClickHouse.Table)
	return 0
}
