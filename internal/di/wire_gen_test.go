package di

import (
	"testing"

	"StockPulse/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("log:\n  level: error\n"))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return cfg
}

func TestInitializeAppWithLocalDefaults(t *testing.T) {
	app, cleanup, err := InitializeApp(testConfig(t))
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()
	if app == nil {
		t.Fatalf("expected app")
	}
}

func TestInitializeBackfillNeedsClickHouse(t *testing.T) {
	if _, _, err := InitializeBackfill(testConfig(t)); err == nil {
		t.Fatalf("expected error without clickhouse host")
	}
}

func TestProvidePolarityAnalyzerDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.News.Analyzer = config.AnalyzerNone
	if a := ProvidePolarityAnalyzer(cfg); a != nil {
		t.Fatalf("expected nil analyzer, got %T", a)
	}
}
