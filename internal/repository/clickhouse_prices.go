package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	pkgch "StockPulse/pkg/clickhouse"
	applogger "StockPulse/pkg/logger"
)

const insertChunkSize = 2000

// DailyCandleSchema returns the idempotent DDL for the daily candle table.
func DailyCandleSchema(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
    day    Date,
    symbol LowCardinality(String),
    open   Float64,
    high   Float64,
    low    Float64,
    close  Float64,
    volume Float64
) ENGINE = ReplacingMergeTree
ORDER BY (symbol, day)`, database, table),
	}
}

// CHPriceSource implements PriceSource over a ClickHouse daily candle table.
type CHPriceSource struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
	now   func() time.Time
}

func NewCHPriceSource(ch *pkgch.Client, table string) *CHPriceSource {
	return &CHPriceSource{
		db:    ch.DB(),
		table: ch.Database() + "." + table,
		l:     applogger.Nop(),
		now:   time.Now,
	}
}

// SetLogger injects a structured logger.
func (s *CHPriceSource) SetLogger(l *applogger.Logger) {
	if l != nil {
		s.l = l
	}
}

func (s *CHPriceSource) selectQuery() string {
	return fmt.Sprintf(`
        SELECT day, symbol, open, high, low, close, volume
        FROM %s FINAL
        WHERE symbol = ? AND day >= ?
        ORDER BY day ASC
    `, s.table)
}

// GetDailyCandles returns the stored bars of the last days calendar days, oldest first.
func (s *CHPriceSource) GetDailyCandles(ctx context.Context, symbol string, days int) ([]models.Candle, error) {
	start := time.Now()
	from := s.now().UTC().AddDate(0, 0, -days)

	rows, err := s.db.QueryContext(ctx, s.selectQuery(), symbol, from)
	if err != nil {
		s.l.Error("clickhouse daily_candles query error",
			applogger.String("table", s.table),
			applogger.String("symbol", symbol),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("get daily candles: %w", err)
	}
	defer rows.Close()

	out := make([]models.Candle, 0, 256)
	for rows.Next() {
		var c models.Candle
		if err := rows.Scan(&c.Time, &c.Symbol, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	s.l.Debug("clickhouse daily_candles ok",
		applogger.String("symbol", symbol),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}

// StoreCandles inserts bars in multi-row chunks. Re-inserting a day replaces it on merge.
func (s *CHPriceSource) StoreCandles(ctx context.Context, candles []models.Candle) error {
	for start := 0; start < len(candles); start += insertChunkSize {
		end := min(start+insertChunkSize, len(candles))
		q, args := buildInsert(s.table, candles[start:end])
		if len(args) == 0 {
			continue
		}
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert candles: %w", err)
		}
	}
	return nil
}

func buildInsert(table string, candles []models.Candle) (string, []interface{}) {
	values := make([]string, 0, len(candles))
	args := make([]interface{}, 0, len(candles)*7)
	for _, c := range candles {
		if c.Symbol == "" || c.Time.IsZero() {
			continue
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, c.Time.UTC(), c.Symbol, c.Open, c.High, c.Low, c.Close, c.Volume)
	}
	q := fmt.Sprintf("INSERT INTO %s (day, symbol, open, high, low, close, volume) VALUES %s", table, strings.Join(values, ","))
	return q, args
}
