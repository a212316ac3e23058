package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"CandlePull/internal/domain/models"
	pkgch "CandlePull/pkg/clickhouse"
	applogger "CandlePull/pkg/logger"
)

// FeatureTableDDL is the schema the ClickHouse export expects. The
// ReplacingMergeTree key (symbol, ts) makes re-runs idempotent: a fresh
// export of the same window replaces prior rows on merge.
var FeatureTableDDL = []string{
	"CREATE DATABASE IF NOT EXISTS candlepull",
	`CREATE TABLE IF NOT EXISTS candlepull.features (
        symbol String,
        ts DateTime64(3),
        rsi Nullable(Float64),
        lowerband Nullable(Float64),
        upperband Nullable(Float64),
        close Float64
    ) ENGINE=ReplacingMergeTree ORDER BY (symbol, ts)`,
}

// CHFeatureStore exports feature tables into ClickHouse.
type CHFeatureStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHFeatureStore(ch *pkgch.Client, table string, l *applogger.Logger) *CHFeatureStore {
	if table == "" {
		table = "candlepull.features"
	}
	return &CHFeatureStore{db: ch.DB(), table: table, l: l}
}

func (s *CHFeatureStore) Name() string { return "clickhouse" }

func (s *CHFeatureStore) WriteTable(ctx context.Context, table *models.FeatureTable) error {
	if len(table.Rows) == 0 {
		return nil
	}
	start := time.Now()

	// Multi-row VALUES insert to keep round-trips down.
	const chunkSize = 2000
	for lo := 0; lo < len(table.Rows); lo += chunkSize {
		hi := lo + chunkSize
		if hi > len(table.Rows) {
			hi = len(table.Rows)
		}

		values := make([]string, 0, hi-lo)
		args := make([]interface{}, 0, (hi-lo)*6)
		for _, row := range table.Rows[lo:hi] {
			values = append(values, "(?, ?, ?, ?, ?, ?)")
			args = append(args,
				table.Symbol,
				time.UnixMilli(row.Unix),
				nullable(row.RSI),
				nullable(row.LowerBand),
				nullable(row.UpperBand),
				row.Close,
			)
		}
		q := fmt.Sprintf("INSERT INTO %s (symbol, ts, rsi, lowerband, upperband, close) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.l.Error("clickhouse insert error",
				applogger.String("symbol", table.Symbol),
				applogger.Error(err),
			)
			return fmt.Errorf("insert features: %w", err)
		}
	}

	s.l.Info("clickhouse export ok",
		applogger.String("symbol", table.Symbol),
		applogger.Int("rows", len(table.Rows)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}

func (s *CHFeatureStore) Close() error {
	return nil // connection pool is owned by pkg/clickhouse
}

// nullable maps NaN to a SQL NULL.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
