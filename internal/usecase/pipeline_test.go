package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"CandlePull/internal/domain/models"
	drepo "CandlePull/internal/domain/repository"
	"CandlePull/internal/service/cache"
	applogger "CandlePull/pkg/logger"
)

type fakeSource struct {
	calls   map[string]int
	failOn  map[string]error
	candles []models.Candle
}

func newFakeSource() *fakeSource {
	candles := make([]models.Candle, 40)
	for i := range candles {
		candles[i] = models.Candle{OpenTime: int64(i) * 60_000, Close: 100 + float64(i)}
	}
	return &fakeSource{calls: map[string]int{}, failOn: map[string]error{}, candles: candles}
}

func (f *fakeSource) FetchCandles(_ context.Context, symbol, interval string) ([]models.Candle, error) {
	f.calls[symbol]++
	if err, ok := f.failOn[symbol]; ok {
		return nil, err
	}
	return f.candles, nil
}

type memSink struct {
	name   string
	tables map[string]*models.FeatureTable
	fail   bool
}

func newMemSink(name string) *memSink {
	return &memSink{name: name, tables: map[string]*models.FeatureTable{}}
}

func (s *memSink) Name() string { return s.name }
func (s *memSink) Close() error { return nil }

func (s *memSink) WriteTable(_ context.Context, t *models.FeatureTable) error {
	if s.fail {
		return fmt.Errorf("disk full")
	}
	s.tables[t.Symbol] = t
	return nil
}

type nopMetrics struct {
	errorsByKind map[string]int
}

func newNopMetrics() *nopMetrics { return &nopMetrics{errorsByKind: map[string]int{}} }

func (m *nopMetrics) RecordPairProcessed(string)         {}
func (m *nopMetrics) RecordError(kind string)            { m.errorsByKind[kind]++ }
func (m *nopMetrics) RecordRowsWritten(_, _ string, _ int) {}
func (m *nopMetrics) RecordLastClose(string, float64)    {}
func (m *nopMetrics) RecordLatency(string, float64)      {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestRunContinuesPastFailingPair(t *testing.T) {
	src := newFakeSource()
	src.failOn["BADUSDT"] = models.NewPairError(models.FailureParse, "BADUSDT", errors.New("exchange error -1121"))
	sink := newMemSink("csv")
	metrics := newNopMetrics()
	pipe := NewPipeline(src, []drepo.FeatureSink{sink}, nil, 0, metrics, NewResultSet(), testLogger(t))

	failed := pipe.Run(context.Background(), []string{"BTCUSDT", "BADUSDT", "ETHUSDT"}, drepo.FreqMin)
	if failed != 1 {
		t.Fatalf("failed = %d, want 1", failed)
	}
	if _, ok := sink.tables["BTCUSDT"]; !ok {
		t.Error("BTCUSDT not written")
	}
	if _, ok := sink.tables["ETHUSDT"]; !ok {
		t.Error("ETHUSDT not written after the failing pair")
	}
	if _, ok := sink.tables["BADUSDT"]; ok {
		t.Error("failing pair must not be written")
	}
	if metrics.errorsByKind["parse"] != 1 {
		t.Errorf("parse errors = %d, want 1", metrics.errorsByKind["parse"])
	}
}

func TestRunPairClassifiesWriteFailure(t *testing.T) {
	src := newFakeSource()
	sink := newMemSink("csv")
	sink.fail = true
	pipe := NewPipeline(src, []drepo.FeatureSink{sink}, nil, 0, newNopMetrics(), NewResultSet(), testLogger(t))

	err := pipe.RunPair(context.Background(), "BTCUSDT", "1m")
	if kind := models.KindOf(err); kind != models.FailureWrite {
		t.Fatalf("kind = %q, want write (err: %v)", kind, err)
	}
}

func TestRunPairClassifiesExportFailure(t *testing.T) {
	src := newFakeSource()
	csv := newMemSink("csv")
	export := newMemSink("clickhouse")
	export.fail = true
	pipe := NewPipeline(src, []drepo.FeatureSink{csv, export}, nil, 0, newNopMetrics(), NewResultSet(), testLogger(t))

	err := pipe.RunPair(context.Background(), "BTCUSDT", "1m")
	if kind := models.KindOf(err); kind != models.FailureExport {
		t.Fatalf("kind = %q, want export (err: %v)", kind, err)
	}
	if _, ok := csv.tables["BTCUSDT"]; !ok {
		t.Error("csv write should have happened before the export failed")
	}
}

func TestFreshnessCacheSkipsRefetch(t *testing.T) {
	src := newFakeSource()
	sink := newMemSink("csv")
	pipe := NewPipeline(src, []drepo.FeatureSink{sink}, cache.NewTTLCache(), time.Hour, newNopMetrics(), NewResultSet(), testLogger(t))

	if err := pipe.RunPair(context.Background(), "BTCUSDT", "1m"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := pipe.RunPair(context.Background(), "BTCUSDT", "1m"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if src.calls["BTCUSDT"] != 1 {
		t.Fatalf("fetch calls = %d, want 1 (second run inside the freshness window)", src.calls["BTCUSDT"])
	}
}

func TestResultSetKeepsTables(t *testing.T) {
	src := newFakeSource()
	results := NewResultSet()
	pipe := NewPipeline(src, []drepo.FeatureSink{newMemSink("csv")}, nil, 0, newNopMetrics(), results, testLogger(t))

	if failed := pipe.Run(context.Background(), []string{"ETHUSDT", "BTCUSDT"}, drepo.FreqMin); failed != 0 {
		t.Fatalf("failed = %d", failed)
	}
	syms := results.Symbols()
	if len(syms) != 2 || syms[0] != "BTCUSDT" || syms[1] != "ETHUSDT" {
		t.Fatalf("symbols = %v", syms)
	}
	table, ok := results.Get("BTCUSDT")
	if !ok || len(table.Rows) != 40 {
		t.Fatalf("table missing or wrong size")
	}
}
