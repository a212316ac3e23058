package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"CandlePull/internal/domain/models"
	drepo "CandlePull/internal/domain/repository"
	"CandlePull/internal/service/cache"
	"CandlePull/internal/services/features"
	applogger "CandlePull/pkg/logger"
)

// Pipeline runs fetch -> compute -> write for one pair at a time. Pairs
// are fully independent: a failure is logged, counted and skipped.
type Pipeline struct {
	source   drepo.CandleSource
	sinks    []drepo.FeatureSink
	cache    cache.BytesCache // nil disables the freshness window
	cacheTTL time.Duration
	metrics  drepo.Metrics
	results  *ResultSet
	l        *applogger.Logger
}

func NewPipeline(
	source drepo.CandleSource,
	sinks []drepo.FeatureSink,
	klineCache cache.BytesCache,
	cacheTTL time.Duration,
	metrics drepo.Metrics,
	results *ResultSet,
	l *applogger.Logger,
) *Pipeline {
	return &Pipeline{
		source:   source,
		sinks:    sinks,
		cache:    klineCache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		results:  results,
		l:        l,
	}
}

// Run processes every pair sequentially and returns the number of pairs
// that failed end-to-end. The caller turns a nonzero count into a
// nonzero exit status.
func (p *Pipeline) Run(ctx context.Context, pairs []string, freq drepo.Frequency) int {
	interval := drepo.IntervalFor(freq)
	if freq != drepo.FreqMin {
		p.l.Warn("frequency accepted but not applied; fetch stays on the 1m interval",
			applogger.String("freq", string(freq)),
		)
	}

	failed := 0
	for _, pair := range pairs {
		if err := p.RunPair(ctx, pair, interval); err != nil {
			kind := models.KindOf(err)
			if kind == "" {
				kind = models.FailureWrite
			}
			p.metrics.RecordError(string(kind))
			p.l.Error("pair failed",
				applogger.String("pair", pair),
				applogger.String("kind", string(kind)),
				applogger.Error(err),
			)
			failed++
			continue
		}
		p.metrics.RecordPairProcessed(pair)
		p.l.Info("indicator values ready", applogger.String("pair", pair))
	}
	return failed
}

// Close releases sink resources.
func (p *Pipeline) Close() {
	for _, sink := range p.sinks {
		if err := sink.Close(); err != nil {
			p.l.Warn("sink close error",
				applogger.String("sink", sink.Name()),
				applogger.Error(err),
			)
		}
	}
}

// RunPair executes the full pipeline for one pair.
func (p *Pipeline) RunPair(ctx context.Context, symbol string, interval string) error {
	start := time.Now()

	candles, err := p.fetchCandles(ctx, symbol, interval)
	if err != nil {
		return err
	}
	if len(candles) == 0 {
		p.l.Warn("exchange returned no candles", applogger.String("pair", symbol))
	}

	table := features.BuildFeatureTable(symbol, candles)
	if n := len(candles); n > 0 {
		p.metrics.RecordLastClose(symbol, candles[n-1].Close)
	}
	p.results.Put(table)

	for _, sink := range p.sinks {
		if err := sink.WriteTable(ctx, table); err != nil {
			kind := models.FailureExport
			if sink.Name() == "csv" {
				kind = models.FailureWrite
			}
			return models.NewPairError(kind, symbol, err)
		}
		p.metrics.RecordRowsWritten(sink.Name(), symbol, len(table.Rows))
	}

	p.metrics.RecordLatency("pair", time.Since(start).Seconds())
	return nil
}

// fetchCandles consults the freshness cache before going to the
// exchange. Cache problems are never fatal; they only force a refetch.
func (p *Pipeline) fetchCandles(ctx context.Context, symbol, interval string) ([]models.Candle, error) {
	key := cache.KlinesKey(symbol, interval)
	if p.cache != nil {
		if b, ok, err := p.cache.GetBytes(key); err == nil && ok {
			var candles []models.Candle
			if err := json.Unmarshal(b, &candles); err == nil {
				p.l.Debug("using cached klines",
					applogger.String("pair", symbol),
					applogger.Int("candles", len(candles)),
				)
				return candles, nil
			}
		} else if err != nil {
			p.l.Warn("cache read error", applogger.String("pair", symbol), applogger.Error(err))
		}
	}

	start := time.Now()
	candles, err := p.source.FetchCandles(ctx, symbol, interval)
	p.metrics.RecordLatency("fetch", time.Since(start).Seconds())
	if err != nil {
		var pe *models.PairError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, models.NewPairError(models.FailureNetwork, symbol, err)
	}

	if p.cache != nil {
		if b, err := json.Marshal(candles); err == nil {
			if err := p.cache.SetBytes(key, b, p.cacheTTL); err != nil {
				p.l.Warn("cache write error", applogger.String("pair", symbol), applogger.Error(err))
			}
		}
	}
	return candles, nil
}
