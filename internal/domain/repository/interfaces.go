package repository

import (
	"context"

	"CandlePull/internal/domain/models"
)

// CandleSource fetches the latest kline window for one trading pair.
type CandleSource interface {
	FetchCandles(ctx context.Context, symbol string, interval string) ([]models.Candle, error)
}

// FeatureSink persists a computed feature table. Implementations fully
// replace any previous table for the same symbol.
type FeatureSink interface {
	WriteTable(ctx context.Context, table *models.FeatureTable) error
	Name() string
	Close() error
}

// Metrics records pipeline observations.
type Metrics interface {
	RecordPairProcessed(symbol string)
	RecordError(kind string)
	RecordRowsWritten(sink, symbol string, n int)
	RecordLastClose(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
