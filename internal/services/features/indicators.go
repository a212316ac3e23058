package features

import (
	"math"

	"CandlePull/internal/domain/models"
)

const (
	// RSIPeriod is the standard 14-sample RSI window.
	RSIPeriod = 14
	// BollingerPeriod is the trailing window for the band envelope.
	BollingerPeriod = 21
	// BollingerWidth is the number of standard deviations per band.
	BollingerWidth = 2.0
)

// RSI computes the simple-moving-average Relative Strength Index over the
// closing prices. out[i] is NaN for i < period: the first diff is
// undefined, so the first full window of gains/losses ends at index
// period. A window whose average loss is zero saturates at 100 instead of
// dividing by zero.
func RSI(closes []float64, period int) []float64 {
	n := len(closes)
	up := nanSlice(n)
	down := nanSlice(n)
	for i := 1; i < n; i++ {
		diff := closes[i] - closes[i-1]
		up[i] = math.Max(diff, 0)
		down[i] = math.Max(-diff, 0)
	}

	avgUp := RollingMean(up, period)
	avgDown := RollingMean(down, period)

	out := nanSlice(n)
	for i := 0; i < n; i++ {
		if math.IsNaN(avgUp[i]) || math.IsNaN(avgDown[i]) {
			continue
		}
		if avgDown[i] == 0 {
			out[i] = 100
			continue
		}
		rs := avgUp[i] / avgDown[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// Bollinger computes the rolling mean envelope mid ± width·sd over the
// closing prices, using the sample standard deviation. Bands are NaN for
// i < period-1.
func Bollinger(closes []float64, period int, width float64) (lower, upper []float64) {
	mid := RollingMean(closes, period)
	sd := RollingStd(closes, period)

	n := len(closes)
	lower = nanSlice(n)
	upper = nanSlice(n)
	for i := 0; i < n; i++ {
		if math.IsNaN(mid[i]) || math.IsNaN(sd[i]) {
			continue
		}
		lower[i] = mid[i] - width*sd[i]
		upper[i] = mid[i] + width*sd[i]
	}
	return lower, upper
}

// BuildFeatureTable runs both indicators over the candle sequence and
// projects the result down to the output columns. Intermediate series are
// discarded.
func BuildFeatureTable(symbol string, candles []models.Candle) *models.FeatureTable {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	rsi := RSI(closes, RSIPeriod)
	lower, upper := Bollinger(closes, BollingerPeriod, BollingerWidth)

	rows := make([]models.FeatureRow, len(candles))
	for i, c := range candles {
		rows[i] = models.FeatureRow{
			Unix:      c.OpenTime,
			RSI:       rsi[i],
			LowerBand: lower[i],
			UpperBand: upper[i],
			Close:     c.Close,
		}
	}
	return &models.FeatureTable{Symbol: symbol, Rows: rows}
}
