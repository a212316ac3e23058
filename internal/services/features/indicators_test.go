package features

import (
	"math"
	"testing"

	"CandlePull/internal/domain/models"
)

func TestRSIUndefinedUntilPeriod(t *testing.T) {
	closes := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8}
	period := 14
	rsi := RSI(closes, period)
	for i := 0; i < period; i++ {
		if !math.IsNaN(rsi[i]) {
			t.Fatalf("rsi[%d] = %v, want NaN before a full window", i, rsi[i])
		}
	}
	for i := period; i < len(closes); i++ {
		if math.IsNaN(rsi[i]) {
			t.Fatalf("rsi[%d] = NaN, want defined", i)
		}
	}
}

func TestRSIBounds(t *testing.T) {
	closes := []float64{
		100, 101.5, 99.2, 98.7, 103, 104.1, 102.2, 101.9, 105, 106.3,
		104.4, 103.1, 107, 108.5, 106.6, 105.2, 109, 110.4, 108.8, 107.3,
	}
	rsi := RSI(closes, 14)
	for i, v := range rsi {
		if math.IsNaN(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("rsi[%d] = %v, out of [0,100]", i, v)
		}
	}
}

func TestRSISaturatesOnAllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	rsi := RSI(closes, 14)
	for i := 14; i < len(closes); i++ {
		if rsi[i] != 100 {
			t.Fatalf("rsi[%d] = %v, want exactly 100 for monotonic gains", i, rsi[i])
		}
	}
}

func TestRSIFlatWindowSaturates(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 42
	}
	rsi := RSI(closes, 14)
	if rsi[len(rsi)-1] != 100 {
		t.Fatalf("rsi on flat series = %v, want 100 (zero average loss)", rsi[len(rsi)-1])
	}
}

func TestBollingerOrdering(t *testing.T) {
	closes := []float64{
		10, 12, 11, 13, 12.5, 14, 13.2, 15, 14.8, 16,
		15.5, 17, 16.1, 18, 17.4, 19, 18.2, 20, 19.6, 21,
		20.3, 22, 21.7, 23, 22.4,
	}
	lower, upper := Bollinger(closes, 21, 2.0)
	mid := RollingMean(closes, 21)
	for i := range closes {
		if math.IsNaN(lower[i]) {
			if !math.IsNaN(upper[i]) {
				t.Fatalf("bands disagree on definedness at %d", i)
			}
			continue
		}
		if !(upper[i] >= mid[i] && mid[i] >= lower[i]) {
			t.Errorf("band ordering violated at %d: %v %v %v", i, lower[i], mid[i], upper[i])
		}
	}
}

// Thirty-five monotonically increasing closes: both indicator windows are
// fully defined on the last row, RSI saturates at 100 and the bands must
// match a direct rolling mean/std computation.
func TestFeatureTableMonotonicReference(t *testing.T) {
	candles := make([]models.Candle, 35)
	for i := range candles {
		candles[i] = models.Candle{OpenTime: int64(i) * 60_000, Close: float64(i + 1)}
	}
	table := BuildFeatureTable("TESTUSDT", candles)
	if len(table.Rows) != 35 {
		t.Fatalf("rows = %d, want 35", len(table.Rows))
	}
	last := table.Rows[34]
	if !last.Defined() {
		t.Fatal("last row should have all indicators defined")
	}
	if last.RSI != 100 {
		t.Errorf("RSI = %v, want exactly 100", last.RSI)
	}

	// Reference window: the trailing 21 closes 15..35.
	sum := 0.0
	for v := 15.0; v <= 35; v++ {
		sum += v
	}
	mean := sum / 21
	variance := 0.0
	for v := 15.0; v <= 35; v++ {
		variance += (v - mean) * (v - mean)
	}
	sd := math.Sqrt(variance / 20)

	wantUpper := mean + 2*sd
	wantLower := mean - 2*sd
	const tol = 1e-9
	if math.Abs(last.UpperBand-wantUpper) > tol {
		t.Errorf("upperband = %v, want %v", last.UpperBand, wantUpper)
	}
	if math.Abs(last.LowerBand-wantLower) > tol {
		t.Errorf("lowerband = %v, want %v", last.LowerBand, wantLower)
	}

	// The first 13 rows carry no RSI, the first 20 no bands.
	if !math.IsNaN(table.Rows[13].RSI) {
		t.Error("rsi defined too early")
	}
	if !math.IsNaN(table.Rows[19].UpperBand) {
		t.Error("bands defined too early")
	}
	if math.IsNaN(table.Rows[20].UpperBand) {
		t.Error("bands undefined at first full window")
	}
}

func TestRollingMeanShortInput(t *testing.T) {
	out := RollingMean([]float64{1, 2}, 5)
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Fatalf("out[%d] = %v, want NaN for short input", i, v)
		}
	}
}
