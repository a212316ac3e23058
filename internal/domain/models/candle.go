package models

import "math"

// Candle is a single kline bar as returned by the exchange.
// OpenTime is the exchange-native epoch in milliseconds.
type Candle struct {
	OpenTime int64   `json:"t"`
	Close    float64 `json:"c"`
}

// FeatureRow is one row of the computed feature table.
// Indicator values are NaN while the trailing window has
// insufficient history.
type FeatureRow struct {
	Unix      int64
	RSI       float64
	LowerBand float64
	UpperBand float64
	Close     float64
}

// Defined reports whether all indicator columns of the row carry values.
func (r FeatureRow) Defined() bool {
	return !math.IsNaN(r.RSI) && !math.IsNaN(r.LowerBand) && !math.IsNaN(r.UpperBand)
}

// FeatureTable is the per-pair result of one pipeline run.
type FeatureTable struct {
	Symbol string
	Rows   []FeatureRow
}
