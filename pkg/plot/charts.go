package plot

import (
	"math"
	"strconv"

	"CandlePull/internal/domain/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RSIChart renders the RSI series over the row index.
func RSIChart(table *models.FeatureTable) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "RSI " + table.Symbol}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
	)

	xs := rowIndex(len(table.Rows))
	rsi := make([]opts.LineData, len(table.Rows))
	for i, row := range table.Rows {
		rsi[i] = lineValue(row.RSI)
	}
	line.SetXAxis(xs).AddSeries("RSI", rsi)
	return line
}

// BandsChart renders lower band, upper band and close over the row index.
func BandsChart(table *models.FeatureTable) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Bollinger Bands " + table.Symbol}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	n := len(table.Rows)
	lower := make([]opts.LineData, n)
	upper := make([]opts.LineData, n)
	closes := make([]opts.LineData, n)
	for i, row := range table.Rows {
		lower[i] = lineValue(row.LowerBand)
		upper[i] = lineValue(row.UpperBand)
		closes[i] = lineValue(row.Close)
	}

	line.SetXAxis(rowIndex(n)).
		AddSeries("Lower", lower).
		AddSeries("Upper", upper).
		AddSeries("Value", closes)
	return line
}

func rowIndex(n int) []string {
	xs := make([]string, n)
	for i := range xs {
		xs[i] = strconv.Itoa(i)
	}
	return xs
}

// lineValue maps NaN to a gap; echarts treats "-" as a missing point.
func lineValue(v float64) opts.LineData {
	if math.IsNaN(v) {
		return opts.LineData{Value: "-"}
	}
	return opts.LineData{Value: v}
}
