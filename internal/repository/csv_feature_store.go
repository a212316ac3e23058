package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"CandlePull/internal/domain/models"
)

// csvHeader is the fixed column layout of the output file.
var csvHeader = []string{"unix", "RSI", "lowerband", "upperband", "close"}

// CSVFeatureStore writes one <SYMBOL>.csv per pair into a directory,
// fully replacing any previous file. Missing indicator values are
// rendered as empty fields, never as 0 or a NaN literal.
type CSVFeatureStore struct {
	dir string
}

func NewCSVFeatureStore(dir string) *CSVFeatureStore {
	if dir == "" {
		dir = "."
	}
	return &CSVFeatureStore{dir: dir}
}

func (s *CSVFeatureStore) Name() string { return "csv" }

func (s *CSVFeatureStore) WriteTable(ctx context.Context, table *models.FeatureTable) error {
	path := filepath.Join(s.dir, table.Symbol+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range table.Rows {
		record := []string{
			strconv.FormatInt(row.Unix, 10),
			formatFloat(row.RSI),
			formatFloat(row.LowerBand),
			formatFloat(row.UpperBand),
			formatFloat(row.Close),
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (s *CSVFeatureStore) Close() error { return nil }

// formatFloat renders v with the shortest decimal form that round-trips,
// or an empty field for NaN.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
