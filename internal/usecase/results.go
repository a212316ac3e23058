package usecase

import (
	"sort"
	"sync"

	"CandlePull/internal/domain/models"
)

// ResultSet keeps the computed feature tables of one run in memory so
// the chart handler can render them after the pipeline finishes.
type ResultSet struct {
	mu     sync.RWMutex
	tables map[string]*models.FeatureTable
}

func NewResultSet() *ResultSet {
	return &ResultSet{tables: make(map[string]*models.FeatureTable)}
}

func (r *ResultSet) Put(table *models.FeatureTable) {
	r.mu.Lock()
	r.tables[table.Symbol] = table
	r.mu.Unlock()
}

func (r *ResultSet) Get(symbol string) (*models.FeatureTable, bool) {
	r.mu.RLock()
	t, ok := r.tables[symbol]
	r.mu.RUnlock()
	return t, ok
}

func (r *ResultSet) Symbols() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.tables))
	for s := range r.tables {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}
