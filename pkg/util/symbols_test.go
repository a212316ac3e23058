package util

import (
	"reflect"
	"testing"
)

func TestNormalizeSymbol(t *testing.T) {
	cases := map[string]string{
		"btcusdt":     "BTCUSDT",
		"BTCUSDT.csv": "BTCUSDT",
		" ethusdt ":   "ETHUSDT",
		"":            "",
	}
	for in, want := range cases {
		if got := NormalizeSymbol(in); got != want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitSymbolsFlattens(t *testing.T) {
	got := SplitSymbols([]string{"btcusdt ethusdt", "SOLUSDT,btcusdt", ""})
	want := []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitSymbols = %v, want %v", got, want)
	}
}
