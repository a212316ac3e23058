package util

import "strings"

// NormalizeSymbol uppercases a pair symbol and strips a trailing file
// extension, so both "btcusdt" and "BTCUSDT.csv" resolve to "BTCUSDT".
func NormalizeSymbol(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return strings.ToUpper(s)
}

// SplitSymbols flattens a comma- or space-separated symbol list,
// normalizing each entry and dropping empties and duplicates.
func SplitSymbols(args []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			sym := NormalizeSymbol(part)
			if sym == "" {
				continue
			}
			if _, dup := seen[sym]; dup {
				continue
			}
			seen[sym] = struct{}{}
			out = append(out, sym)
		}
	}
	return out
}
