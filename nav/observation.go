// Package nav implements the NAV history reconciliation engine: it turns a
// noisy provider response describing a fund's price history (literal table
// rows, percentage returns, or both) into a clean, deduplicated, monthly
// time series merged with the fund's existing rolling history.
//
// The engine is pure: it performs no I/O and consumes only the raw response
// text and a snapshot of the fund's prior state.
package nav

import (
	"regexp"
	"strings"

	"github.com/etnz/misfondos"
	"github.com/etnz/misfondos/date"
)

// Observation is a single per-unit valuation sample.
type Observation struct {
	Date     date.Date
	Price    float64 // per-unit NAV, always > 0
	Currency string
	// Synthetic marks prices derived from a percentage return (or
	// interpolated) rather than read literally from the source.
	Synthetic bool
}

// Return is a percentage change over a named period.
type Return struct {
	Period string // canonical key: "1m", "3m", "6m", "1y", "3y", "ytd", or a year "2024"
	Pct    misfondos.Percent
}

// Block is the structured part of a provider response: the current valuation
// and whatever percentage returns the search found.
type Block struct {
	Price    float64
	Date     date.Date
	Currency string
	RealTime bool
	Returns  []Return
	Debug    string
}

// Snapshot is the caller-supplied prior state for one fund. The engine works
// in per-unit price space and converts to total position value (price ×
// units) only when writing history entries.
type Snapshot struct {
	Units   float64
	History []misfondos.HistoryEntry
}

// Result is the outcome of one reconciliation run. When the response yielded
// no usable signal, History is the prior history unchanged and Price is zero.
type Result struct {
	History  []misfondos.HistoryEntry
	Price    float64
	Date     date.Date
	Currency string
	RealTime bool
	Summary  string // compact counts line for the audit log
}

// Apply commits the result to a fund record. A zero Price leaves the current
// NAV untouched (the refresh yielded no quote).
func (r Result) Apply(f *misfondos.Fund) {
	if r.Price > 0 {
		f.NAV = r.Price
		f.NAVDate = r.Date
		f.RealTime = r.RealTime
		f.Source = "Google/Gemini"
	}
	f.History = r.History
}

var yearKeyRE = regexp.MustCompile(`(19|20)\d{2}`)

// canonicalPeriod normalizes a period key alias ("1_mes", "1month", "YTD_2026",
// "rent_2024") to its canonical form by substring matching. It returns ""
// when the key matches no known period.
func canonicalPeriod(key string) string {
	k := strings.ToLower(key)
	// strip separators so "1_mes" and "1 month" match "1m"
	k = strings.Map(func(r rune) rune {
		if r == '_' || r == ' ' || r == '-' {
			return -1
		}
		return r
	}, k)

	if strings.Contains(k, "ytd") {
		return "ytd"
	}
	if y := yearKeyRE.FindString(k); y != "" {
		return y
	}
	for _, p := range []string{"1m", "3m", "6m", "3y", "3a", "1y", "1a"} {
		if strings.Contains(k, p) {
			// Spanish aliases: "1a"/"3a" (años) mean "1y"/"3y".
			return strings.Replace(p, "a", "y", 1)
		}
	}
	return ""
}
