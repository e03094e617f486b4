package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/misfondos"
	"github.com/etnz/misfondos/date"
)

// FundMarkdown renders a single fund's detail view.
func FundMarkdown(f *misfondos.Fund) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", f.Name)

	gain, pct := f.Gain()
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| ISIN | %s |\n", f.ISIN)
	if f.Manager != "" {
		fmt.Fprintf(&b, "| Manager | %s |\n", f.Manager)
	}
	if f.Category != "" {
		fmt.Fprintf(&b, "| Category | %s |\n", f.Category)
	}
	fmt.Fprintf(&b, "| Units | %g |\n", f.Units)
	fmt.Fprintf(&b, "| NAV | %.2f %s (%s) |\n", f.NAV, f.Currency, f.NAVDate)
	fmt.Fprintf(&b, "| Invested | %s |\n", misfondos.NewMoneyFromFloat(f.Invested, f.Currency))
	fmt.Fprintf(&b, "| Value | %s |\n", f.TotalValue())
	fmt.Fprintf(&b, "| Gain | %s (%s) |\n", gain.SignedString(), pct.SignedString())
	if f.Source != "" {
		fmt.Fprintf(&b, "| Source | %s |\n", f.Source)
	}

	if len(f.History) > 0 {
		fmt.Fprint(&b, "\n")
		b.WriteString(HistoryMarkdown(f, date.Monthly))
	}
	return b.String()
}

// HistoryMarkdown renders a fund's rolling history as a table, keeping one
// row per period.
func HistoryMarkdown(f *misfondos.Fund, period date.Period) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## History for %s\n\n", f.ISIN)
	if len(f.History) == 0 {
		fmt.Fprintln(&b, "No history yet.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | NAV | Value |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, e := range lastPerPeriod(f.History, period) {
		nav := ""
		if f.Units > 0 {
			nav = fmt.Sprintf("%.2f", e.Value/f.Units)
		}
		fmt.Fprintf(&b, "| %s | %s | %.2f |\n", e.Date, nav, e.Value)
	}
	return b.String()
}

// lastPerPeriod downsamples a chronological history to its last entry in
// each period.
func lastPerPeriod(entries []misfondos.HistoryEntry, period date.Period) []misfondos.HistoryEntry {
	var out []misfondos.HistoryEntry
	for _, e := range entries {
		if n := len(out); n > 0 && out[n-1].Date.StartOf(period) == e.Date.StartOf(period) {
			out[n-1] = e
			continue
		}
		out = append(out, e)
	}
	return out
}
