// Package renderer turns portfolio and fund data into markdown reports,
// ready for terminal display.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/misfondos"
	"github.com/etnz/misfondos/date"
)

// SummaryMarkdown renders the portfolio overview: one row per fund with its
// current value and gain, plus a total line.
func SummaryMarkdown(p *misfondos.Portfolio) string {
	var b strings.Builder

	name := p.Info.Name
	if name == "" {
		name = "Portfolio"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)
	if !p.Info.LastUpdate.IsZero() {
		fmt.Fprintf(&b, "Last update: %s\n\n", p.Info.LastUpdate.Format("2006-01-02 15:04"))
	}

	if len(p.Funds) == 0 {
		fmt.Fprintln(&b, "No funds in the portfolio.")
		return b.String()
	}

	fmt.Fprintln(&b, "| ISIN | Fund | NAV | Value | Gain | Return |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")

	invested := 0.0
	for _, f := range p.Funds {
		gain, pct := f.Gain()
		fmt.Fprintf(&b, "| %s | %s | %.2f | %s | %s | %s |\n",
			f.ISIN,
			f.Name,
			f.NAV,
			f.TotalValue(),
			gain.SignedString(),
			pct.SignedString(),
		)
		invested += f.Invested
	}

	total := p.TotalValue()
	totalGain := total.AsFloat() - invested
	var totalPct misfondos.Percent
	if invested > 0 {
		totalPct = misfondos.Percent(100 * totalGain / invested)
	}
	currency := p.Funds[0].Currency
	fmt.Fprintf(&b, "| **%s** | | | **%s** | **%s** | **%s** |\n",
		"Total",
		total,
		misfondos.NewMoneyFromFloat(totalGain, currency).SignedString(),
		totalPct.SignedString(),
	)

	return b.String()
}

// AggregateMarkdown renders the portfolio-level history, one row per period.
func AggregateMarkdown(p *misfondos.Portfolio, period date.Period) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio History\n\n")
	if len(p.Aggregate) == 0 {
		fmt.Fprintln(&b, "No aggregate history yet. Run a refresh first.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, e := range lastPerPeriod(p.Aggregate, period) {
		fmt.Fprintf(&b, "| %s | %.2f |\n", e.Date, e.Value)
	}
	return b.String()
}
