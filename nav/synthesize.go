package nav

import (
	"math"
	"strconv"
	"time"

	"github.com/etnz/misfondos"
	"github.com/etnz/misfondos/date"
	"github.com/shopspring/decimal"
)

// shortHorizons maps rolling-period returns to their calendar-day offsets
// before the current date.
var shortHorizons = []struct {
	period string
	days   int
}{
	{"1m", 30},
	{"3m", 90},
	{"6m", 180},
	{"1y", 365},
	{"3y", 1095},
}

// Synthesize inverts the block's percentage returns into synthetic price
// anchors. A return of pct% over a period means the price at the period
// start was current / (1 + pct/100).
//
// Rolling periods anchor at fixed day offsets before the current date. The
// YTD return anchors at December 31 of the prior year. Calendar-year returns
// chain backward from the most recent year-end anchor (the YTD one, or a
// prior-history value at that date) and stop at the first missing year.
func Synthesize(b *Block, prior *date.History[float64]) []Observation {
	if b == nil || b.Price <= 0 {
		return nil
	}
	returns := make(map[string]misfondos.Percent, len(b.Returns))
	for _, r := range b.Returns {
		if _, ok := returns[r.Period]; !ok {
			returns[r.Period] = r.Pct
		}
	}

	var out []Observation
	emit := func(d date.Date, price float64) bool {
		price = round2(price)
		if price <= 0 || math.IsInf(price, 0) || math.IsNaN(price) {
			return false
		}
		out = append(out, Observation{Date: d, Price: price, Currency: b.Currency, Synthetic: true})
		return true
	}

	for _, h := range shortHorizons {
		pct, ok := returns[h.period]
		if !ok {
			continue
		}
		if p, ok := invert(b.Price, pct); ok {
			emit(b.Date.Add(-h.days), p)
		}
	}

	// year-end anchor for the chain of calendar-year returns
	anchorYear := b.Date.Year() - 1
	yearEnd := date.New(anchorYear, time.December, 31)
	var rolling float64
	if pct, ok := returns["ytd"]; ok {
		if p, ok := invert(b.Price, pct); ok && emit(yearEnd, p) {
			rolling = round2(p)
		}
	}
	if rolling == 0 && prior != nil {
		if v, ok := prior.Get(yearEnd); ok && v > 0 {
			rolling = v
		}
	}
	for y := anchorYear; rolling > 0; y-- {
		pct, ok := returns[strconv.Itoa(y)]
		if !ok {
			break
		}
		p, ok := invert(rolling, pct)
		if !ok {
			break
		}
		p = round2(p)
		if !emit(date.New(y-1, time.December, 31), p) {
			break
		}
		rolling = p
	}
	return out
}

// invert computes the price at the start of a period from the price at its
// end and the period's percentage return.
func invert(price float64, pct misfondos.Percent) (float64, bool) {
	f := 1 + float64(pct)/100
	if f <= 0 {
		return 0, false
	}
	return price / f, true
}

// round2 rounds a price to 2 decimals, the persistence precision of the
// history document.
func round2(p float64) float64 {
	return decimal.NewFromFloat(p).Round(2).InexactFloat64()
}
