package nav

import (
	"fmt"
	"sort"

	"github.com/etnz/misfondos"
	"github.com/etnz/misfondos/date"
	"github.com/shopspring/decimal"
)

// DefaultRetention bounds the per-fund rolling history.
const DefaultRetention = 36

// Outlier rejection bounds, as multiples of the reference price. Search
// results routinely mix up funds and share classes; anything outside this
// band is a different instrument, not a price move.
const (
	outlierLow  = 0.2
	outlierHigh = 5.0
)

// Options tune one reconciliation run.
type Options struct {
	Retention   int       // max history entries kept; DefaultRetention when zero
	Interpolate bool      // fill month-end gaps between sparse anchors
	Today       date.Date // reference day for "current month"; defaults to date.Today()
}

// Reconcile runs the full pipeline on one provider response: extract literal
// and structured signals, synthesize anchors from percentage returns, reject
// outliers, deduplicate per calendar month, optionally interpolate gaps, and
// merge the surviving points into the fund's prior history.
//
// Reconcile is deterministic for a fixed Options.Today and never mutates the
// snapshot. When the response carries no usable signal the prior history is
// returned unchanged.
func Reconcile(raw string, snap Snapshot, opts Options) Result {
	if opts.Today.IsZero() {
		opts.Today = date.Today()
	}
	if opts.Retention <= 0 {
		opts.Retention = DefaultRetention
	}
	units := snap.Units
	if units <= 0 {
		units = 1
	}

	obs, block := Extract(raw)
	// a block without a parseable current date anchors at today, as does a
	// future-dated quote; synthetic anchors are offsets from this date and
	// must never chain off the zero date
	if block != nil && (block.Date.IsZero() || block.Date.After(opts.Today)) {
		block.Date = opts.Today
	}
	synth := Synthesize(block, priceHistory(snap))

	// the block's current quote is itself a literal observation
	var current *Observation
	if block != nil && block.Price > 0 {
		current = &Observation{Date: block.Date, Price: block.Price, Currency: block.Currency}
	}

	candidates := make([]Observation, 0, len(obs)+len(synth)+1)
	candidates = append(candidates, obs...)
	candidates = append(candidates, synth...)
	if current != nil {
		candidates = append(candidates, *current)
	}

	dropped := 0
	kept := candidates[:0]
	for _, o := range candidates {
		if o.Price <= 0 || o.Date.IsZero() || o.Date.After(opts.Today) {
			dropped++
			continue
		}
		kept = append(kept, o)
	}
	candidates = kept

	if len(candidates) == 0 {
		return Result{
			History: snap.History,
			Summary: fmt.Sprintf("no usable data, history unchanged (%d pts)", len(snap.History)),
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if c := candidates[i].Date.Compare(candidates[j].Date); c != 0 {
			return c < 0
		}
		return !candidates[i].Synthetic && candidates[j].Synthetic
	})

	ref := median(candidates)
	if current != nil {
		ref = current.Price
	}
	kept = candidates[:0]
	for _, o := range candidates {
		if o.Price < outlierLow*ref || o.Price > outlierHigh*ref {
			dropped++
			continue
		}
		kept = append(kept, o)
	}
	candidates = kept

	// the audit line counts surviving observations only, so a dropped one
	// is never also reported as literal or synthetic
	literal, synthetic := 0, 0
	for _, o := range candidates {
		if o.Synthetic {
			synthetic++
		} else {
			literal++
		}
	}

	// one observation per calendar month
	byMonth := make(map[int]Observation)
	for _, o := range candidates {
		k := o.Date.Year()*12 + int(o.Date.Month())
		best, ok := byMonth[k]
		if !ok || better(o, best) {
			byMonth[k] = o
		}
	}

	// past months land on their last day; the current month keeps the
	// exact observation date
	points := make([]Observation, 0, len(byMonth))
	for _, o := range byMonth {
		if !o.Date.SameMonth(opts.Today) {
			o.Date = o.Date.EndOf(date.Monthly)
		}
		points = append(points, o)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	interpolated := 0
	if opts.Interpolate {
		points, interpolated = fillMonths(points)
	}

	// merge in value space, newest data winning: a month this run produced
	// a point for supersedes whatever the prior history held in that month
	months := make(map[int]bool, len(points))
	for _, o := range points {
		months[o.Date.Year()*12+int(o.Date.Month())] = true
	}
	merged := &date.History[float64]{}
	for _, e := range snap.History {
		if months[e.Date.Year()*12+int(e.Date.Month())] {
			continue
		}
		merged.Append(e.Date, e.Value)
	}
	for _, o := range points {
		merged.Append(o.Date, value(o.Price, units))
	}

	// collapse leftover same-month duplicates (a prior mid-month entry
	// next to a new month-end one), keeping the latest-dated entry
	final := make([]misfondos.HistoryEntry, 0, merged.Len())
	for on, v := range merged.Values() {
		if n := len(final); n > 0 && final[n-1].Date.SameMonth(on) {
			final[n-1] = misfondos.HistoryEntry{Date: on, Value: v}
			continue
		}
		final = append(final, misfondos.HistoryEntry{Date: on, Value: v})
	}
	if n := len(final) - opts.Retention; n > 0 {
		final = final[n:]
	}

	r := Result{History: final}
	summary := fmt.Sprintf("%d pts (%d literal, %d synthetic, %d interpolated, %d dropped)",
		len(final), literal, synthetic, interpolated, dropped)
	if current != nil {
		r.Price = current.Price
		r.Date = current.Date
		r.Currency = block.Currency
		r.RealTime = block.RealTime
		summary = fmt.Sprintf("NAV %.2f %s @ %s | %s", r.Price, r.Currency, r.Date, summary)
	}
	r.Summary = summary
	return r
}

// better reports whether a should displace b as its month's observation.
// Literal beats synthetic; among equals the one closest to the month end
// wins, the later-processed one on a tie.
func better(a, b Observation) bool {
	if a.Synthetic != b.Synthetic {
		return !a.Synthetic
	}
	end := a.Date.EndOf(date.Monthly)
	return abs(end.Sub(a.Date)) <= abs(end.Sub(b.Date))
}

// fillMonths linearly interpolates a synthetic point at each month end
// strictly between two consecutive anchors.
func fillMonths(points []Observation) ([]Observation, int) {
	var fills []Observation
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		span := float64(b.Date.Sub(a.Date))
		if span <= 0 {
			continue
		}
		date.Range{From: a.Date, To: b.Date}.Months(func(on date.Date) bool {
			t := float64(on.Sub(a.Date)) / span
			if p := round2(a.Price + (b.Price-a.Price)*t); p > 0 {
				fills = append(fills, Observation{Date: on, Price: p, Currency: a.Currency, Synthetic: true})
			}
			return true
		})
	}
	if len(fills) == 0 {
		return points, 0
	}
	points = append(points, fills...)
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, len(fills)
}

// priceHistory converts the snapshot's position values back to per-unit
// prices, the space the engine reasons in.
func priceHistory(snap Snapshot) *date.History[float64] {
	units := snap.Units
	if units <= 0 {
		units = 1
	}
	h := &date.History[float64]{}
	for _, e := range snap.History {
		if e.Value > 0 {
			h.Append(e.Date, e.Value/units)
		}
	}
	return h
}

// value converts a per-unit price to a total position value at the
// document's 2-decimal precision.
func value(price, units float64) float64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(units)).Round(2).InexactFloat64()
}

func median(obs []Observation) float64 {
	ps := make([]float64, len(obs))
	for i, o := range obs {
		ps[i] = o.Price
	}
	sort.Float64s(ps)
	n := len(ps)
	if n%2 == 1 {
		return ps[n/2]
	}
	return (ps[n/2-1] + ps[n/2]) / 2
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
