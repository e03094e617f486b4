package misfondos

import (
	"fmt"
	"slices"

	"github.com/etnz/misfondos/date"
)

// HistoryEntry is the persisted unit of a fund's rolling history.
//
// The JSON field names (fecha/valor) are a contract shared with the reporting
// layer and older documents; they must be preserved exactly.
type HistoryEntry struct {
	Date  date.Date `json:"fecha"`
	Value float64   `json:"valor"` // total position value: NAV × units held
}

// Fund represents a single fund position in the portfolio.
//
// JSON field names follow the original document format (Spanish) for
// compatibility with existing portfolio files.
type Fund struct {
	ISIN         string         `json:"ISIN"`
	Name         string         `json:"denominacion"`
	Category     string         `json:"categoria,omitempty"`
	Manager      string         `json:"gestora,omitempty"`
	PurchaseDate date.Date      `json:"fecha_compra"`
	Invested     float64        `json:"importe"`
	Currency     string         `json:"moneda"`
	Units        float64        `json:"participaciones"`
	Fees         float64        `json:"comisiones,omitempty"`
	NAV          float64        `json:"NAV_actual"`
	NAVDate      date.Date      `json:"fecha_NAV"`
	History      []HistoryEntry `json:"historial,omitempty"`
	RealTime     bool           `json:"is_real_time,omitempty"`
	Source       string         `json:"last_updated_source,omitempty"`
}

// Validate checks the fund's identifying fields.
func (f *Fund) Validate() error {
	if err := ValidateISIN(f.ISIN); err != nil {
		return fmt.Errorf("fund %q: %w", f.Name, err)
	}
	if err := ValidateCurrency(f.Currency); err != nil {
		return fmt.Errorf("fund %q: %w", f.Name, err)
	}
	if f.Units <= 0 {
		return fmt.Errorf("fund %q: units held must be positive, got %v", f.Name, f.Units)
	}
	return nil
}

// TotalValue returns the current position value (NAV × units).
func (f *Fund) TotalValue() Money {
	return NewMoneyFromFloat(f.NAV*f.Units, f.Currency)
}

// Gain returns the absolute and relative gain over the invested amount.
// The relative gain is zero when nothing was invested.
func (f *Fund) Gain() (Money, Percent) {
	gain := f.NAV*f.Units - f.Invested
	var pct Percent
	if f.Invested > 0 {
		pct = Percent(100 * gain / f.Invested)
	}
	return NewMoneyFromFloat(gain, f.Currency), pct
}

// Clone returns a deep copy of the fund.
//
// The refresh orchestrator mutates a clone so that a partial failure never
// corrupts the portfolio document held by the caller.
func (f *Fund) Clone() *Fund {
	c := *f
	c.History = slices.Clone(f.History)
	return &c
}

// PriceHistory returns the fund history converted back to per-unit prices.
// Entries are skipped when units are not set.
func (f *Fund) PriceHistory() *date.History[float64] {
	h := new(date.History[float64])
	if f.Units <= 0 {
		return h
	}
	for _, e := range f.History {
		h.Append(e.Date, e.Value/f.Units)
	}
	return h
}
