package misfondos

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/etnz/misfondos/date"
)

// AggregateRetention bounds the portfolio-level aggregate history persisted
// in the document (the "historico_24m" field, a 24-month view).
const AggregateRetention = 24

// Info holds the portfolio document header.
type Info struct {
	Name       string    `json:"nombre"`
	LastUpdate time.Time `json:"ultima_actualizacion"`
}

// Portfolio is the root of the persisted document: the fund list plus the
// portfolio-level aggregate history.
type Portfolio struct {
	Info      Info           `json:"info_cartera"`
	Funds     []*Fund        `json:"fondos"`
	Aggregate []HistoryEntry `json:"historico_24m,omitempty"`
}

// NewPortfolio returns an empty named portfolio.
func NewPortfolio(name string) *Portfolio {
	return &Portfolio{Info: Info{Name: name, LastUpdate: time.Now()}}
}

// Fund returns the fund with the given ISIN, or nil.
func (p *Portfolio) Fund(isin string) *Fund {
	for _, f := range p.Funds {
		if f.ISIN == isin {
			return f
		}
	}
	return nil
}

// AddFund validates and appends a fund. A duplicate ISIN is an error.
func (p *Portfolio) AddFund(f *Fund) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if p.Fund(f.ISIN) != nil {
		return fmt.Errorf("fund %s already exists in the portfolio", f.ISIN)
	}
	p.Funds = append(p.Funds, f)
	return nil
}

// Replace swaps the stored fund carrying the same ISIN for the given one.
// It is how the refresh orchestrator commits a successfully updated clone.
func (p *Portfolio) Replace(f *Fund) error {
	for i, old := range p.Funds {
		if old.ISIN == f.ISIN {
			p.Funds[i] = f
			return nil
		}
	}
	return fmt.Errorf("fund %s not found in the portfolio", f.ISIN)
}

// TotalValue sums the current value of all funds.
//
// Funds quoted in a different currency than the first one are summed at face
// value; the document has historically been single-currency (EUR).
func (p *Portfolio) TotalValue() Money {
	if len(p.Funds) == 0 {
		return NewMoneyFromFloat(0, "EUR")
	}
	total := 0.0
	for _, f := range p.Funds {
		total += f.NAV * f.Units
	}
	return NewMoneyFromFloat(total, p.Funds[0].Currency)
}

// RebuildAggregate recomputes the portfolio-level history by summing every
// fund's history per date, and caps it at AggregateRetention entries.
func (p *Portfolio) RebuildAggregate() {
	sum := new(date.History[float64])
	for _, f := range p.Funds {
		for _, e := range f.History {
			sum.AppendAdd(e.Date, e.Value)
		}
	}
	sum.Truncate(AggregateRetention)

	p.Aggregate = p.Aggregate[:0]
	for on, v := range sum.Values() {
		p.Aggregate = append(p.Aggregate, HistoryEntry{Date: on, Value: v})
	}
}

// Load reads a portfolio document from a JSON file.
func Load(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read portfolio file %q: %w", path, err)
	}
	p := new(Portfolio)
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("cannot decode portfolio file %q: %w", path, err)
	}
	return p, nil
}

// Save writes the portfolio document to a JSON file in a canonical,
// human-diffable form.
func Save(path string, p *Portfolio) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode portfolio: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write portfolio file %q: %w", path, err)
	}
	return nil
}
