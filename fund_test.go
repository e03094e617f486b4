package misfondos

import (
	"testing"
	"time"

	"github.com/etnz/misfondos/date"
)

func sampleFund() *Fund {
	return &Fund{
		ISIN:     "LU0996182563",
		Name:     "DWS Concept Kaldemorgen",
		Currency: "EUR",
		Units:    10,
		Invested: 1000,
		NAV:      112.34,
		NAVDate:  date.New(2025, time.August, 28),
		History: []HistoryEntry{
			{Date: date.New(2025, time.June, 30), Value: 1100},
			{Date: date.New(2025, time.July, 31), Value: 1110},
		},
	}
}

func TestFundValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Fund)
		valid bool
	}{
		{"valid", func(f *Fund) {}, true},
		{"bad isin", func(f *Fund) { f.ISIN = "XX123" }, false},
		{"bad currency", func(f *Fund) { f.Currency = "euros" }, false},
		{"no units", func(f *Fund) { f.Units = 0 }, false},
		{"negative units", func(f *Fund) { f.Units = -1 }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := sampleFund()
			tc.mod(f)
			err := f.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tc.valid && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestFundGain(t *testing.T) {
	f := sampleFund()
	gain, pct := f.Gain()
	if got := gain.AsFloat(); got != 123.40 {
		t.Errorf("gain = %v, want 123.40", got)
	}
	if !pct.Equal(12.34) {
		t.Errorf("pct = %v, want 12.34%%", pct)
	}

	f.Invested = 0
	_, pct = f.Gain()
	if pct != 0 {
		t.Errorf("pct with nothing invested = %v, want 0", pct)
	}
}

func TestFundClone(t *testing.T) {
	f := sampleFund()
	c := f.Clone()

	c.NAV = 999
	c.History[0].Value = 0
	c.History = append(c.History, HistoryEntry{Date: date.New(2025, time.August, 28), Value: 1123.4})

	if f.NAV != 112.34 {
		t.Errorf("original NAV changed to %v", f.NAV)
	}
	if f.History[0].Value != 1100 || len(f.History) != 2 {
		t.Errorf("original history changed: %+v", f.History)
	}
}

func TestFundPriceHistory(t *testing.T) {
	f := sampleFund()
	h := f.PriceHistory()
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	if v, ok := h.Get(date.New(2025, time.June, 30)); !ok || v != 110 {
		t.Errorf("price at 2025-06-30 = %v, %v, want 110, true", v, ok)
	}

	f.Units = 0
	if got := f.PriceHistory().Len(); got != 0 {
		t.Errorf("PriceHistory with no units has %d entries, want 0", got)
	}
}
