package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/misfondos"
	"github.com/etnz/misfondos/date"
	"github.com/etnz/misfondos/nav"
)

// fakeSearcher returns a canned response per ISIN, or an error.
type fakeSearcher struct {
	responses map[string]string
	errs      map[string]error
}

func (s *fakeSearcher) Search(_ context.Context, f *misfondos.Fund) (string, error) {
	if err := s.errs[f.ISIN]; err != nil {
		return "", err
	}
	return s.responses[f.ISIN], nil
}

func testPortfolio() *misfondos.Portfolio {
	p := misfondos.NewPortfolio("test")
	p.Funds = []*misfondos.Fund{
		{ISIN: "LU0996182563", Name: "Kaldemorgen", Currency: "EUR", Units: 10, Invested: 1000},
		{ISIN: "IE00B03HCZ61", Name: "Vanguard", Currency: "EUR", Units: 5, Invested: 2000},
	}
	return p
}

func TestRefreshUpdatesFunds(t *testing.T) {
	p := testPortfolio()
	s := &fakeSearcher{responses: map[string]string{
		"LU0996182563": `### JSON_START ###
{"current": {"nav": 112.34, "date": "2025-08-28", "currency": "EUR"}}
### JSON_END ###`,
		"IE00B03HCZ61": `### JSON_START ###
{"current": {"nav": 390.10, "date": "2025-08-28", "currency": "EUR"}}
### JSON_END ###`,
	}}

	opts := nav.Options{Today: date.New(2025, time.August, 28)}
	if err := refresh(context.Background(), p, s, p.Funds, 0, opts); err != nil {
		t.Fatalf("refresh returned %v", err)
	}

	f := p.Fund("LU0996182563")
	if f.NAV != 112.34 {
		t.Errorf("NAV = %v, want 112.34", f.NAV)
	}
	if want := date.New(2025, time.August, 28); f.NAVDate != want {
		t.Errorf("NAVDate = %s, want %s", f.NAVDate, want)
	}
	if len(f.History) != 1 || f.History[0].Value != 1123.40 {
		t.Errorf("history = %+v, want a single 1123.40 entry", f.History)
	}
	if f.Source == "" {
		t.Error("Source not stamped after a successful refresh")
	}
}

func TestRefreshIsolatesFailures(t *testing.T) {
	p := testPortfolio()
	s := &fakeSearcher{
		responses: map[string]string{
			"IE00B03HCZ61": `### JSON_START ###
{"current": {"nav": 390.10, "date": "2025-08-28", "currency": "EUR"}}
### JSON_END ###`,
		},
		errs: map[string]error{"LU0996182563": errors.New("quota exceeded")},
	}

	opts := nav.Options{Today: date.New(2025, time.August, 28)}
	err := refresh(context.Background(), p, s, p.Funds, 0, opts)
	if err == nil || !strings.Contains(err.Error(), "LU0996182563") {
		t.Fatalf("refresh error = %v, want it to name the failed fund", err)
	}

	if f := p.Fund("LU0996182563"); f.NAV != 0 {
		t.Errorf("failed fund NAV = %v, want untouched 0", f.NAV)
	}
	if f := p.Fund("IE00B03HCZ61"); f.NAV != 390.10 {
		t.Errorf("surviving fund NAV = %v, want 390.10", f.NAV)
	}
}

func TestRefreshEmptyResponseKeepsHistory(t *testing.T) {
	p := testPortfolio()
	prior := []misfondos.HistoryEntry{{Date: date.New(2025, time.July, 31), Value: 1100}}
	p.Funds[0].History = append([]misfondos.HistoryEntry(nil), prior...)

	s := &fakeSearcher{responses: map[string]string{
		"LU0996182563": "No he encontrado datos.",
		"IE00B03HCZ61": "Nada.",
	}}
	opts := nav.Options{Today: date.New(2025, time.August, 28)}
	if err := refresh(context.Background(), p, s, p.Funds, 0, opts); err != nil {
		t.Fatalf("refresh returned %v", err)
	}

	f := p.Fund("LU0996182563")
	if len(f.History) != 1 || f.History[0] != prior[0] {
		t.Errorf("history = %+v, want the prior entry untouched", f.History)
	}
	if f.NAV != 0 {
		t.Errorf("NAV = %v, want untouched 0", f.NAV)
	}
}
