package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/misfondos"
	"github.com/etnz/misfondos/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func samplePortfolio() *misfondos.Portfolio {
	p := misfondos.NewPortfolio("Mi Cartera")
	p.Info.LastUpdate = time.Date(2025, 8, 28, 18, 0, 0, 0, time.UTC)
	p.Funds = []*misfondos.Fund{
		{
			ISIN:     "LU0996182563",
			Name:     "DWS Concept Kaldemorgen",
			Manager:  "DWS",
			Currency: "EUR",
			Units:    10,
			Invested: 1000,
			NAV:      112.34,
			NAVDate:  date.New(2025, time.August, 28),
			History: []misfondos.HistoryEntry{
				{Date: date.New(2025, time.June, 30), Value: 1100},
				{Date: date.New(2025, time.July, 31), Value: 1110.50},
			},
		},
		{
			ISIN:     "IE00B03HCZ61",
			Name:     "Vanguard Global Stock",
			Currency: "EUR",
			Units:    5,
			Invested: 2000,
			NAV:      390.10,
			NAVDate:  date.New(2025, time.August, 27),
		},
	}
	p.RebuildAggregate()
	return p
}

// headings parses rendered markdown and returns the text of every heading.
// It doubles as a well-formedness check: goldmark must parse the output.
func headings(t *testing.T, doc string) []string {
	t.Helper()

	src := []byte(doc)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var out []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var b strings.Builder
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					b.Write(txt.Value(src))
				}
			}
			out = append(out, b.String())
		}
		return ast.WalkContinue, nil
	})
	return out
}

func TestSummaryMarkdown(t *testing.T) {
	got := SummaryMarkdown(samplePortfolio())

	if hs := headings(t, got); len(hs) != 1 || hs[0] != "Mi Cartera" {
		t.Errorf("headings = %v, want [Mi Cartera]", hs)
	}
	for _, want := range []string{"LU0996182563", "IE00B03HCZ61", "Total", "+12.34%"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestSummaryMarkdownEmpty(t *testing.T) {
	got := SummaryMarkdown(misfondos.NewPortfolio(""))
	if !strings.Contains(got, "No funds") {
		t.Errorf("empty summary = %q, want a no-funds notice", got)
	}
}

func TestFundMarkdown(t *testing.T) {
	p := samplePortfolio()
	got := FundMarkdown(p.Funds[0])

	hs := headings(t, got)
	if len(hs) != 2 || hs[0] != "DWS Concept Kaldemorgen" || hs[1] != "History for LU0996182563" {
		t.Errorf("headings = %v, want the fund name and its history section", hs)
	}
	for _, want := range []string{"LU0996182563", "112.34", "2025-07-31", "DWS"} {
		if !strings.Contains(got, want) {
			t.Errorf("fund view missing %q:\n%s", want, got)
		}
	}
}

func TestAggregateMarkdown(t *testing.T) {
	got := AggregateMarkdown(samplePortfolio(), date.Monthly)
	// only the first fund has history, so the aggregate mirrors it
	for _, want := range []string{"2025-06-30", "1100.00", "2025-07-31", "1110.50"} {
		if !strings.Contains(got, want) {
			t.Errorf("aggregate view missing %q:\n%s", want, got)
		}
	}
}

func TestHistoryMarkdownDownsample(t *testing.T) {
	f := &misfondos.Fund{
		ISIN:     "LU0996182563",
		Currency: "EUR",
		Units:    1,
		History: []misfondos.HistoryEntry{
			{Date: date.New(2025, time.January, 31), Value: 100},
			{Date: date.New(2025, time.February, 28), Value: 101},
			{Date: date.New(2025, time.March, 31), Value: 102},
			{Date: date.New(2025, time.April, 30), Value: 103},
			{Date: date.New(2025, time.May, 31), Value: 104},
			{Date: date.New(2025, time.June, 30), Value: 105},
			{Date: date.New(2025, time.July, 15), Value: 106},
		},
	}

	got := HistoryMarkdown(f, date.Quarterly)
	// one row per quarter: Q1 ends at March, Q2 at June, Q3 has July only
	for _, want := range []string{"2025-03-31", "2025-06-30", "2025-07-15"} {
		if !strings.Contains(got, want) {
			t.Errorf("quarterly view missing %q:\n%s", want, got)
		}
	}
	for _, dropped := range []string{"2025-01-31", "2025-02-28", "2025-04-30", "2025-05-31"} {
		if strings.Contains(got, dropped) {
			t.Errorf("quarterly view still holds %q:\n%s", dropped, got)
		}
	}

	if got := HistoryMarkdown(f, date.Yearly); !strings.Contains(got, "2025-07-15") ||
		strings.Contains(got, "2025-06-30") {
		t.Errorf("yearly view should keep only the last entry:\n%s", got)
	}
}
