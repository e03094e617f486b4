package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/etnz/misfondos"
	"github.com/etnz/misfondos/gemini"
	"github.com/etnz/misfondos/nav"
	"github.com/google/subcommands"
)

// searcher is the provider side of a refresh: it returns the raw response
// text for one fund.
type searcher interface {
	Search(ctx context.Context, f *misfondos.Fund) (string, error)
}

// refreshCmd holds the flags for the 'refresh' subcommand.
type refreshCmd struct {
	isin        string
	delay       time.Duration
	interpolate bool
	retention   int
	model       string
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "update NAVs and histories from web search" }
func (*refreshCmd) Usage() string {
	return `mifo refresh [-isin <ISIN>] [-interpolate]

  Queries Gemini (grounded with Google Search) for each fund's current NAV
  and price history, reconciles the findings with the stored history, and
  saves the document. Funds are refreshed one at a time with a pause in
  between to stay under the provider's rate limits.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "Refresh a single fund instead of the whole portfolio")
	f.DurationVar(&c.delay, "delay", 5*time.Second, "Pause between two fund lookups")
	f.BoolVar(&c.interpolate, "interpolate", false, "Fill month-end gaps between sparse history points")
	f.IntVar(&c.retention, "retention", nav.DefaultRetention, "Maximum history entries kept per fund")
	f.StringVar(&c.model, "model", gemini.DefaultModel, "Gemini model to query")
}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		return fail("could not load portfolio: %v", err)
	}

	funds := p.Funds
	if c.isin != "" {
		fund := p.Fund(c.isin)
		if fund == nil {
			return fail("fund %q not found in the portfolio", c.isin)
		}
		funds = []*misfondos.Fund{fund}
	}
	if len(funds) == 0 {
		return fail("no funds to refresh, add one first")
	}

	provider, err := gemini.New(ctx)
	if err != nil {
		return fail("%v", err)
	}
	provider.Model = c.model

	opts := nav.Options{Retention: c.retention, Interpolate: c.interpolate}
	err = refresh(ctx, p, provider, funds, c.delay, opts)

	p.RebuildAggregate()
	p.Info.LastUpdate = time.Now()
	if saveErr := SavePortfolio(p); saveErr != nil {
		return fail("could not save portfolio: %v", saveErr)
	}

	if err != nil {
		return fail("some funds could not be refreshed: %v", err)
	}
	fmt.Printf("Refreshed %d fund(s) in %s\n", len(funds), *portfolioFile)
	return subcommands.ExitSuccess
}

// refresh updates the given funds sequentially, pausing between lookups.
// Each fund is reconciled on a clone and committed only on success, so one
// failure never disturbs the others. All failures are joined and returned.
func refresh(ctx context.Context, p *misfondos.Portfolio, s searcher, funds []*misfondos.Fund, delay time.Duration, opts nav.Options) error {
	var errs []error
	for i, f := range funds {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(append(errs, ctx.Err())...)
			case <-time.After(delay):
			}
		}

		clone := f.Clone()
		raw, err := s.Search(ctx, clone)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.ISIN, err))
			continue
		}

		res := nav.Reconcile(raw, nav.Snapshot{Units: clone.Units, History: clone.History}, opts)
		if res.Currency != "" && res.Currency != clone.Currency {
			log.Printf("%s: response quoted in %s, fund held in %s; keeping the values as-is", f.ISIN, res.Currency, clone.Currency)
		}
		res.Apply(clone)
		if err := p.Replace(clone); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.ISIN, err))
			continue
		}
		log.Printf("%s: %s", f.ISIN, res.Summary)
	}
	return errors.Join(errs...)
}
