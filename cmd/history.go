package cmd

import (
	"context"
	"flag"

	"github.com/etnz/misfondos/date"
	"github.com/etnz/misfondos/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	isin   string
	period string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the value history" }
func (*historyCmd) Usage() string {
	return `mifo history [-isin <ISIN>] [-period <monthly|quarterly|yearly>]

  Displays the rolling value history of one fund, or of the whole portfolio
  when no ISIN is given, downsampled to one row per period.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "ISIN of the fund; empty for the portfolio aggregate")
	f.StringVar(&c.period, "period", date.Monthly.String(), "row granularity: daily, weekly, monthly, quarterly or yearly")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		return fail("invalid -period: %v", err)
	}

	p, err := LoadPortfolio()
	if err != nil {
		return fail("could not load portfolio: %v", err)
	}

	if c.isin == "" {
		printMarkdown(renderer.AggregateMarkdown(p, period))
		return subcommands.ExitSuccess
	}

	fund := p.Fund(c.isin)
	if fund == nil {
		return fail("fund %q not found in the portfolio", c.isin)
	}
	printMarkdown(renderer.HistoryMarkdown(fund, period))
	return subcommands.ExitSuccess
}
