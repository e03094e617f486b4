package cmd

import (
	"context"
	"flag"

	"github.com/etnz/misfondos/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	isin string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the detail of one fund" }
func (*showCmd) Usage() string {
	return `mifo show -isin <ISIN>

  Displays the fund's identifying data, current valuation, gain and history.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "ISIN of the fund to display")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		return fail("could not load portfolio: %v", err)
	}
	fund := p.Fund(c.isin)
	if fund == nil {
		return fail("fund %q not found in the portfolio", c.isin)
	}
	printMarkdown(renderer.FundMarkdown(fund))
	return subcommands.ExitSuccess
}
