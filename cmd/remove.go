package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/etnz/misfondos"
	"github.com/google/subcommands"
)

type removeCmd struct {
	isin string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a fund position from the portfolio" }
func (*removeCmd) Usage() string {
	return `mifo remove -isin <ISIN>

  Removes the fund and its history from the portfolio document.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "ISIN of the fund to remove")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		return fail("could not load portfolio: %v", err)
	}

	fund := p.Fund(c.isin)
	if fund == nil {
		return fail("fund %q not found in the portfolio", c.isin)
	}
	p.Funds = slices.DeleteFunc(p.Funds, func(f *misfondos.Fund) bool { return f.ISIN == c.isin })
	p.RebuildAggregate()

	if err := SavePortfolio(p); err != nil {
		return fail("could not save portfolio: %v", err)
	}
	fmt.Printf("Removed %s (%s)\n", fund.Name, fund.ISIN)
	return subcommands.ExitSuccess
}
