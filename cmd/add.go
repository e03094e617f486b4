package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/misfondos"
	"github.com/etnz/misfondos/date"
	"github.com/google/subcommands"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	isin     string
	name     string
	units    float64
	invested float64
	currency string
	manager  string
	category string
	fees     float64
	bought   string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a fund position to the portfolio" }
func (*addCmd) Usage() string {
	return `mifo add -isin <ISIN> -name <name> -units <n> -invested <amount> [-currency EUR]

  Adds a fund position to the portfolio document. The NAV and history are
  filled in later by 'mifo refresh'.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "ISIN identifying the fund")
	f.StringVar(&c.name, "name", "", "Fund name")
	f.Float64Var(&c.units, "units", 0, "Units held")
	f.Float64Var(&c.invested, "invested", 0, "Total amount invested")
	f.StringVar(&c.currency, "currency", "EUR", "Quote currency (ISO 4217)")
	f.StringVar(&c.manager, "manager", "", "Management company")
	f.StringVar(&c.category, "category", "", "Fund category")
	f.Float64Var(&c.fees, "fees", 0, "Purchase fees")
	f.StringVar(&c.bought, "bought", "", "Purchase date (YYYY-MM-DD, defaults to today)")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bought := date.Today()
	if c.bought != "" {
		var err error
		if bought, err = date.Parse(c.bought); err != nil {
			return fail("invalid purchase date: %v", err)
		}
	}

	fund := &misfondos.Fund{
		ISIN:         c.isin,
		Name:         c.name,
		Category:     c.category,
		Manager:      c.manager,
		PurchaseDate: bought,
		Invested:     c.invested,
		Currency:     c.currency,
		Units:        c.units,
		Fees:         c.fees,
	}

	p, err := LoadPortfolio()
	if err != nil {
		return fail("could not load portfolio: %v", err)
	}
	if err := p.AddFund(fund); err != nil {
		return fail("%v", err)
	}
	if err := SavePortfolio(p); err != nil {
		return fail("could not save portfolio: %v", err)
	}

	fmt.Printf("Added %s (%s) to %s\n", fund.Name, fund.ISIN, *portfolioFile)
	return subcommands.ExitSuccess
}
