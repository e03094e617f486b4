package cmd

import (
	"context"
	"flag"

	"github.com/etnz/misfondos/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a portfolio performance summary" }
func (*summaryCmd) Usage() string {
	return `mifo summary

  Displays one line per fund with its current value and gain, and the
  portfolio total.
`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		return fail("could not load portfolio: %v", err)
	}
	printMarkdown(renderer.SummaryMarkdown(p))
	return subcommands.ExitSuccess
}
