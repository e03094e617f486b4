package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/misfondos"
	"github.com/google/subcommands"
)

type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the portfolio document from a backup file" }
func (*importCmd) Usage() string {
	return `mifo import -i <file>

  Reads a previously exported document, validates every fund in it, and
  replaces the current portfolio file.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Backup file to import")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		return fail("missing -i <file>")
	}

	p, err := misfondos.Load(c.input)
	if err != nil {
		return fail("could not read backup: %v", err)
	}
	for _, fund := range p.Funds {
		if err := fund.Validate(); err != nil {
			return fail("backup rejected: %v", err)
		}
	}
	p.RebuildAggregate()

	if err := SavePortfolio(p); err != nil {
		return fail("could not save portfolio: %v", err)
	}
	fmt.Printf("Imported %d fund(s) from %s into %s\n", len(p.Funds), c.input, *portfolioFile)
	return subcommands.ExitSuccess
}
