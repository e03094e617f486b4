package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the portfolio document to a backup file" }
func (*exportCmd) Usage() string {
	return `mifo export [-o <file>]

  Writes the portfolio document as canonical JSON, to stdout by default.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Destination file; stdout when empty")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio()
	if err != nil {
		return fail("could not load portfolio: %v", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fail("could not encode portfolio: %v", err)
	}
	data = append(data, '\n')

	if c.output == "" {
		os.Stdout.Write(data)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, data, 0644); err != nil {
		return fail("could not write %q: %v", c.output, err)
	}
	fmt.Printf("Exported portfolio to %s\n", c.output)
	return subcommands.ExitSuccess
}
