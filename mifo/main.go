// Command mifo tracks a personal fund portfolio and refreshes its NAV
// histories from web search.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/misfondos/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI to the shell. It runs (and exits) only when
// invoked by a shell completion hook.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"portfolio-file": predict.Files("*.json"),
	},
	Sub: map[string]*complete.Command{
		"add": {Flags: map[string]complete.Predictor{
			"isin": predict.Nothing, "name": predict.Nothing,
			"units": predict.Nothing, "invested": predict.Nothing,
			"currency": predict.Set{"EUR", "USD"},
		}},
		"remove":  {Flags: map[string]complete.Predictor{"isin": predict.Nothing}},
		"summary": {},
		"show":    {Flags: map[string]complete.Predictor{"isin": predict.Nothing}},
		"history": {Flags: map[string]complete.Predictor{
			"isin":   predict.Nothing,
			"period": predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"},
		}},
		"refresh": {Flags: map[string]complete.Predictor{
			"isin": predict.Nothing, "interpolate": predict.Nothing,
		}},
		"export": {Flags: map[string]complete.Predictor{"o": predict.Files("*.json")}},
		"import": {Flags: map[string]complete.Predictor{"i": predict.Files("*.json")}},
		"topic":  {Args: predict.Set{"readme", "getting-started", "document", "refresh"}},
	},
}

func main() {
	completion.Complete("mifo")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
