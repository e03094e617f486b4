// Package cmd implements the CLI application to manage a fund portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/misfondos"
	"github.com/google/subcommands"
)

// Commands lists the subcommands a main package registers.
var Commands = []subcommands.Command{
	&addCmd{},
	&removeCmd{},
	&summaryCmd{},
	&showCmd{},
	&historyCmd{},
	&refreshCmd{},
	&exportCmd{},
	&importCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "cartera.json", "Path to the portfolio document (JSON format)")

// LoadPortfolio opens the app portfolio document. A missing file yields an
// empty portfolio so that the first 'add' works out of the box.
func LoadPortfolio() (*misfondos.Portfolio, error) {
	p, err := misfondos.Load(*portfolioFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, portfolio document does not exist, starting from an empty one")
		return misfondos.NewPortfolio("Mi Cartera"), nil
	}
	return p, err
}

// SavePortfolio writes the app portfolio document back.
func SavePortfolio(p *misfondos.Portfolio) error {
	return misfondos.Save(*portfolioFile, p)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering is not possible.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Println(doc)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure exit status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
