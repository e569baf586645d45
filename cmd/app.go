// Package cmd implements the coinjar command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/coinjar"
	"github.com/etnz/coinjar/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Configure and Register, then Execute on the selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fmtCmd{}, "ledger")
	c.Register(&balCmd{}, "reports")
	c.Register(&regCmd{}, "reports")
	c.Register(&contactCmd{}, "reports")
	c.Register(&accnsCmd{}, "reports")
	c.Register(&replCmd{}, "interactive")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cfg = config.Default()

var ledgerFile = flag.String("ledger", "", "Path to the ledger file, defaults to the configured one")

// Configure sets the settings used by every subcommand.
func Configure(c *config.Config) { cfg = c }

// LedgerPath returns the ledger file selected by the -ledger flag or the
// configuration.
func LedgerPath() string {
	if *ledgerFile != "" {
		return *ledgerFile
	}
	return cfg.LedgerFile
}

func options() coinjar.Options { return coinjar.Options{Closed: cfg.ClosedCurrencies} }

func encoder() coinjar.Encoder { return coinjar.Encoder{AmountColumn: cfg.AmountColumn} }

// DecodeJournal loads the application ledger file.
func DecodeJournal() (*coinjar.Journal, error) {
	return coinjar.LoadFile(LedgerPath(), options())
}

// printMarkdown renders md for the terminal, or prints it raw when it cannot.
func printMarkdown(md string) { fprintMarkdown(os.Stdout, md) }

func fprintMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(w, md)
		return
	}
	fmt.Fprint(w, out)
}

// fail reports err on stderr.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
