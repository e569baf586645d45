package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/coinjar"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	write bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into its canonical form"
}
func (*fmtCmd) Usage() string {
	return `coinjar fmt [-w]

  Validates the ledger file and prints it in canonical form: currencies first,
  then open directives, then one chapter per date. Splits are expanded, blank
  amounts are filled and amounts are aligned.

  With -w the ledger file is rewritten in place.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "rewrite the ledger file instead of printing it")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		return fail("%v", err)
	}
	if err := c.run(os.Stdout, j); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

func (c *fmtCmd) run(w io.Writer, j *coinjar.Journal) error {
	if !c.write {
		return encoder().Encode(w, j)
	}
	saver := coinjar.FileSaver{Path: LedgerPath(), Encoder: encoder()}
	if err := saver.Save(j); err != nil {
		return err
	}
	fmt.Fprintf(w, "Ledger file %q has been formatted.\n", saver.Path)
	return nil
}
