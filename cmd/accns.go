package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/coinjar"
	"github.com/google/subcommands"
)

type accnsCmd struct{}

func (*accnsCmd) Name() string     { return "accns" }
func (*accnsCmd) Synopsis() string { return "list accounts" }
func (*accnsCmd) Usage() string {
	return `coinjar accns

  List every account used or opened in the ledger.
`
}

func (c *accnsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(c.run(j))
	return subcommands.ExitSuccess
}

func (c *accnsCmd) run(j *coinjar.Journal) string {
	var b strings.Builder
	b.WriteString("## Accounts\n\n")
	accounts := j.Accounts()
	if len(accounts) == 0 {
		b.WriteString("_No accounts._\n")
	}
	for _, a := range accounts {
		b.WriteString("* `" + string(a) + "`\n")
	}
	return b.String()
}
