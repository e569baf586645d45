package cmd

import (
	"context"
	"flag"

	"github.com/etnz/coinjar"
	"github.com/etnz/coinjar/renderer"
	"github.com/google/subcommands"
)

type balCmd struct{}

func (*balCmd) Name() string     { return "bal" }
func (*balCmd) Synopsis() string { return "show account balances" }
func (*balCmd) Usage() string {
	return `coinjar bal [<prefix>]

  Show the balance of every account under prefix, and their total. Without a
  prefix every account is listed.

Usage Examples:
# What is left in the bank accounts
$ coinjar bal assets/bank
`
}

func (c *balCmd) SetFlags(f *flag.FlagSet) {}

func (c *balCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		return fail("bal takes at most one prefix")
	}
	j, err := DecodeJournal()
	if err != nil {
		return fail("%v", err)
	}
	md, err := c.run(j, f.Arg(0))
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

func (c *balCmd) run(j *coinjar.Journal, prefix string) (string, error) {
	var acc coinjar.Account
	if prefix != "" {
		var err error
		if acc, err = coinjar.ParseAccount(prefix); err != nil {
			return "", err
		}
	}
	return renderer.RenderAccounts(renderer.NewAccounts(string(acc), j.Balances(acc))), nil
}
