package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/coinjar"
	"github.com/etnz/coinjar/renderer"
	"github.com/google/subcommands"
)

type contactCmd struct {
	all bool
}

func (*contactCmd) Name() string     { return "contact" }
func (*contactCmd) Synopsis() string { return "show what a contact owes" }
func (*contactCmd) Usage() string {
	return `coinjar contact [-all] [<name>]

  Show every debt posting naming the contact with the running balance. A
  positive balance is owed by the contact, a negative one is owed to them.
  With -all, postings that are not debts (gifts, expenses) are listed too.

  Without a name, list every contact with what they owe.
`
}

func (c *contactCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "include postings that do not change the debt")
}

func (c *contactCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		return fail("%v", err)
	}
	md, err := c.run(j, strings.Join(f.Args(), " "))
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

func (c *contactCmd) run(j *coinjar.Journal, name string) (string, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	if name == "" {
		var b strings.Builder
		b.WriteString("## Contacts\n\n")
		contacts := j.Contacts()
		if len(contacts) == 0 {
			b.WriteString("_No contacts._\n")
		}
		for _, n := range contacts {
			b.WriteString("* " + n + ": " + j.Debt(n).String() + "\n")
		}
		return b.String(), nil
	}
	entries, err := j.Contact(name, c.all)
	if err != nil {
		return "", err
	}
	return renderer.RenderContact(renderer.NewContact(name, entries, c.all)), nil
}
