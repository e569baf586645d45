package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/etnz/coinjar"
	"github.com/etnz/coinjar/date"
	"github.com/etnz/coinjar/renderer"
	"github.com/google/subcommands"
)

type regCmd struct {
	start string
	end   string
}

func (*regCmd) Name() string     { return "reg" }
func (*regCmd) Synopsis() string { return "list bookings" }
func (*regCmd) Usage() string {
	return `coinjar reg [-s <date>] [-e <date>] [<token>...]

  List the bookings whose description or accounts contain every token,
  ignoring case, one row per posting. Dates accept the same expressions as the
  interactive date command, relative to today.

Usage Examples:
# Everything about John last month
$ coinjar reg -s -1m @John
`
}

func (c *regCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "first day to list")
	f.StringVar(&c.end, "e", "", "last day to list")
}

func (c *regCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		return fail("%v", err)
	}
	md, err := c.run(j, date.FromTime(time.Now()), f.Args())
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

func (c *regCmd) run(j *coinjar.Journal, today date.Date, tokens []string) (string, error) {
	period, err := date.ParseRange(c.start, c.end, today)
	if err != nil {
		return "", err
	}
	var selected []*coinjar.Booking
	for _, b := range j.Match(tokens...) {
		if period.Contains(b.Date) {
			selected = append(selected, b)
		}
	}
	r := renderer.NewRegister("Register", selected)
	if c.start != "" || c.end != "" {
		r.Range = period.String()
	}
	return renderer.RenderRegister(r), nil
}
