package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/etnz/coinjar"
	"github.com/etnz/coinjar/date"
	"github.com/etnz/coinjar/renderer"
	"github.com/google/subcommands"
)

const prompt = "coinjar> "

type replCmd struct {
	raw bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive session on the ledger" }
func (*replCmd) Usage() string {
	return `coinjar repl [-raw]

  Read commands from the standard input, one per line, and apply them to the
  ledger. Changes stay in memory until save. See 'coinjar topic commands'.

  The ledger file is created on the first save if it does not exist.
`
}

func (c *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print plain markdown instead of styled output")
}

func (c *replCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := LedgerPath()
	j, err := coinjar.LoadOrCreate(path, options())
	if err != nil {
		return fail("%v", err)
	}
	s := coinjar.NewSession(j, date.FromTime(time.Now()), coinjar.FileSaver{Path: path, Encoder: encoder()})
	s.SetHistory(cfg.History)

	show := fprintMarkdown
	if c.raw {
		show = func(w io.Writer, md string) { fmt.Fprint(w, md) }
	}
	if err := repl(os.Stdin, os.Stdout, s, show); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

// repl runs the session on every line of in until quit or the end of input.
// Quitting with unsaved changes needs a second quit.
func repl(in io.Reader, out io.Writer, s *coinjar.Session, show func(io.Writer, string)) error {
	scanner := bufio.NewScanner(in)
	warned := false
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		res, err := s.Exec(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			warned = false
			continue
		}
		if res.Quit {
			if res.Warning == "" || warned {
				return nil
			}
			warned = true
			show(out, renderer.RenderResult(res)+"\nRun quit again to discard them.\n")
			continue
		}
		warned = false
		show(out, renderer.RenderResult(res))
	}
}
