// Command coinjar keeps a plain-text journal of shared expenses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/coinjar/cmd"
	"github.com/etnz/coinjar/config"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var envFile = flag.String("env", "", "Path to a .env file, ./.env is read when present")

// completion describes the command line for shell completion.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"fmt":      {Flags: map[string]complete.Predictor{"w": predict.Nothing}},
		"bal":      {Args: predict.Something},
		"reg":      {Flags: map[string]complete.Predictor{"s": predict.Something, "e": predict.Something}},
		"contact":  {Flags: map[string]complete.Predictor{"all": predict.Nothing}},
		"accns":    {},
		"repl":     {Flags: map[string]complete.Predictor{"raw": predict.Nothing}},
		"topic":    {Args: predict.Set{"ledger", "currency", "split", "commands", "*"}},
		"help":     {},
		"flags":    {},
		"commands": {},
	},
	Flags: map[string]complete.Predictor{
		"ledger": predict.Files("*.ledger"),
		"env":    predict.Files("*.env"),
	},
}

func main() {
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	cmd.Configure(cfg)

	os.Exit(int(commander.Execute(context.Background())))
}
