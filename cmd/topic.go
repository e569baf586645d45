package cmd

import (
	"context"
	"flag"

	"github.com/etnz/coinjar/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `coinjar topic [<topic>...]

  Show documentation for the given topics, or the list of topics. Use '*' for
  every topic.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{""}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return fail("could not read documentation: %v", err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
