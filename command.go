package coinjar

import (
	"strings"
)

// Command is a parsed interpreter command.
type Command interface {
	Name() string
}

// RegCmd selects the bookings matching all tokens.
type RegCmd struct{ Tokens []string }

// SplitCmd computes a split without committing it.
type SplitCmd struct {
	Amount       string
	On           Account // empty for the default expense account
	From         Account // optional, inferred to balance the booking
	Description  string
	Mode         SplitMode
	Participants []string
}

// DateCmd moves the session date.
type DateCmd struct{ Expr string }

// AccnsCmd lists accounts and their balances.
type AccnsCmd struct{}

// OpenCmd declares an account.
type OpenCmd struct{ Account Account }

// SaveCmd writes the journal.
type SaveCmd struct{}

// DelCmd deletes the last booking selected by reg.
type DelCmd struct{}

// UndoCmd restores the journal before the last mutation.
type UndoCmd struct{}

// InspectCmd dumps the session state.
type InspectCmd struct{}

// QuitCmd ends the session.
type QuitCmd struct{}

func (RegCmd) Name() string     { return "reg" }
func (SplitCmd) Name() string   { return "split" }
func (DateCmd) Name() string    { return "date" }
func (AccnsCmd) Name() string   { return "accns" }
func (OpenCmd) Name() string    { return "open" }
func (SaveCmd) Name() string    { return "save" }
func (DelCmd) Name() string     { return "del" }
func (UndoCmd) Name() string    { return "undo" }
func (InspectCmd) Name() string { return "inspect" }
func (QuitCmd) Name() string    { return "quit" }

// CommandNames lists the command names and their aliases.
var CommandNames = map[string][]string{
	"reg":     {"register"},
	"split":   nil,
	"date":    nil,
	"accns":   {"accounts"},
	"open":    nil,
	"save":    {"write", "w", "s"},
	"del":     {"delete"},
	"undo":    {"u"},
	"inspect": {"ins"},
	"quit":    {"q", "exit"},
}

func canonicalCommand(word string) string {
	word = strings.ToLower(word)
	for name, aliases := range CommandNames {
		if word == name {
			return name
		}
		for _, a := range aliases {
			if word == a {
				return name
			}
		}
	}
	return ""
}

// ParseCommand parses one interpreter line.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, &CommandError{Msg: "empty command"}
	}
	name := canonicalCommand(fields[0])
	args := fields[1:]
	noArgs := func(c Command) (Command, error) {
		if len(args) > 0 {
			return nil, &CommandError{Command: name, Msg: "takes no argument"}
		}
		return c, nil
	}

	switch name {
	case "reg":
		return RegCmd{Tokens: args}, nil
	case "split":
		return parseSplitCmd(args)
	case "date":
		return DateCmd{Expr: strings.Join(args, " ")}, nil
	case "open":
		if len(args) == 0 {
			return nil, &CommandError{Command: name, Msg: "missing account"}
		}
		acc, err := ParseAccount(strings.Join(args, " "))
		if err != nil {
			return nil, &CommandError{Command: name, Msg: "invalid account", Err: err}
		}
		return OpenCmd{Account: acc}, nil
	case "accns":
		return noArgs(AccnsCmd{})
	case "save":
		return noArgs(SaveCmd{})
	case "del":
		return noArgs(DelCmd{})
	case "undo":
		return noArgs(UndoCmd{})
	case "inspect":
		return noArgs(InspectCmd{})
	case "quit":
		return noArgs(QuitCmd{})
	}
	return nil, &CommandError{Command: fields[0], Msg: "unknown command"}
}

var splitKeywords = map[string]bool{"on": true, "from": true, "for": true, "with": true, "by": true}

// defaultSplitAccount receives the payer's share when no account is given.
const defaultSplitAccount Account = "expense"

// parseSplitCmd reads
//
//	<money> [on <account>] [from <account>] [for <description>] [with @A @B... | by @A]
//
// Accounts are resolved against the journal when the command runs.
func parseSplitCmd(args []string) (Command, error) {
	fail := func(msg string, err error) (Command, error) {
		return nil, &CommandError{Command: "split", Msg: msg, Err: err}
	}
	groups := map[string][]string{}
	key := ""
	for _, a := range args {
		kw := strings.ToLower(a)
		if splitKeywords[kw] {
			if _, dup := groups[kw]; dup {
				return fail("duplicate "+kw, nil)
			}
			key = kw
			groups[key] = []string{}
			continue
		}
		groups[key] = append(groups[key], a)
	}

	var c SplitCmd
	c.Amount = strings.Join(groups[""], " ")
	if c.Amount == "" {
		return fail("missing amount", nil)
	}
	if _, err := ParseMoney(c.Amount); err != nil {
		return fail("invalid amount", err)
	}
	for _, kw := range []string{"on", "from"} {
		words, ok := groups[kw]
		if !ok {
			continue
		}
		acc, err := ParseAccount(strings.Join(words, " "))
		if err != nil {
			return fail("invalid "+kw+" account", err)
		}
		if kw == "on" {
			c.On = acc
		} else {
			c.From = acc
		}
	}
	c.Description = strings.Join(groups["for"], " ")
	if c.Description == "" {
		c.Description = "split"
	}

	with, hasWith := groups["with"]
	by, hasBy := groups["by"]
	switch {
	case hasWith && hasBy:
		return fail("use either with or by", nil)
	case hasBy:
		c.Mode, c.Participants = SplitBy, joinParticipants(by)
	case hasWith:
		c.Mode, c.Participants = SplitEven, joinParticipants(with)
	default:
		return fail("missing participants, use with @A @B or by @A", nil)
	}
	if _, err := splitContacts(c.Participants); err != nil {
		return fail("invalid participants", err)
	}
	if c.Mode == SplitBy && len(c.Participants) != 1 {
		return fail("by takes exactly one contact", nil)
	}
	return c, nil
}

// joinParticipants glues words back into "@Name" participants: a word not
// starting with '@' continues the previous name.
func joinParticipants(words []string) []string {
	var out []string
	for _, w := range words {
		w = strings.Trim(w, ",")
		if w == "" {
			continue
		}
		if n := len(out); n > 0 && !strings.HasPrefix(w, contactMarker) {
			out[n-1] += " " + w
			continue
		}
		out = append(out, w)
	}
	return out
}
