package coinjar

import (
	"fmt"
	"log"
	"strings"

	"github.com/etnz/coinjar/date"
)

// DefaultHistory is the number of undo steps a session keeps by default.
const DefaultHistory = 100

// Saver persists a journal.
type Saver interface {
	Save(j *Journal) error
}

// Result is what a command produced. Only the fields relevant to the command
// are set.
type Result struct {
	Command  Command
	Bookings []*Booking
	Accounts []AccountBalance
	Date     date.Date
	State    []byte // JSON dump of inspect
	Message  string
	Warning  string
	Quit     bool
}

// Session interprets commands against a journal.
//
// Mutating commands replace the current journal with a new version and push
// the previous one on a bounded history, so undo restores it exactly.
type Session struct {
	journal *Journal
	saved   *Journal
	history []*Journal
	limit   int
	today   date.Date
	date    date.Date
	context []*Booking
	saver   Saver
}

// NewSession starts a session on j. today anchors relative dates, saver may be
// nil when the session cannot write.
func NewSession(j *Journal, today date.Date, saver Saver) *Session {
	return &Session{
		journal: j,
		saved:   j,
		limit:   DefaultHistory,
		today:   today,
		date:    today,
		saver:   saver,
	}
}

// SetHistory bounds the number of undo steps. Zero or less disables undo.
func (s *Session) SetHistory(n int) {
	s.limit = max(n, 0)
	if over := len(s.history) - s.limit; over > 0 {
		s.history = s.history[over:]
	}
}

// Journal returns the current journal.
func (s *Session) Journal() *Journal { return s.journal }

// Date returns the session date.
func (s *Session) Date() date.Date { return s.date }

// Dirty reports whether the journal changed since it was last saved.
func (s *Session) Dirty() bool { return s.journal != s.saved }

// Context returns the bookings selected by the last reg.
func (s *Session) Context() []*Booking { return s.context }

// Exec parses and runs one command line. On error the session is unchanged.
func (s *Session) Exec(line string) (Result, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return Result{}, err
	}
	return s.Run(cmd)
}

// Run executes a parsed command.
func (s *Session) Run(cmd Command) (Result, error) {
	res := Result{Command: cmd}
	switch c := cmd.(type) {
	case RegCmd:
		s.context = s.journal.Match(c.Tokens...)
		res.Bookings = s.context

	case SplitCmd:
		b, err := s.split(c)
		if err != nil {
			return Result{}, err
		}
		res.Bookings = []*Booking{b}
		res.Message = "not committed"

	case DateCmd:
		if c.Expr != "" {
			d, err := s.parseDate(c.Expr)
			if err != nil {
				return Result{}, &CommandError{Command: c.Name(), Msg: "invalid date", Err: err}
			}
			s.date = d
		}
		res.Date = s.date

	case AccnsCmd:
		res.Accounts = s.journal.Balances("")

	case OpenCmd:
		next := s.journal.Open(c.Account)
		if next == s.journal {
			res.Message = fmt.Sprintf("%s is already open", c.Account)
			break
		}
		s.apply(next)
		res.Message = fmt.Sprintf("opened %s", c.Account)

	case SaveCmd:
		if s.saver == nil {
			return Result{}, &CommandError{Command: c.Name(), Msg: "no ledger file to write to"}
		}
		if err := s.saver.Save(s.journal); err != nil {
			return Result{}, &CommandError{Command: c.Name(), Msg: "write failed", Err: err}
		}
		s.saved = s.journal
		res.Message = fmt.Sprintf("saved %d bookings", s.journal.Len())

	case DelCmd:
		if len(s.context) == 0 {
			return Result{}, &CommandError{Command: c.Name(), Msg: "no booking selected, run reg first"}
		}
		b := s.context[len(s.context)-1]
		next, err := s.journal.Delete(b)
		if err != nil {
			return Result{}, &CommandError{Command: c.Name(), Msg: "cannot delete", Err: err}
		}
		s.apply(next)
		s.context = s.context[:len(s.context)-1]
		res.Bookings = []*Booking{b}
		res.Message = "deleted"

	case UndoCmd:
		n := len(s.history)
		if n == 0 {
			res.Warning = "nothing to undo"
			return res, nil
		}
		s.journal, s.history = s.history[n-1], s.history[:n-1]
		s.context = nil
		res.Message = "undone"

	case InspectCmd:
		state, err := s.inspect()
		if err != nil {
			return Result{}, err
		}
		res.State = state

	case QuitCmd:
		if s.Dirty() {
			res.Warning = "unsaved changes"
		}
		res.Quit = true

	default:
		return Result{}, &CommandError{Command: cmd.Name(), Msg: "not supported"}
	}
	return res, nil
}

// apply makes next the current journal, remembering the current one.
func (s *Session) apply(next *Journal) {
	if s.limit > 0 {
		if len(s.history) == s.limit {
			s.history = s.history[1:]
		}
		s.history = append(s.history, s.journal)
	}
	s.journal = next
}

// parseDate resolves named days against today and offsets against the
// session date.
func (s *Session) parseDate(expr string) (date.Date, error) {
	switch expr {
	case "today", "yesterday", "tomorrow":
		return date.ParseFuzzy(expr, s.today)
	}
	return date.ParseFuzzy(expr, s.date)
}

func (s *Session) split(c SplitCmd) (*Booking, error) {
	fail := func(msg string, err error) (*Booking, error) {
		return nil, &CommandError{Command: c.Name(), Msg: msg, Err: err}
	}
	lit, err := ParseMoney(c.Amount)
	if err != nil {
		return fail("invalid amount", err)
	}
	m, err := bindLiteral(s.journal.currencies, lit, false)
	if err != nil {
		return fail("invalid amount", err)
	}
	on := defaultSplitAccount
	if c.On != "" {
		if on, err = s.findAccount(c.On); err != nil {
			return fail("invalid on account", err)
		}
	}
	b := &Booking{
		Date:        s.date,
		Description: c.Description,
		Postings:    []Posting{{Account: on, Money: m}},
		Split:       &SplitDirective{Mode: c.Mode, Participants: c.Participants},
	}
	if c.From != "" {
		from, err := s.findAccount(c.From)
		if err != nil {
			return fail("invalid from account", err)
		}
		b.Postings = append(b.Postings, Posting{Account: from, Blank: true})
	}
	if err := ResolveSplit(b); err != nil {
		return fail("cannot split", err)
	}
	if c.From != "" {
		if err := InferBalance(b); err != nil {
			return fail("cannot balance", err)
		}
	}
	return b, nil
}

// findAccount resolves a split account against the journal. An account
// matching nothing is a new one and is used as written.
func (s *Session) findAccount(query Account) (Account, error) {
	found := s.journal.FindAccounts(query)
	switch len(found) {
	case 0:
		return query, nil
	case 1:
		return found[0], nil
	}
	names := make([]string, len(found))
	for i, a := range found {
		names[i] = string(a)
	}
	return "", fmt.Errorf("%q is ambiguous, candidates: %s", query, strings.Join(names, ", "))
}

func (s *Session) inspect() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", s.date)
	w.Append("today", s.today)
	if str, ok := s.saver.(fmt.Stringer); ok {
		w.Append("file", str.String())
	}
	w.Append("bookings", s.journal.Len())
	w.Append("accounts", len(s.journal.accounts))
	w.Append("contacts", len(s.journal.contacts))
	w.Append("currencies", len(s.journal.currencies.All()))
	w.Append("history", len(s.history))
	w.Append("historyLimit", s.limit)
	w.Append("dirty", s.Dirty())
	var selected []string
	for _, b := range s.context {
		selected = append(selected, b.Date.String()+" "+b.Description)
	}
	w.Optional("context", selected)
	b, err := w.MarshalJSON()
	if err != nil {
		log.Printf("inspect: %v", err)
		return nil, &CommandError{Command: "inspect", Msg: "cannot dump state", Err: err}
	}
	return b, nil
}
