package coinjar

import (
	"strings"

	"github.com/etnz/coinjar/date"
)

// Posting is one account line of a booking.
type Posting struct {
	Account Account
	Money   Money
	// Blank is true when the amount was omitted in the source. Once the
	// booking is resolved Money holds the inferred amount.
	Blank bool
}

// SplitMode selects how a split directive distributes the funding amount.
type SplitMode int

const (
	// SplitEven shares the amount equally between the payer and the contacts.
	SplitEven SplitMode = iota
	// SplitBy charges the whole amount to a single contact.
	SplitBy
)

func (m SplitMode) String() string {
	if m == SplitBy {
		return "by"
	}
	return "even"
}

// SplitDirective is the parsed form of a split tag. Participants are kept as
// written, they are validated when the split is resolved.
type SplitDirective struct {
	Mode         SplitMode
	Participants []string
}

func (s SplitDirective) String() string {
	list := strings.Join(s.Participants, ", ")
	if s.Mode == SplitBy {
		return "split(by " + list + ")"
	}
	return "split(" + list + ")"
}

// Booking is a dated, described, balanced set of postings.
//
// Bookings held by a Journal are shared between journal versions and must not
// be modified.
type Booking struct {
	Date        date.Date
	Description string
	Postings    []Posting
	// Split records the directive the postings were expanded from.
	Split *SplitDirective
	Pos   Position
}

// Sum returns the total of the postings. It is zero for a resolved booking.
func (b *Booking) Sum() Balance {
	var sum Balance
	for _, p := range b.Postings {
		sum = sum.Add(p.Money)
	}
	return sum
}

// Contacts returns the contacts referenced by the postings, in order of
// appearance.
func (b *Booking) Contacts() []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range b.Postings {
		if c, ok := p.Account.Contact(); ok && !seen[c] {
			seen[c] = true
			names = append(names, c)
		}
	}
	return names
}

// matches reports whether every token is found, ignoring case, in the
// description or in one of the accounts.
func (b *Booking) matches(tokens []string) bool {
	desc := strings.ToLower(b.Description)
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if strings.Contains(desc, tok) {
			continue
		}
		found := false
		for _, p := range b.Postings {
			if strings.Contains(strings.ToLower(string(p.Account)), tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Chapter groups the bookings of a single date.
type Chapter struct {
	Date     date.Date
	Bookings []*Booking
}
