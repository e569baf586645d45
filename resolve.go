package coinjar

import (
	"io"
	"strings"
)

// Options controls how a ledger source is resolved.
type Options struct {
	// Closed rejects currencies that are not declared in a currency block.
	Closed bool
}

// Decode parses and resolves a ledger source into a Journal.
func Decode(r io.Reader, opts Options) (*Journal, error) {
	f, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return f.Resolve(opts)
}

// DecodeString is a shortcut for Decode(strings.NewReader(src), opts).
func DecodeString(src string, opts Options) (*Journal, error) {
	return Decode(strings.NewReader(src), opts)
}

// Resolve binds currencies, expands split directives and infers blank
// postings. The first failure aborts the whole load.
func (f *File) Resolve(opts Options) (*Journal, error) {
	cs := newCurrencies(opts.Closed)
	for _, d := range f.Currencies {
		if err := cs.declare(d.Currency, d.Pos); err != nil {
			return nil, err
		}
	}
	opened := make([]Account, 0, len(f.Opens))
	for _, o := range f.Opens {
		opened = append(opened, o.Account)
	}

	var bookings []*Booking
	for _, ch := range f.Chapters {
		for _, n := range ch.Bookings {
			b, err := resolveBooking(cs, ch, n)
			if err != nil {
				return nil, err
			}
			bookings = append(bookings, b)
		}
	}
	return newJournal(cs, opened, bookings), nil
}

func resolveBooking(cs *Currencies, ch *ChapterNode, n *BookingNode) (*Booking, error) {
	b := &Booking{
		Date:        ch.Date.Add(n.Shift),
		Description: n.Description,
		Split:       n.Split,
		Pos:         n.Pos,
	}
	for _, pn := range n.Postings {
		p := Posting{Account: pn.Account, Blank: pn.Amount == nil}
		if pn.Amount != nil {
			m, err := bindLiteral(cs, *pn.Amount, true)
			if err != nil {
				return nil, &ParseError{Pos: pn.AmountPos, Msg: "invalid amount", Err: err}
			}
			p.Money = m
		}
		b.Postings = append(b.Postings, p)
	}
	if err := ResolveSplit(b); err != nil {
		return nil, err
	}
	if err := InferBalance(b); err != nil {
		return nil, err
	}
	return b, nil
}
