package coinjar

import (
	"fmt"
	"slices"
)

// InferBalance fills b's blank posting so that the booking sums to zero, or
// checks that it already does when every amount is written.
//
// A single blank posting is inferred only when all other postings share one
// currency.
func InferBalance(b *Booking) error {
	var sum Balance
	var ids []string // currencies in order of appearance
	blank := -1
	for i, p := range b.Postings {
		if p.Blank {
			if blank >= 0 {
				return &InferenceError{Pos: b.Pos, Description: b.Description, Msg: "more than one posting has no amount"}
			}
			blank = i
			continue
		}
		id := p.Money.cur.ID()
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
		sum = sum.Add(p.Money)
	}

	if blank < 0 {
		for _, id := range ids {
			if m, ok := sum.Get(id); ok {
				return &BalanceError{Pos: b.Pos, Description: b.Description, Currency: id, Sum: m.value}
			}
		}
		return nil
	}

	switch len(ids) {
	case 0:
		return &InferenceError{Pos: b.Pos, Description: b.Description, Msg: "no amount to infer from"}
	case 1:
	default:
		return &InferenceError{Pos: b.Pos, Description: b.Description, Msg: fmt.Sprintf("postings span %d currencies", len(ids))}
	}

	var missing Money
	if m, ok := sum.Get(ids[0]); ok {
		missing = m.Neg()
	} else {
		missing = Money{cur: currencyOf(b, ids[0])}
	}
	b.Postings[blank].Money = missing
	return nil
}

func currencyOf(b *Booking, id string) Currency {
	for _, p := range b.Postings {
		if !p.Blank && p.Money.cur.ID() == id {
			return p.Money.cur
		}
	}
	return Currency{}
}
