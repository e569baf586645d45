package coinjar

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// SplitShares divides m into n shares that differ by at most one minor unit
// and sum exactly to m. Shares are sorted by magnitude, so the remainder goes
// to the last ones.
func SplitShares(m Money, n int) ([]Money, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cannot split %v into %d shares", m, n)
	}
	prec := int32(m.cur.Precision)
	minor := m.value.Shift(prec)
	if !minor.IsInteger() {
		return nil, fmt.Errorf("%v has more decimals than %s allows", m.value, m.cur.ID())
	}
	units, err := splitMinor(minor, n, m.cur.ID())
	if err != nil {
		return nil, fmt.Errorf("cannot split %v: %w", m, err)
	}
	shares := make([]Money, len(units))
	for i, u := range units {
		shares[i] = Money{value: u.Shift(-prec), cur: m.cur}
	}
	slices.SortStableFunc(shares, func(a, b Money) int { return a.value.Abs().Cmp(b.value.Abs()) })
	return shares, nil
}

// splitMinor splits an integral amount of minor units into n parts.
// go-money works on int64, larger amounts are split with decimal arithmetic.
func splitMinor(minor decimal.Decimal, n int, code string) ([]decimal.Decimal, error) {
	units := make([]decimal.Decimal, 0, n)
	if minor.BigInt().IsInt64() {
		parts, err := money.New(minor.IntPart(), code).Split(n)
		if err != nil {
			return nil, err
		}
		for _, p := range parts {
			units = append(units, decimal.NewFromInt(p.Amount()))
		}
		return units, nil
	}
	q, r := minor.QuoRem(decimal.NewFromInt(int64(n)), 0)
	unit := decimal.NewFromInt(int64(minor.Sign()))
	extra := r.Abs().IntPart()
	for i := range n {
		share := q
		if int64(i) < extra {
			share = share.Add(unit)
		}
		units = append(units, share)
	}
	return units, nil
}

// ResolveSplit expands b's split directive into explicit contact postings.
//
// The funding posting is the only posting carrying an amount. In even mode it
// is shared between the payer and every contact, the payer keeping the first
// share. In by mode the single contact takes the whole amount and the funding
// posting is dropped. A positive share is owed by the contact (receivable), a
// negative one is owed to the contact (payable).
//
// ResolveSplit is a no-op when b has no split directive.
func ResolveSplit(b *Booking) error {
	if b.Split == nil {
		return nil
	}
	fail := func(format string, args ...any) error {
		return &SplitResolutionError{Pos: b.Pos, Description: b.Description, Msg: fmt.Sprintf(format, args...)}
	}

	contacts, err := splitContacts(b.Split.Participants)
	if err != nil {
		return fail("%v", err)
	}
	if b.Split.Mode == SplitBy && len(contacts) != 1 {
		return fail("split by takes exactly one contact, got %d", len(contacts))
	}

	funding := -1
	for i, p := range b.Postings {
		if p.Blank {
			continue
		}
		if funding >= 0 {
			return fail("more than one posting has an amount")
		}
		funding = i
	}
	if funding < 0 {
		return fail("no posting has an amount to split")
	}
	amount := b.Postings[funding].Money

	var own Money
	var shares []Money
	switch b.Split.Mode {
	case SplitBy:
		shares = []Money{amount}
	default:
		all, err := SplitShares(amount, len(contacts)+1)
		if err != nil {
			return fail("%v", err)
		}
		own, shares = all[0], all[1:]
	}

	postings := make([]Posting, 0, len(b.Postings)+len(contacts))
	postings = append(postings, b.Postings[:funding]...)
	for i, c := range contacts {
		acc := ReceivableAccount(c)
		if shares[i].IsNegative() {
			acc = PayableAccount(c)
		}
		postings = append(postings, Posting{Account: acc, Money: shares[i]})
	}
	if b.Split.Mode != SplitBy {
		postings = append(postings, Posting{Account: b.Postings[funding].Account, Money: own})
	}
	postings = append(postings, b.Postings[funding+1:]...)
	b.Postings = postings
	return nil
}

// splitContacts validates "@Name" participants and returns the names.
func splitContacts(participants []string) ([]string, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("no contact to split with")
	}
	seen := make(map[string]bool)
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		raw, ok := strings.CutPrefix(strings.TrimSpace(p), contactMarker)
		if !ok || strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("invalid participant %q, expected @Name", p)
		}
		acc, err := ParseAccount(contactMarker + raw)
		if err != nil {
			return nil, fmt.Errorf("invalid participant %q: %w", p, err)
		}
		name, _ := acc.Contact()
		if seen[name] {
			return nil, fmt.Errorf("contact %q listed twice", name)
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
