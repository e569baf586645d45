package coinjar

import (
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact amount in a single currency.
type Money struct {
	value decimal.Decimal
	cur   Currency
}

// M returns the money value in currency cur.
func M(value decimal.Decimal, cur Currency) Money { return Money{value: value, cur: cur} }

func (m Money) Currency() Currency      { return m.cur }
func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) IsZero() bool            { return m.value.IsZero() }
func (m Money) IsPositive() bool        { return m.value.IsPositive() }
func (m Money) IsNegative() bool        { return m.value.IsNegative() }
func (m Money) Neg() Money              { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Equal(n Money) bool {
	return m.value.Equal(n.value) && m.cur.ID() == n.cur.ID()
}

// Add returns m+n. It panics when currencies differ.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: sameCurrency(m, n)} }

// Sub returns m-n. It panics when currencies differ.
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: sameCurrency(m, n)} }

func sameCurrency(a, b Money) Currency {
	if a.cur.ID() != b.cur.ID() {
		panic("currency mismatch " + a.cur.ID() + " != " + b.cur.ID())
	}
	return a.cur
}

// String renders the amount with the currency precision and style.
func (m Money) String() string { return m.cur.Format(m.value) }

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", m.cur.ID())
	w.Append("amount", m.value.StringFixed(int32(m.cur.Precision)))
	return w.MarshalJSON()
}

// Literal is a parsed but unbound money literal.
type Literal struct {
	Designator string
	Amount     decimal.Decimal
}

const (
	numberPattern = `(\d+(?:\.\d+)?)`
	symbolPattern = `([^\s\d\pL\-+.;])`
	codePattern   = `(\pL+)`
)

var (
	symbolFirstRE = regexp.MustCompile(`^(-?)` + symbolPattern + numberPattern + `$`)
	signFirstRE   = regexp.MustCompile(`^` + symbolPattern + `(-)` + numberPattern + `$`)
	numberFirstRE = regexp.MustCompile(`^(-?)` + numberPattern + symbolPattern + `$`)
	codeRE        = regexp.MustCompile(`^(-?)` + numberPattern + `\s+` + codePattern + `$`)
	codeFirstRE   = regexp.MustCompile(`^` + codePattern + `\s+(-?)` + numberPattern + `$`)
)

// ParseMoney parses a money literal in one of the accepted forms. A symbol is
// written next to the number, a code is separated from it by whitespace:
//
//	$3.50   -$3.50   $-3.50
//	3.50$   -3.50$
//	3.50 USD   -3.50 USD
//	USD 3.50   USD -3.50
func ParseMoney(s string) (Literal, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return Literal{}, &MoneyParseError{Input: s, Msg: "empty"}
	}
	if strings.Count(in, ".") > 1 {
		return Literal{}, &MoneyParseError{Input: s, Msg: "more than one decimal point"}
	}

	var sign, designator, number string
	if m := symbolFirstRE.FindStringSubmatch(in); m != nil {
		sign, designator, number = m[1], m[2], m[3]
	} else if m := signFirstRE.FindStringSubmatch(in); m != nil {
		designator, sign, number = m[1], m[2], m[3]
	} else if m := numberFirstRE.FindStringSubmatch(in); m != nil {
		sign, number, designator = m[1], m[2], m[3]
	} else if m := codeRE.FindStringSubmatch(in); m != nil {
		sign, number, designator = m[1], m[2], m[3]
	} else if m := codeFirstRE.FindStringSubmatch(in); m != nil {
		designator, sign, number = m[1], m[2], m[3]
	} else {
		return Literal{}, &MoneyParseError{Input: s, Msg: "expected an amount with a currency symbol or code"}
	}

	amount, err := decimal.NewFromString(sign + number)
	if err != nil {
		return Literal{}, &MoneyParseError{Input: s, Msg: err.Error()}
	}
	return Literal{Designator: designator, Amount: amount}, nil
}

// bindLiteral resolves l against cs. Amounts finer than the currency
// precision are rejected.
func bindLiteral(cs *Currencies, l Literal, register bool) (Money, error) {
	var (
		cur Currency
		err error
	)
	if register {
		cur, err = cs.bind(l.Designator)
	} else {
		cur, err = cs.Lookup(l.Designator)
	}
	if err != nil {
		return Money{}, err
	}
	if !l.Amount.Equal(l.Amount.Truncate(int32(cur.Precision))) {
		return Money{}, &MoneyParseError{Input: l.Amount.String() + " " + l.Designator, Msg: "too many decimals for " + cur.ID()}
	}
	return Money{value: l.Amount, cur: cur}, nil
}

// Balance is a multi-currency amount. Currencies summing to zero are dropped.
// A Balance is never modified: Add returns a new one.
type Balance struct {
	amounts map[string]Money
}

// Add returns b+m.
func (b Balance) Add(m Money) Balance {
	if m.IsZero() {
		return b
	}
	next := make(map[string]Money, len(b.amounts)+1)
	for k, v := range b.amounts {
		next[k] = v
	}
	id := m.cur.ID()
	if cur, ok := next[id]; ok {
		m = cur.Add(m)
	}
	if m.IsZero() {
		delete(next, id)
	} else {
		next[id] = m
	}
	return Balance{amounts: next}
}

// Plus returns b+c.
func (b Balance) Plus(c Balance) Balance {
	for _, m := range c.amounts {
		b = b.Add(m)
	}
	return b
}

// Get returns the amount held in currency id, zero if none.
func (b Balance) Get(id string) (Money, bool) {
	m, ok := b.amounts[id]
	return m, ok
}

func (b Balance) IsZero() bool { return len(b.amounts) == 0 }

// Moneys returns the non zero amounts sorted by currency.
func (b Balance) Moneys() []Money {
	ms := make([]Money, 0, len(b.amounts))
	for _, m := range b.amounts {
		ms = append(ms, m)
	}
	slices.SortFunc(ms, func(a, b Money) int { return strings.Compare(a.cur.ID(), b.cur.ID()) })
	return ms
}

// Equal reports whether both balances hold the same amounts.
func (b Balance) Equal(c Balance) bool {
	if len(b.amounts) != len(c.amounts) {
		return false
	}
	for k, m := range b.amounts {
		n, ok := c.amounts[k]
		if !ok || !m.Equal(n) {
			return false
		}
	}
	return true
}

func (b Balance) String() string {
	if b.IsZero() {
		return "0"
	}
	var parts []string
	for _, m := range b.Moneys() {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, ", ")
}

func (b Balance) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, m := range b.Moneys() {
		w.Append(m.cur.ID(), m.value.StringFixed(int32(m.cur.Precision)))
	}
	return w.MarshalJSON()
}
