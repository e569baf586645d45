package coinjar

import (
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Style tells how a currency renders its amounts.
type Style int

const (
	// SymbolStyle renders the symbol before the number: -$3.50.
	SymbolStyle Style = iota
	// CodeStyle renders the code after the number: -3.50 CJM.
	CodeStyle
)

// Currency describes one denomination of the ledger. It is designated by its
// alphabetic Code, its single-rune Symbol, or both.
type Currency struct {
	Code      string
	Symbol    string
	Name      string
	Precision int
}

// ID returns the designator identifying the currency in balances: the code
// when there is one, the symbol otherwise.
func (c Currency) ID() string {
	if c.Code != "" {
		return c.Code
	}
	return c.Symbol
}

// Style returns how amounts in this currency are rendered.
func (c Currency) Style() Style {
	if c.Symbol != "" {
		return SymbolStyle
	}
	return CodeStyle
}

// Format renders amount with exactly the currency precision.
func (c Currency) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	num := amount.Abs().StringFixed(int32(c.Precision))
	if c.Style() == SymbolStyle {
		return sign + c.Symbol + num
	}
	return sign + num + " " + c.Code
}

func (c Currency) String() string { return c.ID() }

// declaration returns the canonical currency block entry, without indentation.
func (c Currency) declaration() string {
	var parts []string
	if c.Code != "" {
		parts = append(parts, c.Code)
	}
	if c.Symbol != "" {
		parts = append(parts, c.Symbol)
	}
	if c.Precision != defaultPrecision(c.Code) {
		parts = append(parts, strconv.Itoa(c.Precision))
	}
	s := strings.Join(parts, " ")
	if c.Name != "" {
		s += " ; " + c.Name
	}
	return s
}

// defaultPrecision returns the ISO minor unit digits for well known codes, and
// 2 for everything else.
func defaultPrecision(code string) int {
	if code != "" {
		if cur := money.GetCurrency(code); cur != nil {
			return cur.Fraction
		}
	}
	return 2
}

// isSymbol reports whether s is a valid currency symbol: a single rune that is
// neither a letter, a digit, a space, nor one of the number punctuation runes.
func isSymbol(s string) bool {
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return isSymbolRune(r)
}

func isSymbolRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) && r != '-' && r != '+' && r != '.' && r != ';' && r != utf8.RuneError
}

// isCode reports whether s is a valid currency code: one or more letters.
func isCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Currencies is the registry of currencies of a ledger. Designators (codes
// and symbols) are unique across the registry.
//
// Once a Journal is built its registry is never modified: commands resolve
// designators with Lookup and never register new ones.
type Currencies struct {
	closed       bool
	byDesignator map[string]Currency
}

func newCurrencies(closed bool) *Currencies {
	return &Currencies{closed: closed, byDesignator: make(map[string]Currency)}
}

// Closed reports whether undeclared designators are rejected.
func (cs *Currencies) Closed() bool { return cs.closed }

// declare registers c. Declaring the same currency twice is allowed, binding a
// designator to a different currency is a CurrencyConflictError.
func (cs *Currencies) declare(c Currency, pos Position) error {
	for _, d := range []string{c.Code, c.Symbol} {
		if d == "" {
			continue
		}
		if existing, ok := cs.byDesignator[d]; ok && existing != c {
			return &CurrencyConflictError{Pos: pos, Designator: d, Existing: existing, Conflict: c}
		}
	}
	if c.Code != "" {
		cs.byDesignator[c.Code] = c
	}
	if c.Symbol != "" {
		cs.byDesignator[c.Symbol] = c
	}
	return nil
}

// Lookup returns the currency bound to designator. In an open registry an
// unknown designator yields the currency it would be bound to, without
// registering it.
func (cs *Currencies) Lookup(designator string) (Currency, error) {
	designator = normalizeDesignator(designator)
	if c, ok := cs.byDesignator[designator]; ok {
		return c, nil
	}
	if cs.closed {
		return Currency{}, fmt.Errorf("%w %q", ErrUnknownCurrency, designator)
	}
	return implicitCurrency(designator), nil
}

// bind is like Lookup but registers the currency on first use.
func (cs *Currencies) bind(designator string) (Currency, error) {
	c, err := cs.Lookup(designator)
	if err != nil {
		return Currency{}, err
	}
	if _, ok := cs.byDesignator[normalizeDesignator(designator)]; !ok {
		log.Printf("currency %q bound on first use", c.ID())
		if err := cs.declare(c, Position{}); err != nil {
			return Currency{}, err
		}
	}
	return c, nil
}

// All returns the registered currencies sorted by designator.
func (cs *Currencies) All() []Currency {
	seen := make(map[string]bool)
	var all []Currency
	for _, c := range cs.byDesignator {
		if seen[c.ID()] {
			continue
		}
		seen[c.ID()] = true
		all = append(all, c)
	}
	slices.SortFunc(all, func(a, b Currency) int { return strings.Compare(a.ID(), b.ID()) })
	return all
}

func normalizeDesignator(d string) string {
	if isCode(d) {
		return strings.ToUpper(d)
	}
	return d
}

func implicitCurrency(designator string) Currency {
	if isCode(designator) {
		return Currency{Code: designator, Precision: defaultPrecision(designator)}
	}
	return Currency{Symbol: designator, Precision: 2}
}
