package coinjar

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Position locates a token in the ledger source. Lines and columns start at 1.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// IsValid reports whether the position points into a source.
func (p Position) IsValid() bool { return p.Line > 0 }

// prefix returns "line:col: " or "" when the position is unknown.
func (p Position) prefix() string {
	if !p.IsValid() {
		return ""
	}
	return p.String() + ": "
}

// ErrUnknownCurrency is returned when a designator is not declared in a
// closed currency registry.
var ErrUnknownCurrency = errors.New("unknown currency")

// ParseError reports a malformed date, account, money or grammar token.
type ParseError struct {
	Pos Position
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s%s: %v", e.Pos.prefix(), e.Msg, e.Err)
	}
	return e.Pos.prefix() + e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// MoneyParseError reports a money literal that matches none of the four
// accepted forms.
type MoneyParseError struct {
	Input string
	Msg   string
}

func (e *MoneyParseError) Error() string {
	return fmt.Sprintf("invalid money %q: %s", e.Input, e.Msg)
}

// BalanceError reports a booking whose postings in one currency do not sum to
// zero and have no blank posting to absorb the difference.
type BalanceError struct {
	Pos         Position
	Description string
	Currency    string
	Sum         decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("%sbooking %q does not balance: %s sums to %s", e.Pos.prefix(), e.Description, e.Currency, e.Sum)
}

// InferenceError reports a booking whose blank postings cannot be inferred.
type InferenceError struct {
	Pos         Position
	Description string
	Msg         string
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%scannot infer amount in booking %q: %s", e.Pos.prefix(), e.Description, e.Msg)
}

// SplitResolutionError reports a split annotation that cannot be applied.
type SplitResolutionError struct {
	Pos         Position
	Description string
	Msg         string
}

func (e *SplitResolutionError) Error() string {
	return fmt.Sprintf("%scannot split booking %q: %s", e.Pos.prefix(), e.Description, e.Msg)
}

// CurrencyConflictError reports two declarations binding the same designator
// to different currencies.
type CurrencyConflictError struct {
	Pos        Position
	Designator string
	Existing   Currency
	Conflict   Currency
}

func (e *CurrencyConflictError) Error() string {
	return fmt.Sprintf("%scurrency %q already declared as %s, got %s", e.Pos.prefix(), e.Designator, e.Existing.declaration(), e.Conflict.declaration())
}

// CommandError reports an unknown command or malformed arguments. The ledger
// is left untouched when a command fails.
type CommandError struct {
	Command string
	Msg     string
	Err     error
}

func (e *CommandError) Error() string {
	msg := e.Msg
	if e.Command != "" {
		msg = e.Command + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }
