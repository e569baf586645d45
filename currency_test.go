package coinjar

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultPrecision(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"USD", 2},
		{"JPY", 0},
		{"BHD", 3},
		{"CJM", 2},
		{"", 2},
	}
	for _, tt := range tests {
		if got := defaultPrecision(tt.code); got != tt.want {
			t.Errorf("defaultPrecision(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestCurrencies_Declare(t *testing.T) {
	cs := newCurrencies(true)
	if err := cs.declare(usdCurrency, Position{Line: 2}); err != nil {
		t.Fatalf("declare() unexpected error: %v", err)
	}
	if err := cs.declare(usdCurrency, Position{Line: 3}); err != nil {
		t.Errorf("declaring the same currency twice should be allowed, got %v", err)
	}

	err := cs.declare(Currency{Code: "CAD", Symbol: "$", Precision: 2}, Position{Line: 4, Column: 5})
	var conflict *CurrencyConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("declare() error = %v, want a CurrencyConflictError", err)
	}
	if conflict.Designator != "$" || conflict.Pos.Line != 4 {
		t.Errorf("conflict = %+v, want designator $ on line 4", conflict)
	}

	err = cs.declare(Currency{Code: "USD", Precision: 3}, Position{})
	if !errors.As(err, &conflict) {
		t.Errorf("redeclaring USD with another precision should conflict, got %v", err)
	}
}

func TestCurrencies_Lookup(t *testing.T) {
	closed := newCurrencies(true)
	closed.declare(usdCurrency, Position{})
	for _, d := range []string{"$", "USD", "usd"} {
		c, err := closed.Lookup(d)
		if err != nil || c != usdCurrency {
			t.Errorf("Lookup(%q) = %v, %v, want %v", d, c, err, usdCurrency)
		}
	}
	if _, err := closed.Lookup("£"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("Lookup(£) in a closed registry = %v, want ErrUnknownCurrency", err)
	}

	open := newCurrencies(false)
	c, err := open.Lookup("jpy")
	if err != nil {
		t.Fatalf("Lookup(jpy) unexpected error: %v", err)
	}
	if want := (Currency{Code: "JPY", Precision: 0}); c != want {
		t.Errorf("Lookup(jpy) = %+v, want %+v", c, want)
	}
	if len(open.All()) != 0 {
		t.Errorf("Lookup() should not register currencies")
	}

	if _, err := open.bind("£"); err != nil {
		t.Fatalf("bind(£) unexpected error: %v", err)
	}
	if _, err := open.bind("£"); err != nil {
		t.Fatalf("bind(£) twice unexpected error: %v", err)
	}
	if got := open.All(); len(got) != 1 || got[0].Symbol != "£" || got[0].Precision != 2 {
		t.Errorf("All() = %v, want the bound £", got)
	}
}

func TestCurrencies_All(t *testing.T) {
	cs := newCurrencies(false)
	cs.declare(usdCurrency, Position{})
	cs.declare(eurCurrency, Position{})
	cs.declare(Currency{Symbol: "£", Precision: 2}, Position{})
	var got []string
	for _, c := range cs.All() {
		got = append(got, c.declaration())
	}
	want := []string{"EUR € ; Euro", "USD $ ; US Dollar", "£"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestCurrency_Declaration(t *testing.T) {
	tests := []struct {
		c    Currency
		want string
	}{
		{Currency{Code: "CJM", Precision: 2}, "CJM"},
		{Currency{Code: "CJM", Precision: 4, Name: "Coin jar money"}, "CJM 4 ; Coin jar money"},
		{Currency{Code: "JPY", Symbol: "¥", Precision: 0}, "JPY ¥"},
		{Currency{Symbol: "§", Precision: 0}, "§ 0"},
	}
	for _, tt := range tests {
		if got := tt.c.declaration(); got != tt.want {
			t.Errorf("declaration() = %q, want %q", got, tt.want)
		}
	}
}
