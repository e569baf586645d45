package coinjar

import (
	"testing"

	"github.com/shopspring/decimal"
)

var (
	usdCurrency = Currency{Code: "USD", Symbol: "$", Name: "US Dollar", Precision: 2}
	eurCurrency = Currency{Code: "EUR", Symbol: "€", Name: "Euro", Precision: 2}
)

// USD is a helper for test to create dollars from a decimal string.
func USD(v string) Money { return M(decimal.RequireFromString(v), usdCurrency) }

// EUR is a helper for test to create euros from a decimal string.
func EUR(v string) Money { return M(decimal.RequireFromString(v), eurCurrency) }

// sharedLedger is the example used across tests: John paid a dinner for the
// owner, then the owner paid a lunch split with John.
const sharedLedger = `currency
    USD $ ; US Dollar
    EUR € ; Euro

2024-01-05
Dinner with John
    liability/@John/payable  -€10.00
    expense/food/dine out  €10.00

2024-01-06
Lunch with John #[split(@John)]
    expense/food/dine out  $10.00
    liability/@Bank of America/credits
`

func mustDecode(t *testing.T, src string) *Journal {
	t.Helper()
	j, err := DecodeString(src, Options{})
	if err != nil {
		t.Fatalf("DecodeString() unexpected error: %v", err)
	}
	return j
}

func postingStrings(b *Booking) []string {
	var out []string
	for _, p := range b.Postings {
		out = append(out, string(p.Account)+" "+p.Money.String())
	}
	return out
}
