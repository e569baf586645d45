package renderer

import (
	"github.com/etnz/coinjar"
)

// Accounts lists account balances.
type Accounts struct {
	Prefix string
	Rows   []AccountRow
	Total  string
}

type AccountRow struct {
	Account string
	Balance string
}

// NewAccounts builds the balance table of rows. Total is the sum of all rows.
func NewAccounts(prefix string, rows []coinjar.AccountBalance) *Accounts {
	a := &Accounts{Prefix: prefix}
	var total coinjar.Balance
	for _, r := range rows {
		a.Rows = append(a.Rows, AccountRow{Account: string(r.Account), Balance: r.Balance.String()})
		total = total.Plus(r.Balance)
	}
	a.Total = total.String()
	return a
}

// RenderAccounts renders the balances as a markdown table.
func RenderAccounts(a *Accounts) string {
	partials := map[string]string{
		"accounts_title": "accounts_title.md",
	}
	return renderTemplate("accounts", "accounts.md", partials, a)
}
