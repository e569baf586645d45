package renderer

import (
	"slices"
	"strings"
	"testing"

	"github.com/etnz/coinjar"
	"github.com/etnz/coinjar/date"
	"github.com/google/go-cmp/cmp"
)

const ledger = `currency
    USD $
    EUR €

2024-01-05
Dinner with John
    liability/@John/payable  -€10.00
    expense/food/dine out  €10.00

2024-01-06
Lunch | with John #[split(@John)]
    expense/food/dine out  $10.00
    liability/@Bank of America/credits

Gift
    expense/gifts/@John  $20.00
    assets/cash
`

func decode(t *testing.T) *coinjar.Journal {
	t.Helper()
	j, err := coinjar.DecodeString(ledger, coinjar.Options{})
	if err != nil {
		t.Fatalf("DecodeString() unexpected error: %v", err)
	}
	return j
}

func TestRenderRegister(t *testing.T) {
	j := decode(t)
	got := RenderRegister(NewRegister("Register", j.Match("lunch")))
	want := `## Register

| Date | Description | Account | Amount |
|:-----|:------------|:--------|-------:|
| 2024-01-06 | Lunch \| with John | asset/@John/receivable | $5.00 |
|  |  | expense/food/dine out | $5.00 |
|  |  | liability/@Bank of America/credits | -$10.00 |
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderRegister() mismatch (-want +got):\n%s", diff)
	}

	empty := RenderRegister(&Register{Title: "Register", Range: "2024-01-01 to ..."})
	if want := "## Register (2024-01-01 to ...)\n\n_No bookings._\n"; empty != want {
		t.Errorf("RenderRegister(empty) = %q, want %q", empty, want)
	}
}

func TestRenderContact(t *testing.T) {
	j := decode(t)
	entries, err := j.Contact("John", true)
	if err != nil {
		t.Fatal(err)
	}
	got := RenderContact(NewContact("John", entries, true))
	want := `## John

John owes you $5.00. You owe John €10.00.

| Date | Description | Account | Change | Balance |
|:-----|:------------|:--------|-------:|--------:|
| 2024-01-05 | Dinner with John | liability/@John/payable | -€10.00 | -€10.00 |
| 2024-01-06 | Lunch \| with John | asset/@John/receivable | $5.00 | -€10.00, $5.00 |
| 2024-01-06 | Gift | expense/gifts/@John | $20.00 |  |
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderContact() mismatch (-want +got):\n%s", diff)
	}

	settled := RenderContact(NewContact("Ann", nil, false))
	if want := "## Ann\n\nSettled.\n\n_No entries._\n"; settled != want {
		t.Errorf("RenderContact(settled) = %q, want %q", settled, want)
	}
}

func TestRenderAccounts(t *testing.T) {
	j := decode(t)
	got := RenderAccounts(NewAccounts("liability", j.Balances("liability")))
	want := `## Balances of liability

| Account | Balance |
|:--------|--------:|
| liability/@Bank of America/credits | -$10.00 |
| liability/@John/payable | -€10.00 |
| **Total** | **-€10.00, -$10.00** |
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RenderAccounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderResult(t *testing.T) {
	j := decode(t)
	s := coinjar.NewSession(j, date.MustParse("2024-01-10"), nil)

	res, err := s.Exec("split $9 on expense/food with @A @B")
	if err != nil {
		t.Fatal(err)
	}
	got := RenderResult(res)
	if !strings.HasPrefix(got, "```ledger\n2024-01-10\nsplit\n") || !strings.Contains(got, "_not committed_") {
		t.Errorf("RenderResult(split) = %q", got)
	}

	res, err = s.Exec("undo")
	if err != nil {
		t.Fatal(err)
	}
	if got := RenderResult(res); !strings.Contains(got, "**Warning:** nothing to undo") {
		t.Errorf("RenderResult(undo) = %q", got)
	}

	res, err = s.Exec("date -1")
	if err != nil {
		t.Fatal(err)
	}
	if got := RenderResult(res); got != "Date: 2024-01-09\n" {
		t.Errorf("RenderResult(date) = %q", got)
	}

	res, err = s.Exec("reg gift")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(RenderResult(res), "\n")
	if !slices.Contains(lines, "| 2024-01-06 | Gift | expense/gifts/@John | $20.00 |") {
		t.Errorf("RenderResult(reg) = %q", lines)
	}
}
