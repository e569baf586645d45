package coinjar

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type entryView struct {
	Date, Account, Delta, Balance string
	Debt                          bool
}

func viewEntries(entries []ContactEntry) []entryView {
	var out []entryView
	for _, e := range entries {
		out = append(out, entryView{e.Date.String(), string(e.Account), e.Delta.String(), e.Balance.String(), e.Debt})
	}
	return out
}

func TestJournal_Contact(t *testing.T) {
	j := mustDecode(t, sharedLedger)

	if diff := cmp.Diff([]string{"Bank of America", "John"}, j.Contacts()); diff != "" {
		t.Errorf("Contacts() mismatch (-want +got):\n%s", diff)
	}

	entries, err := j.Contact("John", false)
	if err != nil {
		t.Fatalf("Contact() unexpected error: %v", err)
	}
	want := []entryView{
		{"2024-01-05", "liability/@John/payable", "-€10.00", "-€10.00", true},
		{"2024-01-06", "asset/@John/receivable", "$5.00", "-€10.00, $5.00", true},
	}
	if diff := cmp.Diff(want, viewEntries(entries)); diff != "" {
		t.Errorf("Contact(John) mismatch (-want +got):\n%s", diff)
	}
	if got := j.Debt("John").String(); got != "-€10.00, $5.00" {
		t.Errorf("Debt(John) = %s", got)
	}

	if _, err := j.Contact("john", false); err != nil {
		t.Errorf("Contact() should ignore case, got %v", err)
	}
	if _, err := j.Contact("Paul", false); err == nil {
		t.Errorf("Contact(Paul) should fail")
	}
}

func TestJournal_ContactNonDebt(t *testing.T) {
	src := `2024-02-01
Gift for John
    expense/gifts/@John  $20.00
    assets/cash

Lunch #[split(@John)]
    expense/food  $10.00
    assets/cash
`
	j := mustDecode(t, src)
	debts, _ := j.Contact("John", false)
	all, _ := j.Contact("John", true)
	if len(debts) != 1 || len(all) != 2 {
		t.Fatalf("got %d debt entries and %d entries, want 1 and 2", len(debts), len(all))
	}
	want := []entryView{
		{"2024-02-01", "expense/gifts/@John", "$20.00", "0", false},
		{"2024-02-01", "asset/@John/receivable", "$5.00", "$5.00", true},
	}
	if diff := cmp.Diff(want, viewEntries(all)); diff != "" {
		t.Errorf("Contact(John, all) mismatch (-want +got):\n%s", diff)
	}
}

func TestJournal_Balances(t *testing.T) {
	j := mustDecode(t, sharedLedger)
	if got := j.Balance("expense/food/dine out").String(); got != "€10.00, $5.00" {
		t.Errorf("Balance(dine out) = %s", got)
	}
	if got := j.Total("liability").String(); got != "-€10.00, -$10.00" {
		t.Errorf("Total(liability) = %s", got)
	}
	if got := j.Total("").String(); got != "0" {
		t.Errorf("Total() = %s, want 0", got)
	}
	var accounts []string
	for _, row := range j.Balances("liability") {
		accounts = append(accounts, string(row.Account))
	}
	want := []string{"liability/@Bank of America/credits", "liability/@John/payable"}
	if diff := cmp.Diff(want, accounts); diff != "" {
		t.Errorf("Balances(liability) mismatch (-want +got):\n%s", diff)
	}
}

func TestJournal_Match(t *testing.T) {
	j := mustDecode(t, sharedLedger)
	tests := []struct {
		tokens []string
		want   []string
	}{
		{nil, []string{"Dinner with John", "Lunch with John"}},
		{[]string{"LUNCH"}, []string{"Lunch with John"}},
		{[]string{"john", "bank"}, []string{"Lunch with John"}},
		{[]string{"payable"}, []string{"Dinner with John"}},
		{[]string{"nothing"}, nil},
	}
	for _, tt := range tests {
		var got []string
		for _, b := range j.Match(tt.tokens...) {
			got = append(got, b.Description)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Match(%q) mismatch (-want +got):\n%s", tt.tokens, diff)
		}
	}
}

func TestJournal_Delete(t *testing.T) {
	j := mustDecode(t, sharedLedger)
	lunch := j.Match("lunch")[0]
	before := EncodeString(j)

	next, err := j.Delete(lunch)
	if err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if next.Len() != 1 || j.Len() != 2 {
		t.Errorf("Len() = %d and %d, want 1 and 2", next.Len(), j.Len())
	}
	if EncodeString(j) != before {
		t.Errorf("Delete() modified the original journal")
	}
	if got := next.Debt("John").String(); got != "-€10.00" {
		t.Errorf("Debt(John) after delete = %s, want -€10.00", got)
	}
	if got := j.Debt("John").String(); got != "-€10.00, $5.00" {
		t.Errorf("original Debt(John) = %s", got)
	}
	if slices.Contains(next.Contacts(), "Bank of America") {
		t.Errorf("contact without postings should be gone")
	}
	if slices.Contains(next.Accounts(), "asset/@John/receivable") {
		t.Errorf("account without postings should be gone")
	}
	if got := next.Balance("expense/food/dine out").String(); got != "€10.00" {
		t.Errorf("Balance(dine out) after delete = %s", got)
	}
	if len(next.Chapters()) != 1 {
		t.Errorf("empty chapter should be removed")
	}

	if _, err := next.Delete(lunch); err == nil {
		t.Errorf("deleting a booking twice should fail")
	}
}

func TestJournal_Open(t *testing.T) {
	j := mustDecode(t, sharedLedger)
	next := j.Open("assets/cash")
	if !slices.Contains(next.Accounts(), "assets/cash") || slices.Contains(j.Accounts(), "assets/cash") {
		t.Errorf("Open() should only change the new journal")
	}
	if next.Open("assets/cash") != next {
		t.Errorf("opening an opened account should return the same journal")
	}

	// an opened account survives the deletion of its postings
	src := "open assets/cash\n\n2024-01-05\nLunch\n    expense  $1.00\n    assets/cash\n"
	j = mustDecode(t, src)
	next, err := j.Delete(j.Match()[0])
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Account{"assets/cash"}, next.Accounts()); diff != "" {
		t.Errorf("Accounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestJournal_FindAccounts(t *testing.T) {
	j := mustDecode(t, sharedLedger)
	tests := []struct {
		query Account
		want  []Account
	}{
		{"expense/food/dine out", []Account{"expense/food/dine out"}},
		{"LIABILITY", []Account{"liability"}},
		{"out", []Account{"expense/food/dine out"}},
		{"liab/john", []Account{"liability/@John/payable"}},
		{"john", []Account{"asset/@John/receivable", "liability/@John/payable"}},
		{"dine/food", nil},
		{"assets/cash", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, j.FindAccounts(tt.query)); diff != "" {
			t.Errorf("FindAccounts(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}
