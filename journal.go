package coinjar

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/coinjar/date"
)

// Journal is an immutable, resolved ledger: chapters in date order and the
// indices derived from them.
//
// Mutations return a new Journal sharing everything they do not touch with
// the original, so keeping an old *Journal around is enough to restore it.
type Journal struct {
	currencies *Currencies
	chapters   []*Chapter
	opened     map[Account]bool
	accounts   map[Account]accountState
	contacts   map[string][]ContactEntry
}

type accountState struct {
	balance  Balance
	postings int
}

// ContactEntry is one posting to a contact, with the running balance of the
// debt between the owner and the contact after it.
type ContactEntry struct {
	Date        date.Date
	Description string
	Account     Account
	Delta       Money
	Balance     Balance
	// Debt is true when the posting changes what is owed, that is when its
	// account is an asset or a liability.
	Debt    bool
	Booking *Booking
}

// AccountBalance pairs an account with its balance.
type AccountBalance struct {
	Account Account
	Balance Balance
}

// NewJournal returns an empty journal.
func NewJournal(opts Options) *Journal {
	return newJournal(newCurrencies(opts.Closed), nil, nil)
}

func newJournal(cs *Currencies, opened []Account, bookings []*Booking) *Journal {
	j := &Journal{
		currencies: cs,
		opened:     make(map[Account]bool),
		accounts:   make(map[Account]accountState),
		contacts:   make(map[string][]ContactEntry),
	}
	for _, a := range opened {
		j.opened[a] = true
		j.accounts[a] = accountState{}
	}

	sorted := slices.Clone(bookings)
	slices.SortStableFunc(sorted, func(a, b *Booking) int { return a.Date.Compare(b.Date) })
	for _, b := range sorted {
		if n := len(j.chapters); n == 0 || j.chapters[n-1].Date != b.Date {
			j.chapters = append(j.chapters, &Chapter{Date: b.Date})
		}
		ch := j.chapters[len(j.chapters)-1]
		ch.Bookings = append(ch.Bookings, b)

		for _, p := range b.Postings {
			st := j.accounts[p.Account]
			st.balance = st.balance.Add(p.Money)
			st.postings++
			j.accounts[p.Account] = st
			if c, ok := p.Account.Contact(); ok {
				j.contacts[c] = appendContactEntry(j.contacts[c], b, p)
			}
		}
	}
	return j
}

func appendContactEntry(entries []ContactEntry, b *Booking, p Posting) []ContactEntry {
	var running Balance
	if n := len(entries); n > 0 {
		running = entries[n-1].Balance
	}
	debt := p.Account.IsDebt()
	if debt {
		running = running.Add(p.Money)
	}
	return append(entries, ContactEntry{
		Date:        b.Date,
		Description: b.Description,
		Account:     p.Account,
		Delta:       p.Money,
		Balance:     running,
		Debt:        debt,
		Booking:     b,
	})
}

// Currencies returns the currency registry.
func (j *Journal) Currencies() *Currencies { return j.currencies }

// Chapters returns the chapters in date order.
func (j *Journal) Chapters() []*Chapter { return slices.Clone(j.chapters) }

// Bookings iterates over all bookings in date order.
func (j *Journal) Bookings() iter.Seq[*Booking] {
	return func(yield func(*Booking) bool) {
		for _, ch := range j.chapters {
			for _, b := range ch.Bookings {
				if !yield(b) {
					return
				}
			}
		}
	}
}

// Len returns the number of bookings.
func (j *Journal) Len() int {
	n := 0
	for _, ch := range j.chapters {
		n += len(ch.Bookings)
	}
	return n
}

// Match returns the bookings whose description or accounts contain every
// token, ignoring case. No token matches everything.
func (j *Journal) Match(tokens ...string) []*Booking {
	var found []*Booking
	for b := range j.Bookings() {
		if b.matches(tokens) {
			found = append(found, b)
		}
	}
	return found
}

// Accounts returns every known account, posted to or opened, sorted.
func (j *Journal) Accounts() []Account {
	return slices.Sorted(maps.Keys(j.accounts))
}

// FindAccounts returns the accounts query designates. When query spells a
// known account or one of its parents, ignoring case, it is the only result.
// Otherwise every known account fuzzy matching query is returned: each query
// segment must be part of an account segment, in order.
func (j *Journal) FindAccounts(query Account) []Account {
	lq := strings.ToLower(string(query))
	depth := len(query.Segments())
	var found []Account
	for _, a := range j.Accounts() {
		la := strings.ToLower(string(a))
		if la == lq || strings.HasPrefix(la, lq+pathDelimiter) {
			return []Account{Account(strings.Join(a.Segments()[:depth], pathDelimiter))}
		}
		if a.fuzzyMatch(query) {
			found = append(found, a)
		}
	}
	return found
}

// Opened returns the accounts declared with open, sorted.
func (j *Journal) Opened() []Account {
	return slices.Sorted(maps.Keys(j.opened))
}

// Balance returns the balance of a single account.
func (j *Journal) Balance(a Account) Balance { return j.accounts[a].balance }

// Balances returns the balance of each account under prefix. An empty prefix
// selects all accounts.
func (j *Journal) Balances(prefix Account) []AccountBalance {
	var rows []AccountBalance
	for _, a := range j.Accounts() {
		if a.HasPrefix(prefix) {
			rows = append(rows, AccountBalance{Account: a, Balance: j.accounts[a].balance})
		}
	}
	return rows
}

// Total returns the sum of the balances of prefix and its sub accounts.
func (j *Journal) Total(prefix Account) Balance {
	var total Balance
	for a, st := range j.accounts {
		if a.HasPrefix(prefix) {
			total = total.Plus(st.balance)
		}
	}
	return total
}

// Contacts returns the names of all contacts, sorted.
func (j *Journal) Contacts() []string {
	return slices.Sorted(maps.Keys(j.contacts))
}

// Contact returns the entries of a contact in date order. Unless all is set,
// entries that do not change the debt are left out.
func (j *Journal) Contact(name string, all bool) ([]ContactEntry, error) {
	entries, ok := j.contacts[name]
	if !ok {
		for c := range j.contacts {
			if strings.EqualFold(c, name) {
				entries, ok = j.contacts[c], true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("unknown contact %q", name)
	}
	if all {
		return slices.Clone(entries), nil
	}
	var debts []ContactEntry
	for _, e := range entries {
		if e.Debt {
			debts = append(debts, e)
		}
	}
	return debts, nil
}

// Debt returns what the contact owes (positive) or is owed (negative).
func (j *Journal) Debt(name string) Balance {
	entries := j.contacts[name]
	if len(entries) == 0 {
		return Balance{}
	}
	return entries[len(entries)-1].Balance
}

// Delete returns a journal without b. Only the chapter, the accounts and the
// contacts b touches are rebuilt.
func (j *Journal) Delete(b *Booking) (*Journal, error) {
	ci := slices.IndexFunc(j.chapters, func(ch *Chapter) bool { return ch.Date == b.Date })
	if ci < 0 {
		return nil, fmt.Errorf("booking %q is not in the journal", b.Description)
	}
	bi := slices.Index(j.chapters[ci].Bookings, b)
	if bi < 0 {
		return nil, fmt.Errorf("booking %q is not in the journal", b.Description)
	}

	next := *j
	next.chapters = slices.Clone(j.chapters)
	if len(j.chapters[ci].Bookings) == 1 {
		next.chapters = slices.Delete(next.chapters, ci, ci+1)
	} else {
		next.chapters[ci] = &Chapter{
			Date:     b.Date,
			Bookings: slices.Delete(slices.Clone(j.chapters[ci].Bookings), bi, bi+1),
		}
	}

	next.accounts = maps.Clone(j.accounts)
	for _, p := range b.Postings {
		st := next.accounts[p.Account]
		st.balance = st.balance.Add(p.Money.Neg())
		st.postings--
		if st.postings <= 0 && !j.opened[p.Account] {
			delete(next.accounts, p.Account)
		} else {
			next.accounts[p.Account] = st
		}
	}

	next.contacts = maps.Clone(j.contacts)
	for _, c := range b.Contacts() {
		var rebuilt []ContactEntry
		for _, e := range j.contacts[c] {
			if e.Booking == b {
				continue
			}
			p := Posting{Account: e.Account, Money: e.Delta}
			rebuilt = appendContactEntry(rebuilt, e.Booking, p)
		}
		if len(rebuilt) == 0 {
			delete(next.contacts, c)
		} else {
			next.contacts[c] = rebuilt
		}
	}
	log.Printf("deleted %s %q", b.Date, b.Description)
	return &next, nil
}

// Open returns a journal where a is declared. Opening a known account
// returns j itself.
func (j *Journal) Open(a Account) *Journal {
	if j.opened[a] {
		return j
	}
	next := *j
	next.opened = maps.Clone(j.opened)
	next.opened[a] = true
	if _, ok := j.accounts[a]; !ok {
		next.accounts = maps.Clone(j.accounts)
		next.accounts[a] = accountState{}
	}
	return &next
}
