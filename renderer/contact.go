package renderer

import (
	"strings"

	"github.com/etnz/coinjar"
)

// Contact is the statement of a contact: every posting naming them and the
// running balance of what is owed.
type Contact struct {
	Name string
	Owes []string // what the contact owes the owner
	Owed []string // what the owner owes the contact
	All  bool     // rows include postings that do not change the debt
	Rows []ContactRow
}

// ContactRow is one posting to a contact.
type ContactRow struct {
	Date        string
	Description string
	Account     string
	Change      string
	Balance     string
	Debt        bool
}

// NewContact builds the statement of name from its entries. The final debt is
// the balance of the last entry.
func NewContact(name string, entries []coinjar.ContactEntry, all bool) *Contact {
	c := &Contact{Name: name, All: all}
	var debt coinjar.Balance
	for _, e := range entries {
		c.Rows = append(c.Rows, ContactRow{
			Date:        e.Date.String(),
			Description: e.Description,
			Account:     string(e.Account),
			Change:      e.Delta.String(),
			Balance:     e.Balance.String(),
			Debt:        e.Debt,
		})
		debt = e.Balance
	}
	for _, m := range debt.Moneys() {
		if m.IsPositive() {
			c.Owes = append(c.Owes, m.String())
		} else {
			c.Owed = append(c.Owed, m.Neg().String())
		}
	}
	return c
}

// Settled reports whether nothing is owed either way.
func (c *Contact) Settled() bool { return len(c.Owes) == 0 && len(c.Owed) == 0 }

// OwesText joins the amounts the contact owes.
func (c *Contact) OwesText() string { return strings.Join(c.Owes, " and ") }

// OwedText joins the amounts owed to the contact.
func (c *Contact) OwedText() string { return strings.Join(c.Owed, " and ") }

// RenderContact renders the statement as markdown.
func RenderContact(c *Contact) string {
	partials := map[string]string{
		"contact_title": "contact_title.md",
	}
	return renderTemplate("contact", "contact.md", partials, c)
}
