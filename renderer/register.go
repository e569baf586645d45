package renderer

import (
	"github.com/etnz/coinjar"
)

// Register is a list of bookings, one row per posting.
type Register struct {
	Title string
	Range string // optional description of the selected period
	Rows  []RegisterRow
}

// RegisterRow is one posting. Date and Description are only set on the first
// posting of a booking.
type RegisterRow struct {
	Date        string
	Description string
	Account     string
	Amount      string
}

// NewRegister builds a register from bookings.
func NewRegister(title string, bookings []*coinjar.Booking) *Register {
	r := &Register{Title: title}
	for _, b := range bookings {
		for i, p := range b.Postings {
			row := RegisterRow{Account: string(p.Account), Amount: p.Money.String()}
			if i == 0 {
				row.Date = b.Date.String()
				row.Description = b.Description
			}
			r.Rows = append(r.Rows, row)
		}
	}
	return r
}

// RenderRegister renders the register as a markdown table.
func RenderRegister(r *Register) string {
	partials := map[string]string{
		"register_title": "register_title.md",
	}
	return renderTemplate("register", "register.md", partials, r)
}

// RenderBooking renders a single booking as a ledger code block.
func RenderBooking(b *coinjar.Booking) string {
	return "```ledger\n" + coinjar.FormatBooking(b) + "```\n"
}
