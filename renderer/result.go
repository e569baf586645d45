package renderer

import (
	"strings"

	"github.com/etnz/coinjar"
)

// RenderResult renders the outcome of an interpreter command.
func RenderResult(res coinjar.Result) string {
	var b strings.Builder
	switch res.Command.(type) {
	case coinjar.RegCmd:
		b.WriteString(RenderRegister(NewRegister("Register", res.Bookings)))
	case coinjar.AccnsCmd:
		b.WriteString(RenderAccounts(NewAccounts("", res.Accounts)))
	case coinjar.DateCmd:
		b.WriteString("Date: " + res.Date.String() + "\n")
	case coinjar.InspectCmd:
		b.WriteString("```json\n" + string(res.State) + "\n```\n")
	default:
		for _, bk := range res.Bookings {
			b.WriteString(RenderBooking(bk))
		}
	}
	if res.Message != "" {
		b.WriteString("\n_" + res.Message + "_\n")
	}
	if res.Warning != "" {
		b.WriteString("\n**Warning:** " + res.Warning + "\n")
	}
	return b.String()
}
