package coinjar

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// DefaultAmountColumn is the display column where posting amounts end.
	DefaultAmountColumn = 72
	postingIndent       = "    "
	minGap              = 2
)

// Encoder writes journals in canonical ledger text: the currency block, the
// open directives, then one chapter per date. Postings are fully resolved and
// their amounts right aligned, tags and comments are not written.
//
// Decoding the output yields an equal journal, and encoding that journal again
// yields the same text.
type Encoder struct {
	// AmountColumn is where amounts end. Zero means DefaultAmountColumn.
	AmountColumn int
}

// Encode writes j in canonical form using the default column.
func Encode(w io.Writer, j *Journal) error { return Encoder{}.Encode(w, j) }

// EncodeString returns the canonical text of j.
func EncodeString(j *Journal) string {
	var sb strings.Builder
	_ = Encode(&sb, j)
	return sb.String()
}

func (e Encoder) column() int {
	if e.AmountColumn <= 0 {
		return DefaultAmountColumn
	}
	return e.AmountColumn
}

// Encode writes j to w.
func (e Encoder) Encode(w io.Writer, j *Journal) error {
	bw := bufio.NewWriter(w)
	section := false
	separate := func() {
		if section {
			bw.WriteString("\n")
		}
		section = true
	}

	if cs := j.currencies.All(); len(cs) > 0 {
		separate()
		bw.WriteString("currency\n")
		for _, c := range cs {
			fmt.Fprintf(bw, "%s%s\n", postingIndent, c.declaration())
		}
	}
	if opened := j.Opened(); len(opened) > 0 {
		separate()
		for _, a := range opened {
			fmt.Fprintf(bw, "open %s\n", a)
		}
	}
	for _, ch := range j.chapters {
		separate()
		fmt.Fprintf(bw, "%s\n", ch.Date)
		for i, b := range ch.Bookings {
			if i > 0 {
				bw.WriteString("\n")
			}
			e.writeBooking(bw, b)
		}
	}
	return bw.Flush()
}

func (e Encoder) writeBooking(w io.StringWriter, b *Booking) {
	w.WriteString(b.Description + "\n")
	for _, p := range b.Postings {
		w.WriteString(e.postingLine(p) + "\n")
	}
}

func (e Encoder) postingLine(p Posting) string {
	acc := string(p.Account)
	amount := p.Money.String()
	gap := e.column() - runewidth.StringWidth(postingIndent) - runewidth.StringWidth(acc) - runewidth.StringWidth(amount)
	gap = max(gap, minGap)
	return postingIndent + acc + strings.Repeat(" ", gap) + amount
}

// FormatBooking returns the canonical text of a single booking, date line
// included.
func FormatBooking(b *Booking) string {
	var sb strings.Builder
	sb.WriteString(b.Date.String() + "\n")
	Encoder{}.writeBooking(&sb, b)
	return sb.String()
}
