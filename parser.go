package coinjar

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/etnz/coinjar/date"
)

// File is the syntax tree of a ledger source.
type File struct {
	Currencies []CurrencyDecl
	Opens      []OpenDecl
	Chapters   []*ChapterNode
}

// CurrencyDecl is one entry of a currency block.
type CurrencyDecl struct {
	Pos      Position
	Currency Currency
}

// OpenDecl declares an account before anything is posted to it.
type OpenDecl struct {
	Pos     Position
	Account Account
}

// ChapterNode is a date line and the bookings that follow it.
type ChapterNode struct {
	Pos      Position
	Date     date.Date
	Bookings []*BookingNode
}

// BookingNode is a description line and its postings, before resolution.
type BookingNode struct {
	Pos         Position
	Description string
	Split       *SplitDirective
	Shift       int
	Postings    []*PostingNode
}

// PostingNode is an unresolved posting. Amount is nil for a blank posting.
type PostingNode struct {
	Pos       Position
	Account   Account
	Amount    *Literal
	AmountPos Position
}

var dateLikeRE = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

// parser state, one line at a time.
type parser struct {
	file     *File
	line     int
	chapter  *ChapterNode
	booking  *BookingNode
	currency bool // inside a currency block
}

// Parse reads a ledger source into its syntax tree.
//
// Directives (currency blocks and open lines) make up the header and must come
// before the first date line. After that every column 0 line is either a date
// or a booking description.
func Parse(r io.Reader) (*File, error) {
	p := &parser{file: &File{}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		text := strings.TrimRight(sc.Text(), "\r")
		if p.line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if err := p.parseLine(text); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	if err := p.closeBooking(); err != nil {
		return nil, err
	}
	return p.file, nil
}

// ParseString is a shortcut for Parse(strings.NewReader(src)).
func ParseString(src string) (*File, error) { return Parse(strings.NewReader(src)) }

func (p *parser) errorf(col int, format string, args ...any) error {
	return &ParseError{Pos: Position{Line: p.line, Column: col}, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseLine(text string) error {
	if strings.TrimSpace(text) == "" {
		p.currency = false
		return p.closeBooking()
	}

	content, comment, _ := strings.Cut(text, ";")
	indented := text[0] == ' ' || text[0] == '\t'

	if indented {
		if strings.TrimSpace(content) == "" {
			return nil // comment only
		}
		switch {
		case p.currency:
			return p.parseCurrencyEntry(content, strings.TrimSpace(comment))
		case p.booking != nil:
			return p.parsePosting(content)
		default:
			return p.errorf(1, "indented line outside of a booking")
		}
	}

	line := strings.TrimSpace(content)
	if line == "" {
		return nil
	}
	p.currency = false

	if dateLikeRE.MatchString(line) {
		d, err := date.Parse(line)
		if err != nil {
			return &ParseError{Pos: Position{Line: p.line, Column: 1}, Msg: "malformed date", Err: err}
		}
		if err := p.closeBooking(); err != nil {
			return err
		}
		p.chapter = &ChapterNode{Pos: Position{Line: p.line, Column: 1}, Date: d}
		p.file.Chapters = append(p.file.Chapters, p.chapter)
		return nil
	}

	if p.chapter == nil {
		return p.parseDirective(line)
	}
	return p.parseDescription(line)
}

func (p *parser) parseDirective(line string) error {
	if line == "currency" {
		p.currency = true
		return nil
	}
	if rest, ok := strings.CutPrefix(line, "open "); ok {
		acc, err := ParseAccount(rest)
		if err != nil {
			return &ParseError{Pos: Position{Line: p.line, Column: 6}, Msg: "malformed account", Err: err}
		}
		p.file.Opens = append(p.file.Opens, OpenDecl{Pos: Position{Line: p.line, Column: 6}, Account: acc})
		return nil
	}
	return p.errorf(1, "expected a date, a currency block or an open directive, got %q", line)
}

func (p *parser) parseCurrencyEntry(content, name string) error {
	col := indentWidth(content) + 1
	c := Currency{Name: name, Precision: -1}
	for _, tok := range strings.Fields(content) {
		switch {
		case isCode(tok) && c.Code == "":
			c.Code = strings.ToUpper(tok)
		case isSymbol(tok) && c.Symbol == "":
			c.Symbol = tok
		case isDigits(tok) && c.Precision < 0:
			n, err := strconv.Atoi(tok)
			if err != nil || n > 18 {
				return p.errorf(col, "invalid precision %q", tok)
			}
			c.Precision = n
		default:
			return p.errorf(col, "unexpected %q in currency entry", tok)
		}
	}
	if c.Code == "" && c.Symbol == "" {
		return p.errorf(col, "currency entry needs a code or a symbol")
	}
	if c.Precision < 0 {
		c.Precision = defaultPrecision(c.Code)
	}
	p.file.Currencies = append(p.file.Currencies, CurrencyDecl{Pos: Position{Line: p.line, Column: col}, Currency: c})
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func (p *parser) parseDescription(line string) error {
	if err := p.closeBooking(); err != nil {
		return err
	}
	desc, tags := scanTags(line)
	bt, err := interpretTags(tags)
	if err != nil {
		return p.errorf(1, "%v", err)
	}
	if desc == "" {
		return p.errorf(1, "booking has no description")
	}
	p.booking = &BookingNode{
		Pos:         Position{Line: p.line, Column: 1},
		Description: desc,
		Split:       bt.split,
		Shift:       bt.shift,
	}
	return nil
}

// parsePosting reads "<account>  <money>". Two spaces or a tab separate the
// account from the amount, a single space belongs to the account.
func (p *parser) parsePosting(content string) error {
	indent := indentWidth(content)
	body := strings.TrimRightFunc(content[indent:], isBlank)
	accText, amountText := body, ""
	if i := separatorIndex(body); i >= 0 {
		accText = body[:i]
		amountText = strings.TrimSpace(body[i:])
	}
	col := utf8.RuneCountInString(content[:indent]) + 1
	acc, err := ParseAccount(accText)
	if err != nil {
		return &ParseError{Pos: Position{Line: p.line, Column: col}, Msg: "malformed account", Err: err}
	}
	n := &PostingNode{Pos: Position{Line: p.line, Column: col}, Account: acc}
	if amountText != "" {
		amountCol := col + utf8.RuneCountInString(body) - utf8.RuneCountInString(amountText)
		lit, err := ParseMoney(amountText)
		if err != nil {
			return &ParseError{Pos: Position{Line: p.line, Column: amountCol}, Msg: "malformed amount", Err: err}
		}
		n.Amount = &lit
		n.AmountPos = Position{Line: p.line, Column: amountCol}
	}
	p.booking.Postings = append(p.booking.Postings, n)
	return nil
}

func separatorIndex(s string) int {
	i := strings.Index(s, "  ")
	if j := strings.IndexByte(s, '\t'); j >= 0 && (i < 0 || j < i) {
		i = j
	}
	return i
}

func indentWidth(s string) int {
	return len(s) - len(strings.TrimLeftFunc(s, isBlank))
}

func isBlank(r rune) bool { return r == ' ' || r == '\t' }

func (p *parser) closeBooking() error {
	b := p.booking
	if b == nil {
		return nil
	}
	p.booking = nil
	if len(b.Postings) == 0 {
		return &ParseError{Pos: b.Pos, Msg: fmt.Sprintf("booking %q has no postings", b.Description)}
	}
	p.chapter.Bookings = append(p.chapter.Bookings, b)
	return nil
}
