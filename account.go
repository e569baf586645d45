package coinjar

import (
	"fmt"
	"strings"
	"unicode"
)

// Account is a canonical account path: trimmed segments joined by '/'.
//
// A segment starting with '@' names a contact; an account holds at most one.
type Account string

const (
	pathDelimiter = "/"
	contactMarker = "@"
)

// ParseAccount parses and canonicalizes an account path. Runs of whitespace
// inside a segment collapse to one space, two spaces separate an account from
// its amount on a posting line.
func ParseAccount(s string) (Account, error) {
	raw := strings.Split(s, pathDelimiter)
	segs := make([]string, 0, len(raw))
	contacts := 0
	for _, seg := range raw {
		seg = strings.Join(strings.Fields(seg), " ")
		if seg == "" {
			return "", fmt.Errorf("account %q has an empty segment", s)
		}
		name := seg
		if strings.HasPrefix(seg, contactMarker) {
			contacts++
			name = strings.TrimSpace(strings.TrimPrefix(seg, contactMarker))
			if name == "" {
				return "", fmt.Errorf("account %q has an empty contact name", s)
			}
			seg = contactMarker + name
		}
		for _, r := range name {
			if !isSegmentRune(r) {
				return "", fmt.Errorf("account %q: invalid character %q in segment %q", s, r, seg)
			}
		}
		segs = append(segs, seg)
	}
	if contacts > 1 {
		return "", fmt.Errorf("account %q references more than one contact", s)
	}
	return Account(strings.Join(segs, pathDelimiter)), nil
}

// MustParseAccount is like ParseAccount but panics on error.
func MustParseAccount(s string) Account {
	a, err := ParseAccount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func isSegmentRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case ' ', '-', '_', '.', '\'', '&':
		return true
	}
	return false
}

// Segments returns the path segments.
func (a Account) Segments() []string { return strings.Split(string(a), pathDelimiter) }

// Root returns the first segment.
func (a Account) Root() string {
	root, _, _ := strings.Cut(string(a), pathDelimiter)
	return root
}

// Contact returns the contact named in the path, if any.
func (a Account) Contact() (string, bool) {
	for _, seg := range a.Segments() {
		if name, ok := strings.CutPrefix(seg, contactMarker); ok {
			return name, true
		}
	}
	return "", false
}

// HasPrefix reports whether a is p or one of its sub accounts.
func (a Account) HasPrefix(p Account) bool {
	if p == "" || a == p {
		return true
	}
	return strings.HasPrefix(string(a), string(p)+pathDelimiter)
}

// IsDebt reports whether postings to a change what is owed between the owner
// and a contact: assets (receivables) and liabilities (payables).
func (a Account) IsDebt() bool {
	switch strings.ToLower(a.Root()) {
	case "asset", "assets", "liability", "liabilities":
		return true
	}
	return false
}

// fuzzyMatch reports whether every segment of query is contained, ignoring
// case, in a segment of a, in order.
func (a Account) fuzzyMatch(query Account) bool {
	segs := a.Segments()
	i := 0
	for _, q := range query.Segments() {
		q = strings.ToLower(q)
		for i < len(segs) && !strings.Contains(strings.ToLower(segs[i]), q) {
			i++
		}
		if i == len(segs) {
			return false
		}
		i++
	}
	return true
}

func (a Account) String() string { return string(a) }

// ReceivableAccount is where a contact's share of an expense is booked.
func ReceivableAccount(contact string) Account {
	return Account("asset/" + contactMarker + contact + "/receivable")
}

// PayableAccount is where money owed to a contact is booked.
func PayableAccount(contact string) Account {
	return Account("liability/" + contactMarker + contact + "/payable")
}
