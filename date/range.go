package date

import "fmt"

// Range represents a range of dates, boundaries included. A zero From or To
// leaves that side open.
type Range struct{ From, To Date }

// NewRange returns the range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// ParseRange builds a range from two fuzzy date expressions, either of which
// may be empty.
func ParseRange(from, to string, ref Date) (Range, error) {
	var r Range
	var err error
	if from != "" {
		if r.From, err = ParseFuzzy(from, ref); err != nil {
			return Range{}, fmt.Errorf("invalid start date: %w", err)
		}
	}
	if to != "" {
		if r.To, err = ParseFuzzy(to, ref); err != nil {
			return Range{}, fmt.Errorf("invalid end date: %w", err)
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return Range{}, fmt.Errorf("invalid range: %s is before %s", r.To, r.From)
	}
	return r, nil
}

func (r Range) String() string {
	from, to := "...", "..."
	if !r.From.IsZero() {
		from = r.From.String()
	}
	if !r.To.IsZero() {
		to = r.To.String()
	}
	return from + " to " + to
}
