package date

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	offsetRE   = regexp.MustCompile(`^([+-]?)(\d+)$`)
	relativeRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)
	slashRE    = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	monthDayRE = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})$`)
)

// ParseFuzzy parses a date expression relative to ref. The reference date is
// always explicit: nothing here reads the clock.
//
// Accepted forms:
//
//	today, yesterday, tomorrow
//	-1, +3, 2        day offsets from ref
//	-1w, +2m, -1y    signed offsets in days, weeks, months or years
//	2024-01-05       ISO date
//	2024/1/5         slash date
//	1-5              month and day in ref's year
func ParseFuzzy(str string, ref Date) (Date, error) {
	str = strings.TrimSpace(strings.ToLower(str))

	switch str {
	case "today", "0d":
		return ref, nil
	case "yesterday":
		return ref.Add(-1), nil
	case "tomorrow":
		return ref.Add(1), nil
	}

	if m := offsetRE.FindStringSubmatch(str); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid day offset %q: %w", str, err)
		}
		if m[1] == "-" {
			n = -n
		}
		return ref.Add(n), nil
	}

	if m := relativeRE.FindStringSubmatch(str); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if m[1] == "-" {
			n = -n
		}
		switch m[3] {
		case "d":
			return ref.Add(n), nil
		case "w":
			return ref.Add(7 * n), nil
		case "m":
			return ref.AddMonth(n), nil
		case "y":
			return New(ref.Year()+n, ref.Month(), ref.Day()), nil
		}
	}

	if d, err := Parse(str); err == nil {
		return d, nil
	}

	if m := slashRE.FindStringSubmatch(str); m != nil {
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return Parse(fmt.Sprintf("%s-%02d-%02d", m[1], mo, d))
	}

	if m := monthDayRE.FindStringSubmatch(str); m != nil {
		mo, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		if mo < 1 || mo > 12 {
			return Date{}, fmt.Errorf("invalid month in date %q", str)
		}
		on := New(ref.Year(), time.Month(mo), d)
		if on.Day() != d {
			return Date{}, fmt.Errorf("invalid day in date %q", str)
		}
		return on, nil
	}

	return Date{}, fmt.Errorf("invalid date expression %q", str)
}
