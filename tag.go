package coinjar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// A tag is a "#[name(args)]" annotation on a booking description line.
type tag struct {
	name string
	args string
}

const tagBody = `#\[\s*([A-Za-z_]+)\s*(?:\(([^()\]]*)\))?\s*\]`

var (
	leadingTagRE  = regexp.MustCompile(`^\s*` + tagBody)
	trailingTagRE = regexp.MustCompile(tagBody + `\s*$`)
)

// scanTags strips the leading and trailing runs of tags off a description
// line. Tags in the middle of the text are part of the description.
func scanTags(line string) (desc string, tags []tag) {
	rest := line
	for {
		m := leadingTagRE.FindStringSubmatchIndex(rest)
		if m == nil {
			break
		}
		tags = append(tags, tag{name: rest[m[2]:m[3]], args: submatch(rest, m, 2)})
		rest = rest[m[1]:]
	}
	var trailing []tag
	for {
		m := trailingTagRE.FindStringSubmatchIndex(rest)
		if m == nil {
			break
		}
		trailing = append([]tag{{name: rest[m[2]:m[3]], args: submatch(rest, m, 2)}}, trailing...)
		rest = rest[:m[0]]
	}
	return strings.TrimSpace(rest), append(tags, trailing...)
}

func submatch(s string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return strings.TrimSpace(s[m[2*i]:m[2*i+1]])
}

// bookingTags holds the interpreted tags of one description line.
type bookingTags struct {
	split *SplitDirective
	shift int // days added to the chapter date
}

func interpretTags(tags []tag) (bookingTags, error) {
	var bt bookingTags
	seen := make(map[string]bool)
	for _, t := range tags {
		name := strings.ToLower(t.name)
		if seen[name] {
			return bt, fmt.Errorf("duplicate tag %q", name)
		}
		seen[name] = true
		switch name {
		case "split":
			bt.split = parseSplitArgs(t.args)
		case "date":
			n, err := strconv.Atoi(t.args)
			if err != nil {
				return bt, fmt.Errorf("date tag expects a day offset, got %q", t.args)
			}
			bt.shift = n
		default:
			return bt, fmt.Errorf("unknown tag %q", t.name)
		}
	}
	return bt, nil
}

// parseSplitArgs reads "@A, @B" or "by @A". Participants are validated later.
func parseSplitArgs(args string) *SplitDirective {
	d := &SplitDirective{Mode: SplitEven}
	if rest, ok := strings.CutPrefix(args, "by "); ok || args == "by" {
		d.Mode = SplitBy
		args = rest
	}
	args = strings.TrimSpace(args)
	if args == "" {
		return d
	}
	for _, p := range strings.Split(args, ",") {
		d.Participants = append(d.Participants, strings.TrimSpace(p))
	}
	return d
}
