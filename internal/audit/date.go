package audit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateKind tags the shape a last-change value arrived in
type DateKind int

const (
	// DateAbsent is a missing or null value
	DateAbsent DateKind = iota
	// DatePlain is a bare date string
	DatePlain
	// DateWrapped is a PowerShell DateTime object: {"value": "/Date(ms)/", "DateTime": "..."}
	DateWrapped
	// DateUnsupported is any other JSON value
	DateUnsupported
)

// Keys of a PowerShell ConvertTo-Json DateTime object
const (
	wrappedDateKey  = "DateTime"
	wrappedValueKey = "value"
)

// RawDate is the last-change value before parsing. Text is the primary
// candidate; Fallback is only consulted for wrapped dates.
type RawDate struct {
	Kind     DateKind
	Text     string
	Fallback string
}

// ReadRawDate classifies a decoded JSON value
func ReadRawDate(v interface{}) RawDate {
	switch val := v.(type) {
	case nil:
		return RawDate{Kind: DateAbsent}
	case string:
		return RawDate{Kind: DatePlain, Text: val}
	case map[string]interface{}:
		d := RawDate{Kind: DateWrapped}
		if s, ok := val[wrappedDateKey].(string); ok {
			d.Text = s
		}
		if s, ok := val[wrappedValueKey].(string); ok {
			d.Fallback = s
		}
		return d
	default:
		return RawDate{Kind: DateUnsupported, Text: fmt.Sprint(val)}
	}
}

// Parse returns the date and whether parsing succeeded
func (d RawDate) Parse() (time.Time, bool) {
	switch d.Kind {
	case DatePlain:
		return parseDate(d.Text)
	case DateWrapped:
		if t, ok := parseDate(d.Text); ok {
			return t, true
		}
		return parseDate(d.Fallback)
	default:
		return time.Time{}, false
	}
}

var msDateRegex = regexp.MustCompile(`^/Date\((-?\d+)([+-]\d{4})?\)/$`)

// Slash dates try month-first, then day-first. Ambiguous dates such as
// 03/04/2024 resolve month-first; 15/01/2024 can only be day-first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"2/1/2006 15:04:05",
	"2/1/2006",
	"Monday, January 2, 2006 3:04:05 PM",
	"Monday, January 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := msDateRegex.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
