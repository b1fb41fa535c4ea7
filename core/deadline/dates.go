package deadline

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ISODate is the canonical date layout used for keys and storage.
const ISODate = "2006-01-02"

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	slashDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	monthDayRe  = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2}),\s*(\d{4})$`)
	// same-month range: "June 2-6, 2025" (hyphen or en dash)
	sameMonthRangeRe = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2})\s*[-–]\s*(\d{1,2}),\s*(\d{4})$`)
	// cross-month range: "June 30-July 4, 2025"
	crossMonthRangeRe = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2})\s*[-–]\s*([A-Za-z]+)\.?\s+(\d{1,2}),\s*(\d{4})$`)
)

// generic layouts tried as a last resort, over the trimmed string.
var fallbackLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006/01/02",
	"01-02-2006",
}

// ParseDate normalizes free-text calendar dates into midnight-UTC dates.
// Recognized inputs, in priority order: ISO YYYY-MM-DD, M/D/YYYY,
// "Month D, YYYY" (full or abbreviated month, optional trailing period),
// same-month and cross-month ranges (the range *start* is returned; the
// normalizer only yields a sortable anchor), then a few generic layouts.
// Unparseable input returns ok=false; it never panics. Two-digit years are
// not supported.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(ISODate, text); err == nil {
		return dayUTC(t), true
	}

	if m := slashDateRe.FindStringSubmatch(text); m != nil {
		return makeDate(atoi(m[3]), time.Month(atoi(m[1])), atoi(m[2]))
	}

	if m := monthDayRe.FindStringSubmatch(text); m != nil {
		month, ok := lookupMonth(m[1])
		if !ok {
			return time.Time{}, false
		}
		return makeDate(atoi(m[3]), month, atoi(m[2]))
	}

	if m := sameMonthRangeRe.FindStringSubmatch(text); m != nil {
		month, ok := lookupMonth(m[1])
		if !ok {
			return time.Time{}, false
		}
		return makeDate(atoi(m[4]), month, atoi(m[2]))
	}

	if m := crossMonthRangeRe.FindStringSubmatch(text); m != nil {
		// anchor on the range start: "Month1 D1, YYYY"
		return ParseDate(m[1] + " " + m[2] + ", " + m[5])
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return dayUTC(t), true
		}
	}
	return time.Time{}, false
}

// ParseDateRange yields both endpoints of a date or date range. Single
// dates come back with start == end. Same rules as ParseDate's range
// handling; used by the iCalendar export.
func ParseDateRange(text string) (start, end time.Time, ok bool) {
	text = strings.TrimSpace(text)

	if m := crossMonthRangeRe.FindStringSubmatch(text); m != nil {
		m1, ok1 := lookupMonth(m[1])
		m2, ok2 := lookupMonth(m[3])
		if !ok1 || !ok2 {
			return time.Time{}, time.Time{}, false
		}
		year := atoi(m[5])
		start, ok1 = makeDate(year, m1, atoi(m[2]))
		end, ok2 = makeDate(year, m2, atoi(m[4]))
		return start, end, ok1 && ok2
	}

	if m := sameMonthRangeRe.FindStringSubmatch(text); m != nil {
		month, mok := lookupMonth(m[1])
		if !mok {
			return time.Time{}, time.Time{}, false
		}
		year := atoi(m[4])
		var ok1, ok2 bool
		start, ok1 = makeDate(year, month, atoi(m[2]))
		end, ok2 = makeDate(year, month, atoi(m[3]))
		return start, end, ok1 && ok2
	}

	if t, tok := ParseDate(text); tok {
		return t, t, true
	}
	return time.Time{}, time.Time{}, false
}

// StartOfDay truncates t to its UTC calendar day. All pipeline comparisons
// are date-only; time-of-day is irrelevant.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortByDate orders deadlines ascending by date, ties broken by title so
// the order is stable across runs.
func SortByDate(items []Deadline) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].Event < items[j].Event
	})
}

func lookupMonth(name string) (time.Month, bool) {
	// trailing periods on abbreviations ("Sept.") are already dropped by the
	// regexps; lookup is case-insensitive
	month, ok := monthsByName[strings.ToLower(strings.TrimSuffix(name, "."))]
	return month, ok
}

// makeDate builds a midnight-UTC date, rejecting out-of-range components
// (time.Date would silently normalize "June 31" into July).
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if year < 1000 || month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func dayUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
