package deadline

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{name: "iso is idempotent", text: "2025-01-06", want: date(2025, time.January, 6), ok: true},
		{name: "slash date", text: "8/25/2025", want: date(2025, time.August, 25), ok: true},
		{name: "full month name", text: "September 5, 2024", want: date(2024, time.September, 5), ok: true},
		{name: "three letter abbreviation", text: "Sep 5, 2024", want: date(2024, time.September, 5), ok: true},
		{name: "sept alias", text: "Sept 5, 2024", want: date(2024, time.September, 5), ok: true},
		{name: "abbreviation with trailing period", text: "Sept. 5, 2024", want: date(2024, time.September, 5), ok: true},
		{name: "dec abbreviation", text: "Dec. 12, 2025", want: date(2025, time.December, 12), ok: true},
		{name: "same month range yields start", text: "June 2-6, 2025", want: date(2025, time.June, 2), ok: true},
		{name: "same month range with en dash", text: "June 2–6, 2025", want: date(2025, time.June, 2), ok: true},
		{name: "cross month range yields start", text: "June 30-July 4, 2025", want: date(2025, time.June, 30), ok: true},
		{name: "surrounding whitespace", text: "  May 1, 2025  ", want: date(2025, time.May, 1), ok: true},
		{name: "garbage", text: "not a date"},
		{name: "empty", text: ""},
		{name: "unknown month", text: "Smarch 1, 2025"},
		{name: "day out of range", text: "June 31, 2025"},
		{name: "two digit year unsupported", text: "5/1/24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.text)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v; want %v", tt.text, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v; want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseDate_abbreviationsMatchFullNames(t *testing.T) {
	pairs := [][2]string{
		{"Jan 2, 2025", "January 2, 2025"},
		{"Feb. 14, 2025", "February 14, 2025"},
		{"Aug 25, 2025", "August 25, 2025"},
		{"Sept. 5, 2024", "September 5, 2024"},
		{"Nov 27, 2025", "November 27, 2025"},
	}
	for _, pair := range pairs {
		abbr, abbrOK := ParseDate(pair[0])
		full, fullOK := ParseDate(pair[1])
		if !abbrOK || !fullOK {
			t.Fatalf("ParseDate failed: %q ok=%v, %q ok=%v", pair[0], abbrOK, pair[1], fullOK)
		}
		if !abbr.Equal(full) {
			t.Errorf("ParseDate(%q) = %v; want same as ParseDate(%q) = %v", pair[0], abbr, pair[1], full)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end time.Time
		ok         bool
	}{
		{name: "single date", text: "June 2, 2025", start: date(2025, time.June, 2), end: date(2025, time.June, 2), ok: true},
		{name: "same month range", text: "June 2-6, 2025", start: date(2025, time.June, 2), end: date(2025, time.June, 6), ok: true},
		{name: "cross month range", text: "June 30-July 4, 2025", start: date(2025, time.June, 30), end: date(2025, time.July, 4), ok: true},
		{name: "cross month with abbreviations", text: "Aug. 28-Sept. 1, 2025", start: date(2025, time.August, 28), end: date(2025, time.September, 1), ok: true},
		{name: "garbage", text: "sometime next week"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := ParseDateRange(tt.text)
			if ok != tt.ok {
				t.Fatalf("ParseDateRange(%q) ok = %v; want %v", tt.text, ok, tt.ok)
			}
			if !ok {
				return
			}
			if !start.Equal(tt.start) || !end.Equal(tt.end) {
				t.Errorf("ParseDateRange(%q) = (%v, %v); want (%v, %v)", tt.text, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, time.May, 28, 16, 45, 12, 999, time.UTC)
	if got := StartOfDay(in); !got.Equal(date(2025, time.May, 28)) {
		t.Errorf("StartOfDay(%v) = %v", in, got)
	}
}
