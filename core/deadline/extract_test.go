package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	rows := []RawRow{
		{Event: "Registration opens", Heading: "Fall 2025", DateCells: []string{"August 4, 2025"}},
		// title-less row inherits "Registration opens" (rowspan-style)
		{Heading: "Fall 2025", DateCells: []string{"August 11, 2025"}},
		{Event: "Classes begin/end", Heading: "Fall 2025", DateCells: []string{"August 25, 2025", "December 12, 2025"}},
		// formatting row: no date
		{Event: "Important dates", Heading: "Fall 2025", DateCells: []string{"TBD"}},
		// date-only row before any title in a new table is dropped
		{Heading: "Spring 2026", DateCells: []string{"January 12, 2026"}},
		{Event: "Tuition due", Heading: "Spring 2026", DateCells: []string{"January 5, 2026"}},
	}

	cands := Extract(rows)
	if len(cands) != 5 {
		t.Fatalf("Extract() returned %d candidates; want 5", len(cands))
	}

	// inherited title
	assert.Equal(t, "Registration opens", cands[1].Event)
	assert.Equal(t, date(2025, time.August, 11), cands[1].Date)

	// one candidate per date cell, shared title and category
	assert.Equal(t, "Classes begin/end", cands[2].Event)
	assert.Equal(t, "Classes begin/end", cands[3].Event)
	assert.Equal(t, cands[2].Category, cands[3].Category)
	assert.Equal(t, date(2025, time.August, 25), cands[2].Date)
	assert.Equal(t, date(2025, time.December, 12), cands[3].Date)

	// title carried across tables is reset; only "Tuition due" survives in Spring
	assert.Equal(t, "Tuition due", cands[4].Event)
	assert.Equal(t, CategoryFinancialAid, cands[4].Category)

	// original text preserved
	assert.Equal(t, "August 4, 2025", cands[0].DateText)
	assert.Equal(t, CategoryRegistration, cands[0].Category)
}

func TestExtract_emptyAndUnparseableRowsAreSilentlySkipped(t *testing.T) {
	rows := []RawRow{
		{Heading: "Fall", DateCells: []string{"August 4, 2025"}},      // no title yet
		{Event: "Census Day", Heading: "Fall", DateCells: []string{}}, // no dates
		{Event: "Census Day", Heading: "Fall", DateCells: []string{"see below", ""}},
	}
	if cands := Extract(rows); len(cands) != 0 {
		t.Errorf("Extract() = %v; want none", cands)
	}
}
