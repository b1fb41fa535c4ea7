package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tarehe/core/deadline"
)

func TestMarshal(t *testing.T) {
	items := []deadline.Deadline{
		{
			Event:    "Census Day",
			Date:     time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			DateText: "September 1, 2025",
			Category: deadline.CategoryRegistration,
		},
		{
			Event:    "Final Exams",
			Date:     time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC),
			DateText: "December 8-12, 2025",
			Category: deadline.CategoryAcademic,
		},
	}

	out := string(Marshal(items))

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:Census Day")
	assert.Contains(t, out, "CATEGORIES:registration")

	// single-day event spans exactly one day
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250901")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250902")

	// the range endpoints are re-parsed from the scraped text
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20251208")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20251213")
}

func TestMarshal_empty(t *testing.T) {
	out := string(Marshal(nil))
	require.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
