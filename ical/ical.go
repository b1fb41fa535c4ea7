// Package ical renders the deadline set as an iCalendar feed of all-day
// events. Multi-day deadlines get their endpoints re-parsed from the
// original scraped text so ranges export faithfully.
package ical

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/trezcool/tarehe/core/deadline"
)

const prodID = "-//Tarehe//Academic Deadlines//EN"

func Build(items []deadline.Deadline) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)

	now := time.Now().UTC()
	for _, d := range items {
		start, end, ok := deadline.ParseDateRange(d.DateText)
		if !ok {
			start, end = d.Date, d.Date
		}

		ev := cal.AddEvent(d.Key())
		ev.SetDtStampTime(now)
		ev.SetSummary(d.Event)
		ev.SetAllDayStartAt(start)
		// DTEND is exclusive for all-day events
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		ev.SetProperty(ics.ComponentPropertyCategories, string(d.Category))
	}
	return cal
}

func Marshal(items []deadline.Deadline) []byte {
	return []byte(Build(items).Serialize())
}
