package deadline

import "time"

// BuildDigest filters deadlines down to a student's pinned items due within
// the lead-time window [today, today+leadDays). The upper bound is
// exclusive: an item exactly leadDays out is not yet due. An empty pinned
// set yields an empty digest, so students with no pins get no reminder
// email. Result is ascending by date.
func BuildDigest(pinned IdentitySet, all []Deadline, today time.Time, leadDays int) []Deadline {
	if len(pinned) == 0 {
		return nil
	}
	today = StartOfDay(today)
	end := today.AddDate(0, 0, leadDays)

	var due []Deadline
	for _, d := range all {
		if !pinned[d.Identity()] {
			continue
		}
		day := StartOfDay(d.Date)
		if day.Before(today) || !day.Before(end) {
			continue
		}
		due = append(due, d)
	}
	SortByDate(due)
	return due
}
