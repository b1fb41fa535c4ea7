package deadline

import "time"

const (
	// DefaultTarget is the bounded size of a recommendation set.
	DefaultTarget = 7

	// imminentWindowDays makes phase 1 cover [today, today+4]: a 5-day window.
	imminentWindowDays = 4
	// pinnedWindowDays makes phase 2 cover [today, today+21].
	pinnedWindowDays = 21
	// ladderStartOffsetDays is where the category ladder starts looking.
	ladderStartOffsetDays = 7
	// maxLadderPasses bounds the ladder at one widening step per day for a
	// year. Invariant, not an accident: once the pool is exhausted no pass
	// can ever add anything, and the filler phase takes over.
	maxLadderPasses = 365
)

// ladderCategories is the fixed priority order of the category-ladder phase.
var ladderCategories = []Category{
	CategoryAddDrop,
	CategoryFinancialAid,
	CategoryRegistration,
	CategoryAcademic,
}

// Recommend selects a bounded, ascending-by-date subset of deadlines worth
// surfacing to a student. Input need not be pre-filtered: anything dated
// before today (date-only) or whose Key is in exclude is dropped first.
// Selection then runs through ordered phases until target items are found:
//
//  1. imminent: due within [today, today+4]
//  2. pinned categories: due within [today, today+21] (skipped when
//     pinnedCats is empty)
//  3. category ladder: cycle add/drop → financial-aid → registration →
//     academic, at most one pick per category per pass, starting 7 days
//     out and widening the offset by a day whenever a full pass adds
//     nothing
//  4. filler: earliest remaining items
//
// Fewer than target results simply means the pool is small.
func Recommend(all []Deadline, pinnedCats CategorySet, exclude KeySet, today time.Time, target int) []Deadline {
	if target <= 0 {
		target = DefaultTarget
	}
	today = StartOfDay(today)

	pool := make([]Deadline, 0, len(all))
	for _, d := range all {
		if StartOfDay(d.Date).Before(today) {
			continue
		}
		if exclude[d.Key()] {
			continue
		}
		pool = append(pool, d)
	}
	SortByDate(pool)

	chosen := make([]Deadline, 0, target)
	chosenKeys := make(KeySet, target)
	pick := func(d Deadline) {
		if chosenKeys[d.Key()] {
			return
		}
		chosenKeys[d.Key()] = true
		chosen = append(chosen, d)
	}

	// phase 1: imminent
	imminentEnd := today.AddDate(0, 0, imminentWindowDays)
	for _, d := range pool {
		if len(chosen) >= target {
			break
		}
		if !d.Date.After(imminentEnd) {
			pick(d)
		}
	}

	// phase 2: pinned categories
	if len(chosen) < target && len(pinnedCats) > 0 {
		pinnedEnd := today.AddDate(0, 0, pinnedWindowDays)
		for _, d := range pool {
			if len(chosen) >= target {
				break
			}
			if pinnedCats[d.Category] && !d.Date.After(pinnedEnd) {
				pick(d)
			}
		}
	}

	// phase 3: category ladder; terminates when the target is reached, the
	// pool is exhausted, or the pass bound is hit
	offset := ladderStartOffsetDays
	for pass := 0; pass < maxLadderPasses && len(chosen) < target && len(chosen) < len(pool); pass++ {
		cutoff := today.AddDate(0, 0, offset)
		added := false
		for _, cat := range ladderCategories {
			if len(chosen) >= target {
				break
			}
			for _, d := range pool {
				if d.Category != cat || chosenKeys[d.Key()] || d.Date.Before(cutoff) {
					continue
				}
				pick(d)
				added = true
				break // one per category per pass
			}
		}
		if !added {
			offset++
		}
	}

	// phase 4: filler
	for _, d := range pool {
		if len(chosen) >= target {
			break
		}
		pick(d)
	}

	SortByDate(chosen)
	return chosen
}
