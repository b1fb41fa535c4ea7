package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = date(2025, time.May, 28)

func dl(event string, d time.Time, cat Category) Deadline {
	return Deadline{Event: event, Date: d, DateText: d.Format(ISODate), Category: cat}
}

func days(n int) time.Time {
	return today.AddDate(0, 0, n)
}

func eventNames(items []Deadline) []string {
	names := make([]string, 0, len(items))
	for _, d := range items {
		names = append(names, d.Event)
	}
	return names
}

func TestRecommend_imminentFirstThenFiller(t *testing.T) {
	pool := []Deadline{
		dl("imminent-3", days(3), CategoryOther),
		dl("imminent-1", days(1), CategoryOther),
		dl("imminent-4", days(4), CategoryOther),
	}
	for i := 0; i < 10; i++ {
		pool = append(pool, dl("later", days(10+i), CategoryOther))
	}
	// distinct titles so keys don't collide
	for i := 3; i < 13; i++ {
		pool[i].Event = pool[i].Event + "-" + pool[i].ISODate()
	}

	got := Recommend(pool, nil, nil, today, 7)
	if len(got) != 7 {
		t.Fatalf("Recommend() returned %d items; want 7", len(got))
	}

	// the 3 imminent items come first (ascending), then 4 fillers
	assert.Equal(t, []string{"imminent-1", "imminent-3", "imminent-4"}, eventNames(got[:3]))
	for i, d := range got[3:] {
		assert.Equal(t, days(10+i), d.Date, "filler %d", i)
	}
	// sorted ascending overall
	for i := 1; i < len(got); i++ {
		if got[i].Date.Before(got[i-1].Date) {
			t.Errorf("result not sorted ascending at %d: %v after %v", i, got[i].Date, got[i-1].Date)
		}
	}
}

func TestRecommend_filtersPastAndExcluded(t *testing.T) {
	past := dl("past", days(-1), CategoryOther)
	pinnedAway := dl("already pinned", days(2), CategoryOther)
	keeper := dl("keeper", days(3), CategoryOther)

	got := Recommend(
		[]Deadline{past, pinnedAway, keeper},
		nil,
		NewKeySet(pinnedAway.Key()),
		today, 7,
	)
	assert.Equal(t, []string{"keeper"}, eventNames(got))
}

func TestRecommend_todayIsIncluded(t *testing.T) {
	got := Recommend([]Deadline{dl("due today", today, CategoryOther)}, nil, nil, today, 7)
	assert.Equal(t, []string{"due today"}, eventNames(got))
}

func TestRecommend_pinnedCategoryPhase(t *testing.T) {
	pool := []Deadline{
		dl("imminent", days(2), CategoryOther),
		dl("pinned near", days(10), CategoryFinancialAid),
		dl("pinned late", days(20), CategoryFinancialAid),
		dl("pinned too far", days(25), CategoryFinancialAid), // outside the 21-day window
		dl("unpinned", days(8), CategoryOther),
	}

	got := Recommend(pool, NewCategorySet(CategoryFinancialAid), nil, today, 3)
	assert.Equal(t, []string{"imminent", "pinned near", "pinned late"}, eventNames(got))
}

func TestRecommend_categoryLadderOrder(t *testing.T) {
	// all items 30 days out: phases 1-2 contribute nothing, the ladder's
	// first productive pass picks one per category in priority order
	pool := []Deadline{
		dl("reg", days(30), CategoryRegistration),
		dl("acad", days(31), CategoryAcademic),
		dl("aid", days(32), CategoryFinancialAid),
		dl("adddrop", days(33), CategoryAddDrop),
		dl("other-1", days(34), CategoryOther),
		dl("other-2", days(35), CategoryOther),
	}

	got := Recommend(pool, nil, nil, today, 4)
	// ladder picks add/drop, financial-aid, registration, academic; result
	// is re-sorted ascending by date
	assert.ElementsMatch(t, []string{"adddrop", "aid", "reg", "acad"}, eventNames(got))
	for i := 1; i < len(got); i++ {
		assert.True(t, !got[i].Date.Before(got[i-1].Date))
	}
}

func TestRecommend_smallPoolIsNotAnError(t *testing.T) {
	pool := []Deadline{
		dl("only-1", days(1), CategoryOther),
		dl("only-2", days(50), CategoryOther),
	}
	got := Recommend(pool, nil, nil, today, 7)
	assert.Equal(t, []string{"only-1", "only-2"}, eventNames(got))
}

func TestRecommend_emptyPool(t *testing.T) {
	if got := Recommend(nil, nil, nil, today, 7); len(got) != 0 {
		t.Errorf("Recommend(nil) = %v; want none", got)
	}
}

func TestRecommend_noDuplicateKeys(t *testing.T) {
	// same event on the same date via different category paths must be
	// selected once only
	a := dl("duplicate", days(2), CategoryOther)
	b := dl("DUPLICATE", days(2), CategoryAddDrop) // same key: casing is normalized
	got := Recommend([]Deadline{a, b}, NewCategorySet(CategoryAddDrop), nil, today, 7)
	if len(got) != 1 {
		t.Errorf("Recommend() returned %d items; want 1 (key deduplication)", len(got))
	}
}
