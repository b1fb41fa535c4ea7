package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDigest(t *testing.T) {
	todayDigest := date(2025, time.May, 28)
	censusDay := date(2025, time.June, 1) // 4 days out
	all := []Deadline{
		dl("Census Day", censusDay, CategoryRegistration),
		dl("Tuition due", date(2025, time.June, 15), CategoryFinancialAid),
	}
	pinned := NewIdentitySet(Identity("census day", censusDay))

	t.Run("within window", func(t *testing.T) {
		got := BuildDigest(pinned, all, todayDigest, 5) // [May 28, Jun 2)
		assert.Equal(t, []string{"Census Day"}, eventNames(got))
	})

	t.Run("upper bound is exclusive", func(t *testing.T) {
		// 4 days out: leadDays=4 puts the window at [May 28, Jun 1), excluded
		got := BuildDigest(pinned, all, todayDigest, 4)
		assert.Empty(t, got)
	})

	t.Run("boundary minus one is included", func(t *testing.T) {
		got := BuildDigest(pinned, all, todayDigest, 5)
		assert.Len(t, got, 1)
	})

	t.Run("empty pinned set suppresses the digest", func(t *testing.T) {
		got := BuildDigest(nil, all, todayDigest, 30)
		assert.Empty(t, got)
	})

	t.Run("unpinned items never appear", func(t *testing.T) {
		got := BuildDigest(pinned, all, todayDigest, 30)
		assert.Equal(t, []string{"Census Day"}, eventNames(got))
	})

	t.Run("past items never appear", func(t *testing.T) {
		got := BuildDigest(pinned, all, date(2025, time.June, 2), 30)
		assert.Empty(t, got)
	})
}

func TestBuildDigest_identityIgnoresCategoryAndCase(t *testing.T) {
	d := date(2025, time.June, 1)
	all := []Deadline{dl("Census Day", d, CategoryRegistration)}

	// pin recorded with different casing and surrounding whitespace
	pinned := NewIdentitySet(Identity("  CENSUS DAY ", d))
	got := BuildDigest(pinned, all, date(2025, time.May, 28), 7)
	assert.Len(t, got, 1)
}

func TestBuildDigest_sortedAscending(t *testing.T) {
	all := []Deadline{
		dl("b", date(2025, time.June, 3), CategoryOther),
		dl("a", date(2025, time.June, 1), CategoryOther),
	}
	pinned := NewIdentitySet(all[0].Identity(), all[1].Identity())
	got := BuildDigest(pinned, all, date(2025, time.May, 28), 10)
	assert.Equal(t, []string{"a", "b"}, eventNames(got))
}
