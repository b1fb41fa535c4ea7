package deadline

import (
	"regexp"
	"strings"
	"time"
)

// Category is the semantic bucket a deadline falls into.
type Category string

const (
	CategoryRegistration Category = "registration"
	CategoryAddDrop      Category = "add/drop"
	CategoryFinancialAid Category = "financial-aid"
	CategoryAcademic     Category = "academic"
	CategoryOther        Category = "other"
)

// Specific reports whether the category carries real information
// (anything but the `other` fallback).
func (c Category) Specific() bool {
	return c != "" && c != CategoryOther
}

type (
	// RawRow is one scraped calendar-table row: the event cell, the table's
	// heading and every remaining cell that may hold a date. Rows with an
	// empty Event inherit the title of the last titled row in the same table.
	RawRow struct {
		Event     string
		Heading   string
		DateCells []string
	}

	// Candidate is a single extracted (title, date, category) triple prior
	// to deduplication. Never mutated after creation; merging builds new
	// values.
	Candidate struct {
		Event    string
		DateText string
		Date     time.Time
		Category Category
	}

	// Deadline is the externally served, deduplicated shape. Date is
	// midnight UTC; DateText preserves the original scraped text so ranges
	// can be re-rendered (and exported) faithfully.
	Deadline struct {
		Event    string    `json:"event"`
		Date     time.Time `json:"date"`
		DateText string    `json:"date_text"`
		Category Category  `json:"category"`
	}
)

func (d Deadline) ISODate() string {
	return d.Date.Format(ISODate)
}

const (
	scrapedKeyPrefix  = "scr"
	personalKeyPrefix = "me"

	keyTitleMaxLen = 80
)

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Key is the stable pin/exclusion identity of a scraped deadline. Two
// deadlines on the same date whose titles agree on the first 80 characters
// (case- and whitespace-insensitively) share a Key.
func (d Deadline) Key() string {
	title := collapseSpace(strings.ToLower(d.Event))
	if len(title) > keyTitleMaxLen {
		title = title[:keyTitleMaxLen]
	}
	return scrapedKeyPrefix + "|" + d.ISODate() + "|" + title
}

// PersonalKey is the pin identity of a student's own event.
func PersonalKey(id string) string {
	return personalKeyPrefix + "|" + id
}

// Identity is the digest-matching identity: title + date only. It
// deliberately ignores category and source so a pin recorded against
// slightly different metadata still matches.
func Identity(title string, date time.Time) string {
	return collapseSpace(strings.ToLower(title)) + "|" + date.Format(ISODate)
}

func (d Deadline) Identity() string {
	return Identity(d.Event, d.Date)
}

type (
	CategorySet map[Category]bool
	KeySet      map[string]bool
	IdentitySet map[string]bool
)

func NewCategorySet(cats ...Category) CategorySet {
	set := make(CategorySet, len(cats))
	for _, c := range cats {
		set[c] = true
	}
	return set
}

func NewKeySet(keys ...string) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

func NewIdentitySet(ids ...string) IdentitySet {
	set := make(IdentitySet, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
