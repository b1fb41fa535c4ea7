package deadline

import (
	"regexp"
	"strings"
	"time"

	"github.com/trezcool/tarehe/core"
)

// Session qualifiers. Calendar pages repeat the same deadline once per
// summer session ("Summer A-term Census Day", "Summer Full-term Census
// Day"); those rows are variants of one event and get merged.
var (
	sessionQualifierRe = regexp.MustCompile(`(?i)\b(?:summer\s+)?(?:full[\s-]?term|a[\s-]term|session\s+a|b[\s-]term|session\s+b)\b`)

	fullTagRe = regexp.MustCompile(`(?i)\bfull\b`)
	aTagRe    = regexp.MustCompile(`(?i)\ba[\s-]term\b|\bsession\s+a\b`)
	bTagRe    = regexp.MustCompile(`(?i)\bb[\s-]term\b|\bsession\s+b\b`)

	// a previously merged "(Full/A)" style suffix; recognized so running
	// Dedupe over its own output changes nothing
	sessionSuffixRe = regexp.MustCompile(`(?i)\s*\(((?:full|a|b)(?:/(?:full|a|b))*)\)\s*$`)
)

// sessionSet tracks which academic-session variants of an event were seen.
type sessionSet struct {
	full, a, b bool
}

func (s sessionSet) union(o sessionSet) sessionSet {
	return sessionSet{full: s.full || o.full, a: s.a || o.a, b: s.b || o.b}
}

func (s sessionSet) empty() bool {
	return !(s.full || s.a || s.b)
}

// label renders the accumulated tags in fixed Full, A, B order.
func (s sessionSet) label() string {
	var tags []string
	if s.full {
		tags = append(tags, "Full")
	}
	if s.a {
		tags = append(tags, "A")
	}
	if s.b {
		tags = append(tags, "B")
	}
	return strings.Join(tags, "/")
}

// baseTitle strips session qualifiers (and any already-merged suffix) from
// a title, collapsing whitespace and trimming stray trailing dashes.
func baseTitle(title string) string {
	title = sessionSuffixRe.ReplaceAllString(title, "")
	title = sessionQualifierRe.ReplaceAllString(title, " ")
	title = collapseSpace(title)
	return strings.TrimSpace(strings.TrimRight(title, "-"))
}

// sessionTags extracts the session markers present in a title. A title can
// carry more than one marker; all matches are collected.
func sessionTags(title string) sessionSet {
	var tags sessionSet
	if m := sessionSuffixRe.FindStringSubmatch(title); m != nil {
		for _, tok := range strings.Split(strings.ToLower(m[1]), "/") {
			switch tok {
			case "full":
				tags.full = true
			case "a":
				tags.a = true
			case "b":
				tags.b = true
			}
		}
		title = sessionSuffixRe.ReplaceAllString(title, "")
	}
	if fullTagRe.MatchString(title) {
		tags.full = true
	}
	if aTagRe.MatchString(title) {
		tags.a = true
	}
	if bTagRe.MatchString(title) {
		tags.b = true
	}
	return tags
}

// preferCategory resolves category conflicts within a merge group: a
// specific category beats the `other` fallback; otherwise the first-seen
// category stands.
func preferCategory(existing, incoming Category) Category {
	if existing == CategoryOther && incoming.Specific() {
		return incoming
	}
	return existing
}

type mergeGroup struct {
	base     string
	dateText string
	date     time.Time
	category Category
	tags     sessionSet
}

// Dedupe collapses session variants of the same event into one Deadline
// per (date, base title) pair. Session tags are unioned and rendered as a
// "(Full/A)" style suffix. Output order is first-seen; callers sort.
// Dedupe is idempotent over its own output.
func Dedupe(cands []Candidate) []Deadline {
	groups := make(map[string]*mergeGroup)
	var order []string

	for _, c := range cands {
		// malformed upstream rows contribute nothing
		if core.CleanString(c.Event) == "" || c.Category == "" {
			continue
		}

		base := baseTitle(c.Event)
		key := c.Date.Format(ISODate) + "::" + strings.ToLower(base)

		g, ok := groups[key]
		if !ok {
			groups[key] = &mergeGroup{
				base:     base,
				dateText: c.DateText,
				date:     c.Date,
				category: c.Category,
				tags:     sessionTags(c.Event),
			}
			order = append(order, key)
			continue
		}
		g.category = preferCategory(g.category, c.Category)
		g.tags = g.tags.union(sessionTags(c.Event))
	}

	out := make([]Deadline, 0, len(order))
	for _, key := range order {
		g := groups[key]
		event := g.base
		if !g.tags.empty() {
			event += " (" + g.tags.label() + ")"
		}
		out = append(out, Deadline{
			Event:    event,
			Date:     g.date,
			DateText: g.dateText,
			Category: g.category,
		})
	}
	return out
}
