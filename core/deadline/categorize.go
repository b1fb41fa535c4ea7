package deadline

import (
	"regexp"
	"strings"
)

// categoryRules are tested in order; the first match wins. Order is
// deliberate: "Fall Tuition Registration Fee Due" must classify as
// registration even though it also mentions a fee.
var categoryRules = []struct {
	re  *regexp.Regexp
	cat Category
}{
	{regexp.MustCompile(`registration|register|enroll`), CategoryRegistration},
	{regexp.MustCompile(`add|drop|withdrawal|change.*course`), CategoryAddDrop},
	{regexp.MustCompile(`financial aid|payment|tuition|fee|u-pass`), CategoryFinancialAid},
}

// Categorize maps an event title and its table heading to a Category via
// keyword heuristics over their lowercased concatenation.
func Categorize(eventText, headingText string) Category {
	text := strings.ToLower(eventText + " " + headingText)
	for _, rule := range categoryRules {
		if rule.re.MatchString(text) {
			return rule.cat
		}
	}
	return CategoryOther
}
