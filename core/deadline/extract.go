package deadline

import "github.com/trezcool/tarehe/core"

// Extract walks raw scraped rows in document order and emits one Candidate
// per parseable date cell. A row with an empty event cell inherits the
// title of the last titled row in the same table (rowspan-style headers);
// the carried title resets when the table heading changes. Rows with no
// usable title or no parseable date are skipped silently: calendar pages
// legitimately mix data rows with formatting rows.
func Extract(rows []RawRow) []Candidate {
	var cands []Candidate
	var title, heading string
	first := true

	for _, row := range rows {
		if first || row.Heading != heading {
			heading = row.Heading
			title = ""
			first = false
		}
		if t := core.CleanString(row.Event); t != "" {
			title = t
		}
		if title == "" {
			continue
		}

		// category computed once per row; every date cell in the row shares it
		cat := Categorize(title, heading)
		for _, cell := range row.DateCells {
			text := core.CleanString(cell)
			if text == "" {
				continue
			}
			date, ok := ParseDate(text)
			if !ok {
				continue
			}
			cands = append(cands, Candidate{
				Event:    title,
				DateText: text,
				Date:     date,
				Category: cat,
			})
		}
	}
	return cands
}
