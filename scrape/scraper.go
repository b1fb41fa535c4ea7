// Package scrape fetches academic-calendar pages and flattens their HTML
// tables into raw rows for the extraction pipeline.
package scrape

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/trezcool/tarehe/core"
	"github.com/trezcool/tarehe/core/deadline"
)

type Scraper struct {
	client  *http.Client
	sources []core.ScrapeSource
	log     core.Logger
}

var _ deadline.Scraper = (*Scraper)(nil) // interface compliance check

func NewScraper(conf *core.Config, log core.Logger) *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: conf.Scrape.Timeout},
		sources: conf.Scrape.Sources,
		log:     log,
	}
}

// FetchAll fetches every configured source. Sources fail independently: an
// unreachable page is logged for operators and contributes zero rows, it
// never aborts the other sources.
func (s *Scraper) FetchAll(ctx context.Context) []deadline.RawRow {
	var rows []deadline.RawRow
	for _, src := range s.sources {
		srcRows, err := s.fetchOne(ctx, src)
		if err != nil {
			s.log.Error("calendar source fetch failed", errors.Wrap(err, src.Name))
			continue
		}
		rows = append(rows, srcRows...)
	}
	return rows
}

func (s *Scraper) fetchOne(ctx context.Context, src core.ScrapeSource) ([]deadline.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching page")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "parsing HTML")
	}
	return ParseDocument(doc), nil
}

// ParseDocument walks every table in document order and emits one RawRow
// per data row. The table's heading is its <caption>, or the nearest
// preceding h1-h3. The first cell is the event title unless it parses as a
// date, in which case the whole row is date cells (rowspan-style rows whose
// title cell lives on a previous row).
func ParseDocument(doc *goquery.Document) []deadline.RawRow {
	var rows []deadline.RawRow
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		heading := tableHeading(table)
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() == 0 {
				return // header or formatting row
			}
			texts := make([]string, 0, cells.Length())
			cells.Each(func(_ int, cell *goquery.Selection) {
				texts = append(texts, strings.TrimSpace(cell.Text()))
			})

			row := deadline.RawRow{Heading: heading}
			if _, ok := deadline.ParseDate(texts[0]); ok {
				row.DateCells = texts
			} else {
				row.Event = texts[0]
				row.DateCells = texts[1:]
			}
			rows = append(rows, row)
		})
	})
	return rows
}

func tableHeading(table *goquery.Selection) string {
	if caption := strings.TrimSpace(table.Find("caption").First().Text()); caption != "" {
		return caption
	}
	if h := table.PrevAllFiltered("h1,h2,h3").First(); h.Length() > 0 {
		return strings.TrimSpace(h.Text())
	}
	return ""
}
