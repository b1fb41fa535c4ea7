package deadline

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/tarehe/core"
)

type (
	// Repository stores the latest deduplicated deadline snapshot.
	Repository interface {
		ReplaceAllDeadlines(items []Deadline) error
		QueryAllDeadlines() ([]Deadline, error)
	}

	// Scraper fetches every configured calendar source and returns the raw
	// table rows in document order. A failing source logs and contributes
	// nothing; it never aborts the whole fetch.
	Scraper interface {
		FetchAll(ctx context.Context) []RawRow
	}

	Service struct {
		repo    Repository
		scraper Scraper
		log     core.Logger
	}
)

func NewService(repo Repository, scraper Scraper, log core.Logger) *Service {
	return &Service{repo: repo, scraper: scraper, log: log}
}

// Refresh re-scrapes all sources and replaces the stored snapshot with the
// freshly extracted, deduplicated set. Returns the snapshot size.
func (svc *Service) Refresh(ctx context.Context) (int, error) {
	rows := svc.scraper.FetchAll(ctx)
	items := Dedupe(Extract(rows))
	SortByDate(items)
	if err := svc.repo.ReplaceAllDeadlines(items); err != nil {
		return 0, errors.Wrap(err, "replacing deadline snapshot")
	}
	svc.log.Info(fmt.Sprintf("deadline snapshot refreshed: %d rows scraped, %d deadlines kept", len(rows), len(items)))
	return len(items), nil
}

// QueryAll returns the stored snapshot ascending by date.
func (svc *Service) QueryAll() ([]Deadline, error) {
	items, err := svc.repo.QueryAllDeadlines()
	if err != nil {
		return nil, errors.Wrap(err, "querying deadlines")
	}
	SortByDate(items)
	return items, nil
}

// Recommend runs the tiered selector over the stored snapshot with
// today = the current UTC day.
func (svc *Service) Recommend(pinnedCats CategorySet, exclude KeySet, target int) ([]Deadline, error) {
	items, err := svc.repo.QueryAllDeadlines()
	if err != nil {
		return nil, errors.Wrap(err, "querying deadlines")
	}
	return Recommend(items, pinnedCats, exclude, time.Now().UTC(), target), nil
}

// Digest builds the reminder set for a pinned-identity set with
// today = the current UTC day.
func (svc *Service) Digest(pinned IdentitySet, leadDays int) ([]Deadline, error) {
	items, err := svc.repo.QueryAllDeadlines()
	if err != nil {
		return nil, errors.Wrap(err, "querying deadlines")
	}
	return BuildDigest(pinned, items, time.Now().UTC(), leadDays), nil
}
