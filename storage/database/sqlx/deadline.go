// Package sqlxrepos implements the repositories over postgres with sqlx.
package sqlxrepos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/tarehe/core/deadline"
)

type deadlineRow struct {
	ID       int       `db:"id"`
	Event    string    `db:"event"`
	Date     time.Time `db:"date"`
	DateText string    `db:"date_text"`
	Category string    `db:"category"`
}

func (r deadlineRow) toDeadline() deadline.Deadline {
	return deadline.Deadline{
		Event:    r.Event,
		Date:     r.Date.UTC(),
		DateText: r.DateText,
		Category: deadline.Category(r.Category),
	}
}

type deadlineRepository struct {
	db *sqlx.DB
}

var _ deadline.Repository = (*deadlineRepository)(nil) // interface compliance check

func NewDeadlineRepository(db *sqlx.DB) deadline.Repository {
	return &deadlineRepository{db: db}
}

// ReplaceAllDeadlines swaps the whole snapshot in one transaction so
// readers never observe a half-refreshed calendar.
func (repo *deadlineRepository) ReplaceAllDeadlines(items []deadline.Deadline) error {
	tx, err := repo.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec("DELETE FROM deadline"); err != nil {
		return errors.Wrap(err, "clearing deadlines")
	}
	for _, d := range items {
		_, err = tx.NamedExec(
			`INSERT INTO deadline (event, date, date_text, category)
			 VALUES (:event, :date, :date_text, :category)`,
			deadlineRow{Event: d.Event, Date: d.Date, DateText: d.DateText, Category: string(d.Category)},
		)
		if err != nil {
			return errors.Wrap(err, "inserting deadline")
		}
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}

func (repo *deadlineRepository) QueryAllDeadlines() ([]deadline.Deadline, error) {
	var rows []deadlineRow
	if err := repo.db.Select(&rows, "SELECT * FROM deadline ORDER BY date, event"); err != nil {
		return nil, errors.Wrap(err, "selecting deadlines")
	}
	items := make([]deadline.Deadline, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toDeadline())
	}
	return items, nil
}
