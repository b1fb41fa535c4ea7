package dummydb

import "github.com/trezcool/tarehe/core/deadline"

type deadlineRepository struct {
	db *deadlineTable
}

var _ deadline.Repository = (*deadlineRepository)(nil) // interface compliance check

func NewDeadlineRepository(db *DB) deadline.Repository {
	return &deadlineRepository{db: db.deadline}
}

func (repo *deadlineRepository) ReplaceAllDeadlines(items []deadline.Deadline) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	rows := make([]deadline.Deadline, len(items))
	copy(rows, items)
	repo.db.rows = rows
	return nil
}

func (repo *deadlineRepository) QueryAllDeadlines() ([]deadline.Deadline, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rows := make([]deadline.Deadline, len(repo.db.rows))
	copy(rows, repo.db.rows)
	return rows, nil
}
