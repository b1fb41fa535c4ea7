// Package dummydb provides in-memory repositories for development and
// tests; same contracts as the postgres-backed ones.
package dummydb

import (
	"sync"

	"github.com/trezcool/tarehe/core/deadline"
	"github.com/trezcool/tarehe/core/student"
)

type (
	deadlineTable struct {
		sync.RWMutex
		rows []deadline.Deadline
	}

	studentTable struct {
		sync.RWMutex
		table map[int]*student.Student
	}

	DB struct {
		deadline *deadlineTable
		student  *studentTable
	}
)

func Open() (*DB, error) {
	return &DB{
		deadline: &deadlineTable{},
		student:  &studentTable{table: make(map[int]*student.Student)},
	}, nil
}
