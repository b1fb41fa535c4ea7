package sqlxrepos

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/tarehe/core/student"
)

type studentRow struct {
	ID               int             `db:"id"`
	Name             string          `db:"name"`
	Email            string          `db:"email"`
	LeadDays         int             `db:"lead_days"`
	PinnedCategories json.RawMessage `db:"pinned_categories"`
	Pins             json.RawMessage `db:"pins"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

func (r studentRow) toStudent() (student.Student, error) {
	st := student.Student{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		LeadDays:  r.LeadDays,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
	if len(r.PinnedCategories) > 0 {
		if err := json.Unmarshal(r.PinnedCategories, &st.PinnedCategories); err != nil {
			return student.Student{}, errors.Wrap(err, "decoding pinned categories")
		}
	}
	if len(r.Pins) > 0 {
		if err := json.Unmarshal(r.Pins, &st.Pins); err != nil {
			return student.Student{}, errors.Wrap(err, "decoding pins")
		}
	}
	return st, nil
}

func toStudentRow(st student.Student) (studentRow, error) {
	cats, err := json.Marshal(orEmpty(st.PinnedCategories))
	if err != nil {
		return studentRow{}, errors.Wrap(err, "encoding pinned categories")
	}
	pins, err := json.Marshal(orEmptyPins(st.Pins))
	if err != nil {
		return studentRow{}, errors.Wrap(err, "encoding pins")
	}
	return studentRow{
		ID:               st.ID,
		Name:             st.Name,
		Email:            st.Email,
		LeadDays:         st.LeadDays,
		PinnedCategories: cats,
		Pins:             pins,
		CreatedAt:        st.CreatedAt,
		UpdatedAt:        st.UpdatedAt,
	}, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyPins(p []student.Pin) []student.Pin {
	if p == nil {
		return []student.Pin{}
	}
	return p
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CheckEmailUniqueness(email string, excludedStudents ...student.Student) error {
	query := "SELECT COUNT(*) FROM student WHERE email = $1"
	args := []interface{}{email}
	if len(excludedStudents) > 0 {
		ids := make([]int, 0, len(excludedStudents))
		for _, st := range excludedStudents {
			ids = append(ids, st.ID)
		}
		q, inArgs, err := sqlx.In("SELECT COUNT(*) FROM student WHERE email = ? AND id NOT IN (?)", email, ids)
		if err != nil {
			return errors.Wrap(err, "building uniqueness query")
		}
		query, args = repo.db.Rebind(q), inArgs
	}

	var count int
	if err := repo.db.Get(&count, query, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return student.ErrEmailExists
	}
	return nil
}

func (repo *studentRepository) CreateStudent(st student.Student) (student.Student, error) {
	row, err := toStudentRow(st)
	if err != nil {
		return student.Student{}, err
	}
	err = repo.db.QueryRow(
		`INSERT INTO student (name, email, lead_days, pinned_categories, pins, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		row.Name, row.Email, row.LeadDays, row.PinnedCategories, row.Pins, row.CreatedAt, row.UpdatedAt,
	).Scan(&st.ID)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return st, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.Select(&rows, "SELECT * FROM student ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		st, err := r.toStudent()
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	var row studentRow
	if err := repo.db.Get(&row, "SELECT * FROM student WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "selecting student")
	}
	return row.toStudent()
}

func (repo *studentRepository) GetStudentByEmail(email string) (student.Student, error) {
	var row studentRow
	if err := repo.db.Get(&row, "SELECT * FROM student WHERE email = $1", email); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "selecting student")
	}
	return row.toStudent()
}

func (repo *studentRepository) UpdateStudent(st student.Student) (student.Student, error) {
	row, err := toStudentRow(st)
	if err != nil {
		return student.Student{}, err
	}
	res, err := repo.db.NamedExec(
		`UPDATE student
		 SET name = :name, email = :email, lead_days = :lead_days,
		     pinned_categories = :pinned_categories, pins = :pins, updated_at = :updated_at
		 WHERE id = :id`,
		row,
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return st, nil
}

func (repo *studentRepository) DeleteStudentsByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In("DELETE FROM student WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}
