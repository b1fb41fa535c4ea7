package student

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/tarehe/core"
	"github.com/trezcool/tarehe/core/deadline"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrEmailExists = errors.New("a student with this email already exists")
	ErrPinNotFound = errors.New("pin not found")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excludedStudents ...Student) error
		CreateStudent(st Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		GetStudentByEmail(email string) (Student, error)
		UpdateStudent(st Student) (Student, error)
		DeleteStudentsByID(ids ...int) error
	}

	// DeadlineSource exposes the deadline snapshot the digests are built
	// from; satisfied by deadline.Service.
	DeadlineSource interface {
		QueryAll() ([]deadline.Deadline, error)
	}

	Service struct {
		repo      Repository
		deadlines DeadlineSource
		mailSvc   core.EmailService
		log       core.Logger
	}
)

func NewService(repo Repository, deadlines DeadlineSource, mailSvc core.EmailService, log core.Logger) *Service {
	return &Service{repo: repo, deadlines: deadlines, mailSvc: mailSvc, log: log}
}

func (svc *Service) checkUniqueness(email string, exclStudents ...Student) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclStudents...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	email := core.CleanString(ns.Email, true /* lower */)
	if err := svc.checkUniqueness(email); err != nil {
		return Student{}, err
	}
	now := time.Now().UTC()
	st := Student{
		Name:      core.CleanString(ns.Name),
		Email:     email,
		LeadDays:  clampLeadDays(ns.LeadDays),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateStudent(st)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) GetByEmail(email string) (Student, error) {
	return svc.repo.GetStudentByEmail(core.CleanString(email, true /* lower */))
}

// UpdatePrefs applies preference changes; the lead time is clamped to
// [0, core.MaxLeadDays] so downstream consumers can trust the stored value.
func (svc *Service) UpdatePrefs(id int, up UpdatePrefs) (Student, error) {
	st, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	if up.LeadDays != nil {
		st.LeadDays = clampLeadDays(*up.LeadDays)
	}
	if up.PinnedCategories != nil {
		st.PinnedCategories = up.PinnedCategories
	}
	st.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(st)
}

// Pin records a pinned item; re-pinning the same key updates its metadata
// in place.
func (svc *Service) Pin(id int, pin Pin) (Student, error) {
	st, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	pin.Title = core.CleanString(pin.Title)
	replaced := false
	for i, p := range st.Pins {
		if p.Key == pin.Key {
			st.Pins[i] = pin
			replaced = true
			break
		}
	}
	if !replaced {
		st.Pins = append(st.Pins, pin)
	}
	st.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(st)
}

func (svc *Service) Unpin(id int, key string) (Student, error) {
	st, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	kept := st.Pins[:0]
	found := false
	for _, p := range st.Pins {
		if p.Key == key {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return Student{}, ErrPinNotFound
	}
	st.Pins = kept
	st.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(st)
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeleteStudentsByID(ids...)
}

// SendDigests builds and dispatches one reminder email per student whose
// pinned items fall due within their lead-time window. Students with no
// pins, or with nothing due, are skipped silently.
func (svc *Service) SendDigests() error {
	items, err := svc.deadlines.QueryAll()
	if err != nil {
		return pkgerrors.Wrap(err, "querying deadlines for digests")
	}
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return pkgerrors.Wrap(err, "querying students for digests")
	}

	now := time.Now().UTC()
	sent := 0
	for _, st := range students {
		pinned := st.PinnedIdentitySet()
		if len(pinned) == 0 {
			continue // zero pins: deliberate suppression, no email
		}
		due := deadline.BuildDigest(pinned, items, now, st.LeadDays)
		if len(due) == 0 {
			continue
		}
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Name: st.Name, Address: st.Email}},
			Subject:      "Your upcoming deadlines",
			TemplateName: "deadline-digest",
			TemplateData: DigestData{Student: st, Deadlines: due},
		})
		sent++
	}
	svc.log.Info(fmt.Sprintf("deadline digests dispatched: %d of %d students", sent, len(students)))
	return nil
}

// DigestData is the template payload of a digest email.
type DigestData struct {
	Student   Student
	Deadlines []deadline.Deadline
}

func clampLeadDays(n int) int {
	if n < 0 {
		return 0
	}
	if n > core.MaxLeadDays {
		return core.MaxLeadDays
	}
	return n
}
