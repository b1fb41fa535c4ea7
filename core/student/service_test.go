package student_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tarehe/core"
	"github.com/trezcool/tarehe/core/deadline"
	"github.com/trezcool/tarehe/core/student"
	dummydb "github.com/trezcool/tarehe/storage/database/dummy"
)

type fakeMailService struct {
	sent []*core.EmailMessage
}

func (svc *fakeMailService) SendMessages(messages ...*core.EmailMessage) {
	svc.sent = append(svc.sent, messages...)
}

type fakeDeadlineSource struct {
	items []deadline.Deadline
}

func (src *fakeDeadlineSource) QueryAll() ([]deadline.Deadline, error) {
	return src.items, nil
}

func newService(t *testing.T, items []deadline.Deadline) (*student.Service, *fakeMailService) {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)
	mailSvc := &fakeMailService{}
	svc := student.NewService(
		dummydb.NewStudentRepository(db),
		&fakeDeadlineSource{items: items},
		mailSvc,
		core.NopLogger{},
	)
	return svc, mailSvc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Create(t *testing.T) {
	svc, _ := newService(t, nil)

	st, err := svc.Create(student.NewStudent{Name: "Jo Akelo", Email: "Jo.Akelo@uni.edu", LeadDays: 10})
	require.NoError(t, err)
	assert.NotZero(t, st.ID)
	assert.Equal(t, "jo.akelo@uni.edu", st.Email) // lowercased
	assert.Equal(t, 10, st.LeadDays)
	assert.False(t, st.CreatedAt.IsZero())

	// duplicate email is a validation error
	_, err = svc.Create(student.NewStudent{Name: "Other", Email: "jo.akelo@uni.edu"})
	require.Error(t, err)
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)

	// lead time outside bounds is clamped on create
	st2, err := svc.Create(student.NewStudent{Name: "Max", Email: "max@uni.edu", LeadDays: 99})
	require.NoError(t, err)
	assert.Equal(t, core.MaxLeadDays, st2.LeadDays)
}

func TestService_UpdatePrefs(t *testing.T) {
	svc, _ := newService(t, nil)
	st, err := svc.Create(student.NewStudent{Name: "Jo", Email: "jo@uni.edu", LeadDays: 7})
	require.NoError(t, err)

	tests := []struct {
		name     string
		leadDays int
		want     int
	}{
		{"negative clamps to zero", -5, 0},
		{"above max clamps to max", 99, core.MaxLeadDays},
		{"in range kept", 14, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.UpdatePrefs(st.ID, student.UpdatePrefs{LeadDays: &tt.leadDays})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.LeadDays)
		})
	}

	t.Run("pinned categories replaced", func(t *testing.T) {
		got, err := svc.UpdatePrefs(st.ID, student.UpdatePrefs{PinnedCategories: []string{"registration"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"registration"}, got.PinnedCategories)
	})

	t.Run("unknown student", func(t *testing.T) {
		n := 3
		_, err := svc.UpdatePrefs(999, student.UpdatePrefs{LeadDays: &n})
		assert.ErrorIs(t, err, student.ErrNotFound)
	})
}

func TestService_PinUnpin(t *testing.T) {
	svc, _ := newService(t, nil)
	st, err := svc.Create(student.NewStudent{Name: "Jo", Email: "jo@uni.edu"})
	require.NoError(t, err)

	pin := student.Pin{Key: "scr|2025-09-01|census day", Title: "Census Day", Date: date(2025, time.September, 1)}
	st, err = svc.Pin(st.ID, pin)
	require.NoError(t, err)
	require.Len(t, st.Pins, 1)

	// re-pinning the same key updates in place
	pin.Date = date(2025, time.September, 2)
	st, err = svc.Pin(st.ID, pin)
	require.NoError(t, err)
	require.Len(t, st.Pins, 1)
	assert.Equal(t, date(2025, time.September, 2), st.Pins[0].Date)

	// a personal event appends under its own key
	personalKey := deadline.PersonalKey("42")
	st, err = svc.Pin(st.ID, student.Pin{Key: personalKey, Title: "Thesis draft", Date: date(2025, time.October, 1)})
	require.NoError(t, err)
	assert.Len(t, st.Pins, 2)

	// unpin
	st, err = svc.Unpin(st.ID, personalKey)
	require.NoError(t, err)
	assert.Len(t, st.Pins, 1)

	_, err = svc.Unpin(st.ID, personalKey)
	assert.ErrorIs(t, err, student.ErrPinNotFound)
}

func TestService_SendDigests(t *testing.T) {
	today := time.Now().UTC()
	soon := deadline.StartOfDay(today.AddDate(0, 0, 2))
	far := deadline.StartOfDay(today.AddDate(0, 0, 60))
	items := []deadline.Deadline{
		{Event: "Census Day", Date: soon, Category: deadline.CategoryRegistration},
		{Event: "Graduation Application Due", Date: far, Category: deadline.CategoryAcademic},
	}
	svc, mailSvc := newService(t, items)

	// no pins: never emailed
	_, err := svc.Create(student.NewStudent{Name: "No Pins", Email: "nopins@uni.edu", LeadDays: 7})
	require.NoError(t, err)

	// pinned item due within the lead window
	due, err := svc.Create(student.NewStudent{Name: "Due Soon", Email: "due@uni.edu", LeadDays: 7})
	require.NoError(t, err)
	_, err = svc.Pin(due.ID, student.Pin{Key: "scr|x|census day", Title: "Census Day", Date: soon})
	require.NoError(t, err)

	// pinned item outside the lead window
	notDue, err := svc.Create(student.NewStudent{Name: "Not Due", Email: "notdue@uni.edu", LeadDays: 7})
	require.NoError(t, err)
	_, err = svc.Pin(notDue.ID, student.Pin{Key: "scr|y|graduation application due", Title: "Graduation Application Due", Date: far})
	require.NoError(t, err)

	require.NoError(t, svc.SendDigests())

	require.Len(t, mailSvc.sent, 1)
	msg := mailSvc.sent[0]
	require.Len(t, msg.To, 1)
	assert.Equal(t, "due@uni.edu", msg.To[0].Address)
	assert.Equal(t, "deadline-digest", msg.TemplateName)

	data, ok := msg.TemplateData.(student.DigestData)
	require.True(t, ok)
	require.Len(t, data.Deadlines, 1)
	assert.Equal(t, "Census Day", data.Deadlines[0].Event)
}
