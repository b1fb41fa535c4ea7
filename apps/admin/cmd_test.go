package main

import (
	"context"
	"testing"

	"github.com/trezcool/tarehe/core"
	"github.com/trezcool/tarehe/core/deadline"
	"github.com/trezcool/tarehe/core/student"
	dummydb "github.com/trezcool/tarehe/storage/database/dummy"
)

type fakeScraper struct {
	rows []deadline.RawRow
}

func (s *fakeScraper) FetchAll(ctx context.Context) []deadline.RawRow {
	return s.rows
}

type fakeMailService struct{}

func (fakeMailService) SendMessages(...*core.EmailMessage) {}

func setup(t *testing.T) *commandLine {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}

	scraper := &fakeScraper{rows: []deadline.RawRow{
		{Heading: "Fall Registration", Event: "Census Day", DateCells: []string{"September 1, 2025"}},
	}}
	deadlineSvc := deadline.NewService(dummydb.NewDeadlineRepository(db), scraper, core.NopLogger{})
	studentSvc := student.NewService(dummydb.NewStudentRepository(db), deadlineSvc, fakeMailService{}, core.NopLogger{})

	return &commandLine{
		deadlineSvc: deadlineSvc,
		studentSvc:  studentSvc,
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "refresh", args: []string{"refresh"}},
		{name: "senddigests", args: []string{"senddigests"}},
		{name: "addstudent: no args", args: []string{"addstudent"}, wantErr: errHelp},
		{name: "addstudent: name only", args: []string{"addstudent", "-name", "Jo"}, wantErr: errHelp},
		{name: "addstudent", args: []string{"addstudent", "-name", "Jo", "-email", "jo@uni.edu", "-leaddays", "10"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_refresh(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "refresh"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	items, err := cli.deadlineSvc.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll() failed, %v", err)
	}
	if len(items) != 1 {
		t.Errorf("snapshot size = %d, want 1", len(items))
	}
}
