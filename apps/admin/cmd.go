package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/tarehe/core/deadline"
	"github.com/trezcool/tarehe/core/student"
	"github.com/trezcool/tarehe/storage/database"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db          *sqlx.DB
	deadlineSvc *deadline.Service
	studentSvc  *student.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate - bring the database schema up to date")
	fmt.Println("  refresh - re-scrape all calendar sources and replace the deadline snapshot")
	fmt.Println("  senddigests - send the reminder digest to every eligible student")
	fmt.Println("  addstudent -name NAME -email EMAIL [-leaddays N] - register a student")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentName := addStudentCmd.String("name", "", "The student's full name.")
	addStudentEmail := addStudentCmd.String("email", "", "The student's email address.")
	addStudentLeadDays := addStudentCmd.Int("leaddays", 7, "Reminder lead time in days.")

	switch args[1] {
	case "migrate":
		return cli.migrate()
	case "refresh":
		return cli.refresh()
	case "senddigests":
		return cli.sendDigests()
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentName == "" || *addStudentEmail == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentName, *addStudentEmail, *addStudentLeadDays)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) migrate() error {
	if err := database.Migrate(cli.db); err != nil {
		return err
	}
	fmt.Println("database schema up to date")
	return nil
}

func (cli *commandLine) refresh() error {
	count, err := cli.deadlineSvc.Refresh(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("deadline snapshot refreshed: %d deadlines\n", count)
	return nil
}

func (cli *commandLine) sendDigests() error {
	return cli.studentSvc.SendDigests()
}

func (cli *commandLine) addStudent(name, email string, leadDays int) error {
	st, err := cli.studentSvc.Create(student.NewStudent{Name: name, Email: email, LeadDays: leadDays})
	if err != nil {
		return err
	}
	fmt.Printf("student created: %d (%s)\n", st.ID, st.Email)
	return nil
}
