package main

import (
	"log"
	"os"

	"github.com/trezcool/tarehe/core"
	"github.com/trezcool/tarehe/core/deadline"
	"github.com/trezcool/tarehe/core/student"
	"github.com/trezcool/tarehe/scrape"
	emailsvc "github.com/trezcool/tarehe/services/email"
	logsvc "github.com/trezcool/tarehe/services/logger"
	"github.com/trezcool/tarehe/storage/database"
	sqlxrepos "github.com/trezcool/tarehe/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.LoadConfig()

	appLogger := logsvc.NewRollbarLogger(logger, conf)
	appLogger.Enable(!conf.Debug)

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(appLogger)
	}
	scraper := scrape.NewScraper(conf, appLogger)
	deadlineSvc := deadline.NewService(sqlxrepos.NewDeadlineRepository(db), scraper, appLogger)
	studentSvc := student.NewService(sqlxrepos.NewStudentRepository(db), deadlineSvc, mailSvc, appLogger)

	// start CLI
	cli := commandLine{
		db:          db,
		deadlineSvc: deadlineSvc,
		studentSvc:  studentSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
