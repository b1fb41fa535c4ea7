package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/trezcool/tarehe/apps/api/echo"
	"github.com/trezcool/tarehe/core"
	"github.com/trezcool/tarehe/core/deadline"
	"github.com/trezcool/tarehe/core/student"
	"github.com/trezcool/tarehe/scheduler"
	"github.com/trezcool/tarehe/scrape"
	emailsvc "github.com/trezcool/tarehe/services/email"
	logsvc "github.com/trezcool/tarehe/services/logger"
	"github.com/trezcool/tarehe/storage/database"
	sqlxrepos "github.com/trezcool/tarehe/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.LoadConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	scraper := scrape.NewScraper(conf, logger)
	deadlineSvc := deadline.NewService(sqlxrepos.NewDeadlineRepository(db), scraper, logger)
	studentSvc := student.NewService(sqlxrepos.NewStudentRepository(db), deadlineSvc, mailSvc, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()

	// =========================================================================
	// Start Scheduler

	schedCtx, cancelSched := context.WithCancel(context.Background())
	sched := scheduler.New(conf, logger, deadlineSvc, studentSvc)
	go func() {
		if err := sched.Start(schedCtx); err != nil {
			logger.Error(fmt.Sprintf("scheduler error: %v", err), err)
		}
	}()
	defer func() {
		cancelSched()
		sched.Stop()
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			DeadlineSvc: deadlineSvc,
			StudentSvc:  studentSvc,
			Validate:    validate,
			Translator:  translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
