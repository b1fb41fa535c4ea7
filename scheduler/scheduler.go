// Package scheduler runs the periodic jobs: calendar re-scrapes and daily
// digest dispatch.
package scheduler

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/trezcool/tarehe/core"
	"github.com/trezcool/tarehe/core/deadline"
	"github.com/trezcool/tarehe/core/student"
)

type Scheduler struct {
	cron        *cron.Cron
	conf        *core.Config
	log         core.Logger
	deadlineSvc *deadline.Service
	studentSvc  *student.Service
}

func New(conf *core.Config, log core.Logger, deadlineSvc *deadline.Service, studentSvc *student.Service) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		conf:        conf,
		log:         log,
		deadlineSvc: deadlineSvc,
		studentSvc:  studentSvc,
	}
}

// Start registers the jobs and blocks until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.conf.Scheduler.RefreshSpec, s.refresh); err != nil {
		return errors.Wrap(err, "adding refresh job")
	}
	if _, err := s.cron.AddFunc(s.conf.Scheduler.DigestSpec, s.sendDigests); err != nil {
		return errors.Wrap(err, "adding digest job")
	}

	s.cron.Start()
	s.log.Info(fmt.Sprintf("scheduler started (refresh %q, digest %q)",
		s.conf.Scheduler.RefreshSpec, s.conf.Scheduler.DigestSpec))

	<-ctx.Done()
	return nil
}

// Stop drains running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) refresh() {
	if _, err := s.deadlineSvc.Refresh(context.Background()); err != nil {
		s.log.Error("scheduled refresh failed", err)
	}
}

func (s *Scheduler) sendDigests() {
	if err := s.studentSvc.SendDigests(); err != nil {
		s.log.Error("digest dispatch failed", err)
	}
}
