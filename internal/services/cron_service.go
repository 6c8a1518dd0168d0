package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron      *cron.Cron
	auditSvc  *AuditService
	retention time.Duration
	logger    *logrus.Logger
}

// NewCronService creates a new CronService. Audit rows older than retention
// are purged on each run of the cleanup job.
func NewCronService(auditSvc *AuditService, retention time.Duration, logger *logrus.Logger) *CronService {
	return &CronService{
		cron:      cron.New(cron.WithSeconds()),
		auditSvc:  auditSvc,
		retention: retention,
		logger:    logger,
	}
}

// Start schedules the audit cleanup job and starts the scheduler.
// Format: second minute hour day month weekday.
func (s *CronService) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.cleanupAuditLogsJob); err != nil {
		return fmt.Errorf("failed to schedule audit cleanup job: %w", err)
	}

	s.cron.Start()
	s.logger.WithFields(logrus.Fields{
		"schedule":  schedule,
		"retention": s.retention.String(),
	}).Info("Cron service started")

	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

// cleanupAuditLogsJob deletes audit rows past the retention window
func (s *CronService) cleanupAuditLogsJob() {
	started := time.Now()

	removed, err := s.auditSvc.CleanupOldAuditLogs(s.retention)
	if err != nil {
		s.logger.WithError(err).Error("[CRON] audit cleanup failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"removed":     removed,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("[CRON] audit cleanup finished")
}

// JobCount returns the number of scheduled jobs
func (s *CronService) JobCount() int {
	return len(s.cron.Entries())
}
