package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"silc-backoffice/internal/adapters/persistence/repositories"
)

// CronService runs scheduled housekeeping jobs
type CronService struct {
	cron        *cron.Cron
	sessionRepo repositories.SessionRepository
}

// NewCronService creates a new cron service
func NewCronService(sessionRepo repositories.SessionRepository) *CronService {
	return &CronService{
		cron:        cron.New(),
		sessionRepo: sessionRepo,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	// Purge expired and revoked session rows daily at 02:00
	if _, err := s.cron.AddFunc("0 2 * * *", s.cleanupSessions); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron jobs started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✅ Cron jobs stopped")
}

func (s *CronService) cleanupSessions() {
	if err := s.sessionRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("⚠️ Session cleanup failed: %v", err)
		return
	}
	log.Println("✅ Expired sessions purged")
}
