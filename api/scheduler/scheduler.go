// Package scheduler runs the periodic background jobs. The only job
// today is the next-day event reminder, which emails upcoming events to
// the congregation and records the reminder as a communication.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nanaopoku/church-admin-api/mailer"
	"github.com/nanaopoku/church-admin-api/models"
	"github.com/nanaopoku/church-admin-api/storage"
)

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron  *cron.Cron
	Store *storage.Store
	Mail  *mailer.Mailer
}

// New creates a new scheduler instance
func New(store *storage.Store, mail *mailer.Mailer) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		Store: store,
		Mail:  mail,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Send reminders for tomorrow's events daily at 6 AM UTC
	_, err := s.cron.AddFunc("0 6 * * *", s.sendEventReminders)
	if err != nil {
		zap.S().Errorw("failed to register event reminder job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("event reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("event reminder scheduler stopped")
}

// sendEventReminders finds events happening tomorrow, emails each one to
// the congregation and records the reminder in the communications
// collection
func (s *Scheduler) sendEventReminders() {
	tomorrow := time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")

	var upcoming []models.Event
	for _, e := range s.Store.Events() {
		if e.Date == tomorrow {
			upcoming = append(upcoming, e)
		}
	}
	if len(upcoming) == 0 {
		zap.S().Debugw("no events tomorrow, nothing to remind", "date", tomorrow)
		return
	}

	members := s.Store.Members()
	for _, event := range upcoming {
		comm := s.Store.InsertCommunication(models.Communication{
			Title: fmt.Sprintf("Reminder: %s", event.Title),
			Content: fmt.Sprintf("%s is happening tomorrow (%s) at %s, %s. %s",
				event.Title, event.Date, event.Time, event.Location, event.Description),
			Date:       time.Now().UTC().Format("2006-01-02"),
			Type:       models.CommunicationTypeEventInvite,
			Recipients: models.RecipientGroupAllMembers,
		})

		sent, err := s.Mail.Dispatch(comm, members)
		if err != nil {
			zap.S().Errorw("failed to send event reminder",
				"eventId", event.ID,
				"error", err,
			)
			continue
		}
		zap.S().Infow("event reminder sent",
			"eventId", event.ID,
			"title", event.Title,
			"emailsSent", sent,
		)
	}
}
