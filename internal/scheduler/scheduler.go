package scheduler

import (
	"context"
	"time"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/avetrov/finance-service/internal/repository"
	"github.com/avetrov/finance-service/internal/service"
	"github.com/avetrov/finance-service/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the daily batch jobs: recurring transaction
// generation, installment status refresh and payment reminders. Each
// job walks the users sequentially; a failure for one user is logged
// and the rest of the pass continues.
type Scheduler struct {
	cron *cron.Cron
	svc  *service.Service
	repo *repository.Repository
	mail *email.Sender
	log  *logrus.Logger
}

// New initializes the scheduler
func New(svc *service.Service, repo *repository.Repository, mail *email.Sender, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		svc:  svc,
		repo: repo,
		mail: mail,
		log:  log,
	}
}

// Start registers the daily jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("15 0 * * *", s.generateRecurring); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("30 0 * * *", s.refreshAndRemind); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Scheduler started")
	return nil
}

// Stop stops the cron loop, waiting for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) generateRecurring() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.log.Errorf("Recurring batch: failed to list users: %v", err)
		return
	}

	now := time.Now()
	total := 0
	for _, u := range users {
		count, err := s.svc.GenerateRecurring(ctx, u.ID, now)
		if err != nil {
			s.log.Errorf("Recurring batch failed for user %d: %v", u.ID, err)
			continue
		}
		total += count
	}
	s.log.Infof("Recurring batch done: %d transactions for %d users", total, len(users))
}

func (s *Scheduler) refreshAndRemind() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.log.Errorf("Reminder batch: failed to list users: %v", err)
		return
	}

	now := time.Now()
	for _, u := range users {
		if _, err := s.svc.Ledger().RefreshStatuses(ctx, u.ID, now); err != nil {
			s.log.Errorf("Status refresh failed for user %d: %v", u.ID, err)
			continue
		}
		if !s.mail.Enabled() {
			continue
		}
		s.remindUser(ctx, u, now)
	}
}

// remindUser mails the user about plans overdue or due within 3 days.
func (s *Scheduler) remindUser(ctx context.Context, u models.User, now time.Time) {
	plans, err := s.svc.Ledger().List(ctx, u.ID)
	if err != nil {
		s.log.Errorf("Reminder batch: failed to list installments for user %d: %v", u.ID, err)
		return
	}

	horizon := now.AddDate(0, 0, 3)
	for _, p := range plans {
		if p.Status == models.InstallmentCompleted {
			continue
		}
		if p.NextDueDate.After(horizon) {
			continue
		}
		overdue := p.Status == models.InstallmentOverdue
		if err := s.mail.SendInstallmentReminder(u.Email, u.Username, p.ItemName, p.NextDueDate, p.MonthlyPayment, overdue); err != nil {
			s.log.Errorf("Reminder failed for installment %d: %v", p.ID, err)
		}
	}
}
