package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/avetrov/finance-service/internal/config"
	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether SMTP settings are configured. Reminders are
// skipped silently when they are not.
func (s *Sender) Enabled() bool {
	return s.cfg.SMTPHost != "" && s.cfg.SenderEmail != ""
}

// SendInstallmentReminder sends a payment reminder for an installment plan
func (s *Sender) SendInstallmentReminder(to, username, itemName string, dueDate time.Time, amount decimal.Decimal, isOverdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if isOverdue {
		e.Subject = "Overdue Installment Payment"
	} else {
		e.Subject = "Upcoming Installment Payment Reminder"
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	if isOverdue {
		body += fmt.Sprintf(
			"Your payment of %s for %q was due on %s and is now overdue.\n"+
				"Please record the payment as soon as possible.\n",
			amount.StringFixed(2), itemName, dueDate.Format("2006-01-02"),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your payment of %s for %q is due on %s.\n",
			amount.StringFixed(2), itemName, dueDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nFinance Service"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
