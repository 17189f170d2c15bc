package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	loanJob "library-backend/internal/domains/loan/job"
	"library-backend/pkg/logger"
)

// ================================================
// SMTP REMINDER NOTIFIER
// ================================================

// SMTPNotifier gửi reminder qua SMTP. Địa chỉ người nhận là
// <borrowerId>@<domain> (email sinh viên do trường cấp).
type SMTPNotifier struct {
	smtpAddr string
	from     string
	domain   string
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPNotifier(smtpHost, smtpPort, from, domain string) *SMTPNotifier {
	return &SMTPNotifier{
		smtpAddr: smtpHost + ":" + smtpPort,
		from:     from,
		domain:   strings.TrimPrefix(domain, "@"),
		send:     smtp.SendMail,
	}
}

// SendReminder implements loan job.Notifier
func (n *SMTPNotifier) SendReminder(ctx context.Context, r loanJob.Reminder) error {
	to := n.recipient(r.BorrowerID)
	msg := buildReminderMessage(n.from, to, r)

	if err := n.send(n.smtpAddr, nil, n.from, []string{to}, msg); err != nil {
		logger.Info("Failed to send reminder email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"loan_id":   r.LoanID,
			"smtp_addr": n.smtpAddr,
		})
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) recipient(borrowerID string) string {
	return strings.ToLower(strings.TrimSpace(borrowerID)) + "@" + n.domain
}

func buildReminderMessage(from, to string, r loanJob.Reminder) []byte {
	when := "tomorrow"
	if r.DueToday {
		when = "today"
	}

	subject := fmt.Sprintf("Library reminder: %q is due %s", r.BookTitle, when)
	body := fmt.Sprintf(`Hello %s,

This is a reminder that %q is due %s (%s).
Please return or renew it at the library desk to avoid a late fine.

Library`, r.BorrowerName, r.BookTitle, when, r.DueDate.Format(time.DateOnly))

	return []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		from, to, subject, body))
}
