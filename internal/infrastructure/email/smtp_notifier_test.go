package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	loanJob "library-backend/internal/domains/loan/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReminder() loanJob.Reminder {
	return loanJob.Reminder{
		LoanID:       "BB002",
		BorrowerID:   "EC2021045",
		BorrowerName: "Priya Patel",
		BookTitle:    "Microelectronic Circuits",
		DueDate:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		DueToday:     true,
	}
}

func TestSendReminder(t *testing.T) {
	n := NewSMTPNotifier("localhost", "1025", "library@campus.test", "@students.campus.test")

	var gotAddr string
	var gotTo []string
	var gotMsg string
	n.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	require.NoError(t, n.SendReminder(context.Background(), sampleReminder()))

	assert.Equal(t, "localhost:1025", gotAddr)
	assert.Equal(t, []string{"ec2021045@students.campus.test"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Library reminder: \"Microelectronic Circuits\" is due today")
	assert.Contains(t, gotMsg, "Hello Priya Patel")
	assert.Contains(t, gotMsg, "2024-03-10")
}

func TestSendReminder_WrapsSMTPError(t *testing.T) {
	n := NewSMTPNotifier("localhost", "1025", "library@campus.test", "campus.test")
	boom := errors.New("connection refused")
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := n.SendReminder(context.Background(), sampleReminder())

	assert.ErrorIs(t, err, boom)
}
